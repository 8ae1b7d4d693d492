package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileIsZeroConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Entry != "" || cfg.Rename || len(cfg.Reserved) != 0 {
		t.Error("missing file should yield the zero config")
	}
}

func TestLoadParsesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumen.yaml")
	data := `entry: main.lum
rename: true
renameOverloads: true
reserved:
  - window
  - document
debug: true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Entry != "main.lum" || !cfg.Rename || !cfg.RenameOverloads || !cfg.Debug {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if len(cfg.Reserved) != 2 || cfg.Reserved[0] != "window" {
		t.Errorf("reserved = %v", cfg.Reserved)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumen.yaml")
	if err := os.WriteFile(path, []byte(":\n  - ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed yaml should error")
	}
}

func TestReservedWordsExtendBaseline(t *testing.T) {
	cfg := &Config{Reserved: []string{"window"}}
	words := cfg.ReservedWords()
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		seen[w] = true
	}
	if !seen["function"] || !seen["typeof"] {
		t.Error("baseline JavaScript keywords should be present")
	}
	if !seen["window"] {
		t.Error("config additions should be present")
	}
}
