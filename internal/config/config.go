package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional lumen.yaml project file. An entry file given on the
// command line replaces Entry; the boolean flags only switch options on.
type Config struct {
	// Entry is the source file to compile
	Entry string `yaml:"entry"`
	// Rename enables the symbol rename pass after a clean compile
	Rename bool `yaml:"rename"`
	// RenameOverloads also gives overload members distinct final names
	RenameOverloads bool `yaml:"renameOverloads"`
	// Reserved extends the reserved-word set the rename pass avoids
	Reserved []string `yaml:"reserved"`
	// Debug turns on the same debug output as the -d flag
	Debug bool `yaml:"debug"`
}

// DefaultFile is the default value of the CLI's -config flag, resolved
// against the working directory.
const DefaultFile = "lumen.yaml"

// JavaScriptReserved is the baseline reserved-word set for the JavaScript
// back-end: names a generated program must not shadow.
var JavaScriptReserved = []string{
	"arguments", "await", "break", "case", "catch", "class", "const",
	"continue", "debugger", "default", "delete", "do", "else", "enum",
	"eval", "export", "extends", "false", "finally", "for", "function",
	"if", "implements", "import", "in", "instanceof", "interface", "let",
	"new", "null", "package", "private", "protected", "public", "return",
	"static", "super", "switch", "this", "throw", "true", "try", "typeof",
	"undefined", "var", "void", "while", "with", "yield",
}

// Load reads a config file. A missing file is not an error; it yields the
// zero config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	return &cfg, nil
}

// ReservedWords returns the full reserved-word set: the JavaScript baseline
// plus the config's additions.
func (c *Config) ReservedWords() []string {
	words := make([]string, 0, len(JavaScriptReserved)+len(c.Reserved))
	words = append(words, JavaScriptReserved...)
	words = append(words, c.Reserved...)
	return words
}
