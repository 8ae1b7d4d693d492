package diagnostics

import (
	"strings"
	"testing"

	"lumen/internal/source"
)

func at(line, col int) source.Location {
	return source.Location{File: "test.lum", Line: line, Column: col}
}

func TestEntryFormat(t *testing.T) {
	log := NewLog()
	log.AddError(at(3, 7), "x is not defined")
	log.AddWarning(at(4, 1), "dead code")

	errs := log.Errors()
	if len(errs) != 1 || errs[0] != "test.lum:3:7: error: x is not defined" {
		t.Errorf("error entry = %v", errs)
	}
	warns := log.Warnings()
	if len(warns) != 1 || warns[0] != "test.lum:4:1: warning: dead code" {
		t.Errorf("warning entry = %v", warns)
	}
}

func TestCounts(t *testing.T) {
	log := NewLog()
	if log.HasErrors() {
		t.Error("a fresh log has no errors")
	}
	log.AddError(at(1, 1), "first")
	log.AddError(at(2, 1), "second")
	log.AddWarning(at(3, 1), "careful")
	if !log.HasErrors() || log.ErrorCount() != 2 || log.WarningCount() != 1 {
		t.Errorf("counts = %d errors, %d warnings", log.ErrorCount(), log.WarningCount())
	}
}

func TestOrderPreserved(t *testing.T) {
	log := NewLog()
	log.AddError(at(5, 1), "later location first")
	log.AddError(at(1, 1), "earlier location second")
	errs := log.Errors()
	if !strings.Contains(errs[0], "later location first") {
		t.Error("entries must keep insertion order, not location order")
	}
}

func TestDisabledDropsEntries(t *testing.T) {
	log := NewLog()
	log.Disabled = true
	log.AddError(at(1, 1), "speculative")
	log.AddWarning(at(1, 1), "speculative")
	log.Disabled = false
	log.AddError(at(2, 2), "real")

	if log.ErrorCount() != 1 || log.WarningCount() != 0 {
		t.Errorf("disabled entries should be dropped, got %v %v", log.Errors(), log.Warnings())
	}
	if !strings.Contains(log.Errors()[0], "real") {
		t.Error("entries after re-enabling should land")
	}
}

func TestTextInterleavesBySeverity(t *testing.T) {
	log := NewLog()
	log.AddWarning(at(1, 1), "w")
	log.AddError(at(2, 1), "e")
	text := log.Text()
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "warning") || !strings.Contains(lines[1], "error") {
		t.Errorf("Text() = %q", text)
	}
}

func TestDiagnosticsReturnsCopy(t *testing.T) {
	log := NewLog()
	log.AddError(at(1, 1), "one")
	first := log.Diagnostics()
	log.AddError(at(2, 2), "two")
	if len(first) != 1 {
		t.Error("Diagnostics must return a snapshot")
	}
}
