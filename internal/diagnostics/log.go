package diagnostics

import (
	"strings"
	"sync"

	"lumen/internal/source"
)

// Severity represents the severity level of a diagnostic
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic is one reported problem, pinned to a source location.
type Diagnostic struct {
	Severity Severity
	Message  string
	Location source.Location
}

func (d *Diagnostic) String() string {
	return d.Location.String() + ": " + d.Severity.String() + ": " + d.Message
}

// Log collects diagnostics during compilation. It is append-only; passes add
// entries and the driver reads them out once the pipeline stops.
//
// Disabled silences the log during speculative evaluation (the typechecker's
// trial visit of a call's function sub-expression); entries added while
// Disabled is set are dropped.
type Log struct {
	Disabled bool

	mu          sync.Mutex
	diagnostics []*Diagnostic
	errorCount  int
	warnCount   int
}

// NewLog creates an empty diagnostic log.
func NewLog() *Log {
	return &Log{diagnostics: make([]*Diagnostic, 0)}
}

// Add appends a diagnostic unless the log is disabled.
func (l *Log) Add(d *Diagnostic) {
	if l.Disabled {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.diagnostics = append(l.diagnostics, d)
	switch d.Severity {
	case Error:
		l.errorCount++
	case Warning:
		l.warnCount++
	}
}

// AddError appends an error at the given location.
func (l *Log) AddError(loc source.Location, message string) {
	l.Add(&Diagnostic{Severity: Error, Message: message, Location: loc})
}

// AddWarning appends a warning at the given location.
func (l *Log) AddWarning(loc source.Location, message string) {
	l.Add(&Diagnostic{Severity: Warning, Message: message, Location: loc})
}

// HasErrors returns true if there are any errors
func (l *Log) HasErrors() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errorCount > 0
}

// ErrorCount returns the number of errors
func (l *Log) ErrorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errorCount
}

// WarningCount returns the number of warnings
func (l *Log) WarningCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.warnCount
}

// Diagnostics returns a copy of all diagnostics in insertion order.
func (l *Log) Diagnostics() []*Diagnostic {
	l.mu.Lock()
	defer l.mu.Unlock()
	result := make([]*Diagnostic, len(l.diagnostics))
	copy(result, l.diagnostics)
	return result
}

// Errors returns the formatted error entries in insertion order.
func (l *Log) Errors() []string {
	return l.formatted(Error)
}

// Warnings returns the formatted warning entries in insertion order.
func (l *Log) Warnings() []string {
	return l.formatted(Warning)
}

func (l *Log) formatted(sev Severity) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, d := range l.diagnostics {
		if d.Severity == sev {
			out = append(out, d.String())
		}
	}
	return out
}

// Text renders every diagnostic as one line each, errors and warnings
// interleaved in insertion order.
func (l *Log) Text() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var sb strings.Builder
	for _, d := range l.diagnostics {
		sb.WriteString(d.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
