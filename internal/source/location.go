package source

import "fmt"

// Location is a point in a source file. Every token and AST node carries one
// so diagnostics can name the exact place they refer to.
type Location struct {
	File   string
	Line   int // 1-based
	Column int // 1-based
}

// NewLocation creates a Location for the given file position.
func NewLocation(file string, line, column int) *Location {
	return &Location{File: file, Line: line, Column: column}
}

func (l *Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}
