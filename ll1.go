/*
Package ll1 is a compiler front-end toolkit: a scanner generator driven by regular expressions
and an LL(1) table generator with a table-driven predictive parser.

Consists of subpackages:
  - regex: converts regular expressions to postfix form and builds NFA fragments;
  - automaton: NFA arena, Thompson operators, fragment merging, and subset construction;
  - lexer: scanner built from an ordered list of token types;
  - grammar: grammar and prediction table structures;
  - langdef: First/Follow/Select sets, prediction table builder, and grammar description parser;
  - parser: predictive parser with panic-mode recovery;
  - source: source file with line and column lookup;
  - cmd/ll1gen: console utility printing sets and tables and checking input files.

Typical usage is:

1. Describe token types as regular expressions, lowest type index has the highest priority.

2. Describe an LL(1) grammar either as grammar.Grammar structure or as text parsed by langdef.

3. Create lexer and parser, scan source text and feed tokens to the parser.
Both lexer and parser are immutable and may be shared by goroutines.
*/
package ll1

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	RegexErrors   = 1   // used by regex and automaton
	LexicalErrors = 101 // used by lexer
	GrammarErrors = 201 // used by grammar and langdef
	SyntaxErrors  = 301 // used by parser
)

// Error is the error type used by ll1 subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos and lexer.Token implement this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// line and col will be added to error message if provided (non-zero), name is added if not empty.
func NewError(code int, msg, name string, line, col int) *Error {
	if line != 0 && col != 0 {
		if name == "" {
			msg += fmt.Sprintf(" at line %d col %d", line, col)
		} else {
			msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
		}
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}
