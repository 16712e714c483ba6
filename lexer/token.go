package lexer

import (
	"github.com/ava12/ll1/source"
)

// Token is a lexeme of known type, implements ll1.SourcePos.
type Token struct {
	tokenType int
	typeName  string
	text      string
	source    *source.Source
	pos       int
	line, col int
}

func (t *Token) Type() int {
	return t.tokenType
}

func (t *Token) TypeName() string {
	return t.typeName
}

func (t *Token) Text() string {
	return t.text
}

func (t *Token) Source() *source.Source {
	return t.source
}

func (t *Token) SourceName() string {
	if t.source == nil {
		return ""
	}

	return t.source.Name()
}

// Pos returns byte offset of the token in source.
func (t *Token) Pos() int {
	return t.pos
}

func (t *Token) Line() int {
	return t.line
}

func (t *Token) Col() int {
	return t.col
}

func (t *Token) String() string {
	return t.typeName + " " + t.text
}

// NewToken creates a token at given position, zero Pos means no position.
func NewToken(tokenType int, typeName, text string, sp source.Pos) *Token {
	return &Token{tokenType, typeName, text, sp.Source(), sp.Pos(), sp.Line(), sp.Col()}
}
