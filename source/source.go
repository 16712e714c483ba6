// Package source defines source text with line and column lookup.
package source

import (
	"bytes"
	"unicode/utf8"
)

// Source is a named immutable text. Line and column numbers start with 1, columns count runes.
type Source struct {
	name       string
	content    []byte
	lineStarts []int
}

func New(name string, content []byte) *Source {
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s := &Source{name: name, content: content, lineStarts: make([]int, 1, lineCnt)}
	for i, c := range content {
		if c == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
	return s
}

func FromString(name, content string) *Source {
	return New(name, []byte(content))
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Content() []byte {
	return s.content
}

func (s *Source) Len() int {
	return len(s.content)
}

// LineCol converts byte offset to line and column numbers.
// Offsets outside of content are clamped.
func (s *Source) LineCol(pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.content) {
		pos = len(s.content)
	}

	l, h := 0, len(s.lineStarts)-1
	for l < h {
		i := (l + h + 1) >> 1
		if s.lineStarts[i] <= pos {
			l = i
		} else {
			h = i - 1
		}
	}

	return l + 1, utf8.RuneCount(s.content[s.lineStarts[l]:pos]) + 1
}

// Pos returns Pos structure for given byte offset.
func (s *Source) Pos(pos int) Pos {
	line, col := s.LineCol(pos)
	return Pos{s, pos, line, col}
}

// Pos is a position in source, implements ll1.SourcePos.
type Pos struct {
	src            *Source
	pos, line, col int
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}

	return p.src.name
}

func (p Pos) Pos() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}
