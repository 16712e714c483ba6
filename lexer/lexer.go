// Package lexer defines lexical analyzer built from an ordered list of token types described by regular expressions.
package lexer

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/ava12/ll1"
	"github.com/ava12/ll1/automaton"
	"github.com/ava12/ll1/internal/bmap"
	"github.com/ava12/ll1/regex"
	"github.com/ava12/ll1/source"
)

const (
	// ErrorTokenType is the type of tokens capturing unrecognized characters.
	ErrorTokenType = -1

	// ErrorTokenName is the type name for ErrorTokenType.
	ErrorTokenName = "-error-"
)

// Error codes used by lexer:
const (
	// WrongCharError indicates that lexer cannot fetch any token at current position.
	// Error message contains the rune at current source position.
	WrongCharError = ll1.LexicalErrors + iota

	// NoTokenTypesError indicates empty token type list.
	NoTokenTypesError

	// WrongTypeError indicates negative token type.
	WrongTypeError

	// DuplicateTypeError indicates token type declared more than once.
	DuplicateTypeError

	// RegexError indicates malformed regular expression, message contains regex error message.
	RegexError

	// KeywordError indicates keyword rule referring to unknown token type.
	KeywordError
)

// TokenType describes token class.
type TokenType struct {
	// Type contains non-negative type index, lower index means higher priority.
	Type int

	// TypeName contains token type name, used by parser as terminal name.
	TypeName string

	// Re contains regular expression, see regex package for syntax.
	Re string

	// Aside marks insignificant lexemes (e.g. whitespace or comments) that are matched but not emitted.
	Aside bool
}

type keywordRule struct {
	from  int
	to    TokenType
	words []string
}

type config struct {
	keywords  []keywordRule
	logger    *slog.Logger
	maxStates int
}

type Option func(*config)

// WithKeywords makes lexer reclassify tokens of type from having one of given texts as tokens of type to.
// to.Re is ignored, to.Type need not be declared.
func WithKeywords(from int, to TokenType, words ...string) Option {
	return func(c *config) {
		c.keywords = append(c.keywords, keywordRule{from, to, words})
	}
}

// WithLogger sets logger, slog.Default() is used if nil or not set.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithMaxStates limits the number of DFA states, 0 means no limit.
func WithMaxStates(n int) Option {
	return func(c *config) {
		c.maxStates = n
	}
}

// Lexer is immutable and safe for concurrent use.
type Lexer struct {
	types    map[int]TokenType
	dfa      *automaton.DFA
	keywords map[int]*bmap.BMap[TokenType]
	logger   *slog.Logger
}

func noTokenTypesError() *ll1.Error {
	return ll1.FormatError(NoTokenTypesError, "no token types defined")
}

func wrongTypeError(tt TokenType) *ll1.Error {
	return ll1.FormatError(WrongTypeError, "wrong type %d for %q token type", tt.Type, tt.TypeName)
}

func duplicateTypeError(tt TokenType) *ll1.Error {
	return ll1.FormatError(DuplicateTypeError, "duplicate type %d for %q token type", tt.Type, tt.TypeName)
}

func regexError(tt TokenType, e error) *ll1.Error {
	return ll1.FormatError(RegexError, "%q token type: %s", tt.TypeName, e.Error())
}

func keywordError(from int) *ll1.Error {
	return ll1.FormatError(KeywordError, "keywords refer to unknown token type %d", from)
}

func wrongCharError(sp source.Pos, r rune) *ll1.Error {
	msg := fmt.Sprintf("wrong char %q (u+%x)", r, r)
	return ll1.FormatErrorPos(sp, WrongCharError, msg)
}

// New compiles token types into single DFA.
// Returns ll1.Error if token type list is empty, a type is negative or duplicated, or a regex is malformed.
func New(types []TokenType, opts ...Option) (*Lexer, error) {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	if len(types) == 0 {
		return nil, noTokenTypesError()
	}

	l := &Lexer{
		types:    make(map[int]TokenType, len(types)),
		keywords: make(map[int]*bmap.BMap[TokenType]),
		logger:   c.logger,
	}
	b := automaton.NewBuilder()
	fragments := make([]automaton.Fragment, 0, len(types))
	for _, tt := range types {
		if tt.Type < 0 {
			return nil, wrongTypeError(tt)
		}
		if _, has := l.types[tt.Type]; has {
			return nil, duplicateTypeError(tt)
		}

		f, e := regex.Compile(b, tt.Re, tt.Type)
		if e != nil {
			return nil, regexError(tt, e)
		}

		l.types[tt.Type] = tt
		fragments = append(fragments, f)
	}

	nodes := b.Len()
	nfa, e := b.Merge(fragments...)
	if e != nil {
		return nil, e
	}

	l.dfa, e = automaton.Determinize(nfa, c.maxStates)
	if e != nil {
		return nil, e
	}

	for _, kr := range c.keywords {
		if _, has := l.types[kr.from]; !has {
			return nil, keywordError(kr.from)
		}

		kw := l.keywords[kr.from]
		if kw == nil {
			kw = bmap.New[TokenType](len(kr.words))
			l.keywords[kr.from] = kw
		}
		for _, w := range kr.words {
			kw.SetString(w, kr.to)
		}
	}

	l.logger.Debug("lexer built",
		"types", len(types),
		"nfaNodes", nodes+1,
		"dfaStates", len(l.dfa.States),
		"alphabet", len(l.dfa.Alphabet),
	)
	return l, nil
}

// DFA returns underlying automaton, it must not be modified.
func (l *Lexer) DFA() *automaton.DFA {
	return l.dfa
}

// TokenType returns token type description by type index.
func (l *Lexer) TokenType(t int) (TokenType, bool) {
	tt, has := l.types[t]
	return tt, has
}

// match returns the end of the longest match starting at pos and its token type or -1, NoClass.
func (l *Lexer) match(content []byte, pos int) (end, class int) {
	end = -1
	class = automaton.NoClass
	state := automaton.StartState
	for p := pos; p < len(content); {
		r, size := utf8.DecodeRune(content[p:])
		state = l.dfa.Step(state, r)
		if state == automaton.DeadState {
			break
		}

		p += size
		if s := &l.dfa.States[state]; s.Accepting && len(s.Classes) > 0 {
			end = p
			class = s.Class()
		}
	}
	return
}

// Scan splits source content into tokens using maximal munch.
// Each unrecognized character becomes a token of ErrorTokenType and adds WrongCharError to returned errors,
// scanning continues at the next character.
func (l *Lexer) Scan(src *source.Source) ([]*Token, []error) {
	var (
		tokens []*Token
		errs   []error
	)
	content := src.Content()
	pos := 0
	for pos < len(content) {
		end, class := l.match(content, pos)
		if end < 0 {
			r, size := utf8.DecodeRune(content[pos:])
			sp := src.Pos(pos)
			tokens = append(tokens, NewToken(ErrorTokenType, ErrorTokenName, string(content[pos:pos+size]), sp))
			errs = append(errs, wrongCharError(sp, r))
			l.logger.Debug("unrecognized character", "source", src.Name(), "line", sp.Line(), "col", sp.Col())
			pos += size
			continue
		}

		tt := l.types[class]
		if tt.Aside {
			pos = end
			continue
		}

		text := content[pos:end]
		if kw := l.keywords[tt.Type]; kw != nil {
			if ktt, has := kw.Get(text); has {
				tt = ktt
			}
		}
		tokens = append(tokens, NewToken(tt.Type, tt.TypeName, string(text), src.Pos(pos)))
		pos = end
	}

	return tokens, errs
}

// ScanString is Scan for string content.
func (l *Lexer) ScanString(name, content string) ([]*Token, []error) {
	return l.Scan(source.FromString(name, content))
}
