package langdef

import (
	"strings"

	"github.com/ava12/ll1/grammar"
	"github.com/ava12/ll1/lexer"
	"github.com/ava12/ll1/source"
)

const (
	dirTok     = "directive"
	opTok      = "operator"
	symbolTok  = "symbol"
	spaceTok   = "space"
	commentTok = "comment"
)

const (
	equTok       = "="
	pipeTok      = "|"
	semicolonTok = ";"
)

const (
	startDir = "!start"
	termDir  = "!term"
)

var descLexer *lexer.Lexer

// symbolChars returns printable ASCII characters except for space and excluded ones.
func symbolChars(exclude string) string {
	var sb strings.Builder
	for c := byte('!'); c <= '~'; c++ {
		if strings.IndexByte(exclude, c) < 0 {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// alt builds regex matching any single character of chars.
func alt(chars string) string {
	items := make([]string, len(chars))
	for i := 0; i < len(chars); i++ {
		items[i] = string(chars[i])
		if strings.IndexByte(`\()*|@`, chars[i]) >= 0 {
			items[i] = `\` + items[i]
		}
	}
	return "(" + strings.Join(items, "|") + ")"
}

func init() {
	letters := "abcdefghijklmnopqrstuvwxyz"
	tail := symbolChars(" ;|=#")
	head := symbolChars(" ;|=#!")
	spaces := alt(" \t\r\n\f")

	var e error
	descLexer, e = lexer.New([]lexer.TokenType{
		{Type: 0, TypeName: dirTok, Re: "!" + alt(letters) + alt(letters) + "*"},
		{Type: 1, TypeName: opTok, Re: alt(equTok + pipeTok + semicolonTok)},
		{Type: 2, TypeName: symbolTok, Re: alt(head) + alt(tail) + "*"},
		{Type: 3, TypeName: spaceTok, Re: spaces + spaces + "*", Aside: true},
		{Type: 4, TypeName: commentTok, Re: "#" + alt(symbolChars("")+" \t\r") + "*", Aside: true},
	})
	if e != nil {
		panic(e)
	}
}

// ParseString parses grammar description and returns a grammar on success.
// Returns nil and ll1.Error on error.
func ParseString(name, content string) (*grammar.Grammar, error) {
	return Parse(source.FromString(name, content))
}

// ParseBytes parses grammar description and returns a grammar on success.
// Returns nil and ll1.Error on error.
func ParseBytes(name string, content []byte) (*grammar.Grammar, error) {
	return Parse(source.New(name, content))
}

// Parse parses grammar description and returns a validated grammar on success.
// Returns nil and ll1.Error on error.
func Parse(s *source.Source) (*grammar.Grammar, error) {
	tokens, errs := descLexer.Scan(s)
	if len(errs) > 0 {
		for _, t := range tokens {
			if t.Type() == lexer.ErrorTokenType {
				return nil, wrongCharError(t)
			}
		}
	}

	c := &parseContext{src: s, tokens: tokens, defined: make(map[string]bool)}
	g, e := c.parse()
	if e == nil {
		e = g.Validate()
	}
	if e != nil {
		return nil, e
	}

	return g, nil
}

type parseContext struct {
	src      *source.Source
	tokens   []*lexer.Token
	index    int
	start    *lexer.Token
	terms    []string
	hasTerms bool
	nonterms []string
	defined  map[string]bool
	prods    []grammar.Production
}

func (c *parseContext) isEof() bool {
	return c.index >= len(c.tokens)
}

// fetch returns next token if it has one of given type names or texts.
func (c *parseContext) fetch(types ...string) (*lexer.Token, error) {
	if c.isEof() {
		return nil, eofError(c.src.Pos(c.src.Len()))
	}

	t := c.tokens[c.index]
	for _, typ := range types {
		if t.TypeName() == typ || (t.TypeName() == opTok && t.Text() == typ) {
			c.index++
			return t, nil
		}
	}

	return nil, unexpectedTokenError(t)
}

func (c *parseContext) parse() (*grammar.Grammar, error) {
	for !c.isEof() && c.tokens[c.index].TypeName() == dirTok {
		e := c.parseDir(c.tokens[c.index])
		if e != nil {
			return nil, e
		}
	}

	if c.isEof() {
		return nil, noDefinitionsError(c.src.Name())
	}

	for !c.isEof() {
		if t := c.tokens[c.index]; t.TypeName() == dirTok {
			return nil, misplacedDirError(t)
		}

		e := c.parseDef()
		if e != nil {
			return nil, e
		}
	}

	return c.buildGrammar(), nil
}

func (c *parseContext) parseDir(t *lexer.Token) error {
	c.index++
	switch t.Text() {
	case startDir:
		if c.start != nil {
			return dirDefinedError(t)
		}

		start, e := c.fetch(symbolTok)
		if e != nil {
			return e
		}

		c.start = start
		_, e = c.fetch(semicolonTok)
		return e

	case termDir:
		if c.hasTerms {
			return dirDefinedError(t)
		}

		c.hasTerms = true
		for {
			term, e := c.fetch(symbolTok, semicolonTok)
			if e != nil {
				return e
			}
			if term.TypeName() == opTok {
				return nil
			}

			c.terms = append(c.terms, term.Text())
		}

	default:
		return unknownDirError(t)
	}
}

func (c *parseContext) parseDef() error {
	name, e := c.fetch(symbolTok)
	if e != nil {
		return e
	}

	_, e = c.fetch(equTok)
	if e != nil {
		return e
	}

	nonterm := name.Text()
	if !c.defined[nonterm] {
		c.defined[nonterm] = true
		c.nonterms = append(c.nonterms, nonterm)
	}

	for {
		t, e := c.fetch(symbolTok)
		if e != nil {
			return e
		}

		symbols := []string{t.Text()}
		for {
			t, e = c.fetch(symbolTok, pipeTok, semicolonTok)
			if e != nil {
				return e
			}
			if t.TypeName() == opTok {
				break
			}

			symbols = append(symbols, t.Text())
		}

		c.prods = append(c.prods, grammar.Production{Nonterm: nonterm, Symbols: symbols})
		if t.Text() == semicolonTok {
			return nil
		}
	}
}

func (c *parseContext) buildGrammar() *grammar.Grammar {
	g := &grammar.Grammar{
		Start:       c.nonterms[0],
		Terms:       c.terms,
		Nonterms:    c.nonterms,
		Productions: c.prods,
	}
	if c.start != nil {
		g.Start = c.start.Text()
	}

	if !c.hasTerms {
		seen := make(map[string]bool)
		for _, p := range c.prods {
			for _, s := range p.Symbols {
				if s != grammar.Epsilon && !c.defined[s] && !seen[s] {
					seen[s] = true
					g.Terms = append(g.Terms, s)
				}
			}
		}
	}

	return g
}
