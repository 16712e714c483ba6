package langdef

import (
	"testing"

	"github.com/ava12/ll1"
	"github.com/ava12/ll1/grammar"
	. "github.com/ava12/ll1/internal/test"
)

func TestParseArithmetic(t *testing.T) {
	g := arithmetic(t)
	ExpectString(t, "E", g.Start)
	ExpectStrings(t, []string{"+", "*", "(", ")", "num"}, g.Terms)
	ExpectStrings(t, []string{"E", "E'", "T", "T'", "F"}, g.Nonterms)
	expected := []string{
		"E = T E'",
		"E' = + T E'",
		"E' = @",
		"T = F T'",
		"T' = * F T'",
		"T' = @",
		"F = ( E )",
		"F = num",
	}
	ExpectInt(t, len(expected), len(g.Productions))
	for i, p := range g.Productions {
		ExpectString(t, expected[i], p.String())
	}
}

func TestParseDefaults(t *testing.T) {
	g, e := ParseString("", "S = x A | A; A = y; S = @;")
	ExpectNoError(t, e)
	ExpectString(t, "S", g.Start)
	ExpectStrings(t, []string{"x", "y"}, g.Terms)
	ExpectStrings(t, []string{"S", "A"}, g.Nonterms)
	ExpectInt(t, 4, len(g.Productions))
	ExpectBool(t, true, g.Productions[3].IsEpsilon())
	ExpectString(t, "S", g.Productions[3].Nonterm)
}

func TestParseStartDirective(t *testing.T) {
	g, e := ParseBytes("", []byte("!start B;\nA = a;\nB = A b;"))
	ExpectNoError(t, e)
	ExpectString(t, "B", g.Start)
	ExpectString(t, "B", g.StartSymbol())
}

func TestParseSymbols(t *testing.T) {
	g, e := ParseString("", "expr-list = <expr> ',' expr-list' ; expr-list' = @ | a.b! ;\t# tail\n<expr> = \"x\"")
	Assert(t, e != nil, "expecting error for unfinished definition")
	ExpectErrorCode(t, UnexpectedEofError, e)

	g, e = ParseString("", "expr-list = <expr> ',' expr-list' ; expr-list' = @ | a.b! ;\t# tail\n<expr> = \"x\";")
	ExpectNoError(t, e)
	ExpectStrings(t, []string{"','", "a.b!", `"x"`}, g.Terms)
	ExpectStrings(t, []string{"expr-list", "expr-list'", "<expr>"}, g.Nonterms)
}

func TestParseErrors(t *testing.T) {
	samples := []struct {
		src       string
		code      int
		line, col int
	}{
		{"", NoDefinitionsError, 0, 0},
		{"# only comment\n", NoDefinitionsError, 0, 0},
		{"!term a;", NoDefinitionsError, 0, 0},
		{"A = a", UnexpectedEofError, 1, 6},
		{"A = ;", UnexpectedTokenError, 1, 5},
		{"A a;", UnexpectedTokenError, 1, 3},
		{"A = a | ;", UnexpectedTokenError, 1, 9},
		{"= a;", UnexpectedTokenError, 1, 1},
		{"A = a;\n!term a;", MisplacedDirError, 2, 1},
		{"!foo;\nA = a;", UnknownDirError, 1, 1},
		{"!start A;\n!start A;\nA = a;", DirDefinedError, 2, 1},
		{"!start A B;\nA = a;", UnexpectedTokenError, 1, 10},
		{"A = a;\nB = bé;", WrongCharError, 2, 6},
		{"A = a # коммент\n;", WrongCharError, 1, 9},
		{"!term a;\nA = a b;", grammar.UndefinedSymbolError, 0, 0},
		{"!start x;\nA = x;", grammar.UnknownStartError, 0, 0},
		{"A = a @;", grammar.MisplacedEpsilonError, 0, 0},
		{"!term #x;\nA = a;", UnexpectedTokenError, 2, 3},
	}

	for i, s := range samples {
		_, e := ParseString("src", s.src)
		Assert(t, e != nil, "sample #%d: expecting error", i)
		ExpectErrorCode(t, s.code, e)
		ee := e.(*ll1.Error)
		Assert(t, ee.Line == s.line && ee.Col == s.col, "sample #%d: expecting error at %d:%d, got %d:%d (%s)",
			i, s.line, s.col, ee.Line, ee.Col, ee.Message)
	}
}
