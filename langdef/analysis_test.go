package langdef

import (
	"testing"

	"github.com/ava12/ll1/grammar"
	. "github.com/ava12/ll1/internal/test"
)

const arithmeticDesc = `
# arithmetic expressions
!term + * ( ) num;
E  = T E';
E' = + T E' | @;
T  = F T';
T' = * F T' | @;
F  = ( E ) | num;
`

func arithmetic(t *testing.T) *grammar.Grammar {
	t.Helper()
	g, e := ParseString("arithmetic", arithmeticDesc)
	ExpectNoError(t, e)
	return g
}

func analyze(t *testing.T, g *grammar.Grammar) *Analysis {
	t.Helper()
	a, e := Analyze(g)
	ExpectNoError(t, e)
	return a
}

func TestFirst(t *testing.T) {
	a := analyze(t, arithmetic(t))
	samples := map[string][]string{
		"E":  {"(", "num"},
		"E'": {"+", "@"},
		"T":  {"(", "num"},
		"T'": {"*", "@"},
		"F":  {"(", "num"},
		"+":  {"+"},
		"#":  {"#"},
		"@":  {"@"},
		"X":  nil,
	}
	for symbol, expected := range samples {
		ExpectStrings(t, expected, a.First(symbol))
	}
}

func TestFollow(t *testing.T) {
	a := analyze(t, arithmetic(t))
	samples := map[string][]string{
		"E":   {")", "#"},
		"E'":  {")", "#"},
		"T":   {"+", ")", "#"},
		"T'":  {"+", ")", "#"},
		"F":   {"+", "*", ")", "#"},
		"num": nil,
	}
	for symbol, expected := range samples {
		ExpectStrings(t, expected, a.Follow(symbol))
	}
}

func TestSelect(t *testing.T) {
	a := analyze(t, arithmetic(t))
	expected := [][]string{
		{"(", "num"},
		{"+"},
		{")", "#"},
		{"(", "num"},
		{"*"},
		{"+", ")", "#"},
		{"("},
		{"num"},
	}
	for i, e := range expected {
		ExpectStrings(t, e, a.Select(i))
	}
}

func TestNullable(t *testing.T) {
	a := analyze(t, arithmetic(t))
	ExpectBool(t, false, a.Nullable("E"))
	ExpectBool(t, true, a.Nullable("E'"))
	ExpectBool(t, true, a.Nullable("T'"))
	ExpectBool(t, false, a.Nullable("num"))
}

func TestFirstOf(t *testing.T) {
	a := analyze(t, arithmetic(t))
	ExpectStrings(t, []string{"+", "*", "@"}, a.FirstOf([]string{"E'", "T'"}))
	ExpectStrings(t, []string{"+", "*", ")"}, a.FirstOf([]string{"E'", "T'", ")"}))
	ExpectStrings(t, []string{"@"}, a.FirstOf(nil))
	ExpectStrings(t, []string{"@"}, a.FirstOf([]string{"@"}))
	ExpectStrings(t, nil, a.FirstOf([]string{"E", "unknown"}))
}

func TestNullableChain(t *testing.T) {
	g, e := ParseString("", `
		S = A B c;
		A = a | @;
		B = b | @;
	`)
	ExpectNoError(t, e)
	a := analyze(t, g)
	ExpectStrings(t, []string{"c", "a", "b"}, g.Terms)
	ExpectStrings(t, []string{"c", "a", "b"}, a.First("S"))
	ExpectStrings(t, []string{"c", "b"}, a.Follow("A"))
	ExpectStrings(t, []string{"c"}, a.Follow("B"))
	ExpectStrings(t, []string{"#"}, a.Follow("S"))
	ExpectStrings(t, []string{"c", "b"}, a.Select(2))
}

func TestUnreachable(t *testing.T) {
	g, e := ParseString("", "S = a B; B = b; C = c; D = C;")
	ExpectNoError(t, e)
	a := analyze(t, g)
	ExpectStrings(t, []string{"C", "D"}, a.Unreachable())
	ExpectStrings(t, nil, analyze(t, arithmetic(t)).Unreachable())
}

func TestAnalyzeInvalid(t *testing.T) {
	g := &grammar.Grammar{Terms: []string{"a"}, Nonterms: []string{"S"}, Productions: []grammar.Production{{Nonterm: "S", Symbols: []string{"b"}}}}
	_, e := Analyze(g)
	ExpectErrorCode(t, grammar.UndefinedSymbolError, e)
}
