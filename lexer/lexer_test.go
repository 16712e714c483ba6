package lexer

import (
	"strings"
	"sync"
	"testing"

	"github.com/ava12/ll1"
	. "github.com/ava12/ll1/internal/test"
	"github.com/ava12/ll1/source"
)

func alt(chars string) string {
	return "(" + strings.Join(strings.Split(chars, ""), "|") + ")"
}

const (
	letters = "abcdefghijklmnopqrstuvwxyz"
	digits  = "0123456789"
)

const (
	numType = iota
	nameType
	opType
	spaceType
	ifType
	whileType = 10
)

var tokenTypes = []TokenType{
	{numType, "num", alt(digits) + alt(digits) + "*", false},
	{nameType, "name", alt(letters) + alt(letters+digits) + "*", false},
	{opType, "op", `\+|-|\*|/|=|==|\(|\)`, false},
	{spaceType, "space", alt(" \t\n") + alt(" \t\n") + "*", true},
}

func newLexer(t *testing.T, opts ...Option) *Lexer {
	t.Helper()
	l, e := New(tokenTypes, opts...)
	ExpectNoError(t, e)
	return l
}

func tokenTexts(tokens []*Token) []string {
	result := make([]string, len(tokens))
	for i, t := range tokens {
		result[i] = t.Text()
	}
	return result
}

func tokenNames(tokens []*Token) []string {
	result := make([]string, len(tokens))
	for i, t := range tokens {
		result[i] = t.TypeName()
	}
	return result
}

func TestEmpty(t *testing.T) {
	l := newLexer(t)
	for _, src := range []string{"", " ", "  ", " \t\n "} {
		tokens, errs := l.ScanString("", src)
		ExpectInt(t, 0, len(tokens))
		ExpectInt(t, 0, len(errs))
	}
}

func TestTokenSamples(t *testing.T) {
	l := newLexer(t)
	tokens, errs := l.ScanString("", "x1 = 42*(y - 7)")
	ExpectInt(t, 0, len(errs))
	ExpectStrings(t, []string{"x1", "=", "42", "*", "(", "y", "-", "7", ")"}, tokenTexts(tokens))
	ExpectStrings(t, []string{"name", "op", "num", "op", "op", "name", "op", "num", "op"}, tokenNames(tokens))
}

func TestMaximalMunch(t *testing.T) {
	l, e := New([]TokenType{{0, "a", "a(a)*", false}})
	ExpectNoError(t, e)
	tokens, errs := l.ScanString("", "aa")
	ExpectInt(t, 0, len(errs))
	ExpectStrings(t, []string{"aa"}, tokenTexts(tokens))

	l = newLexer(t)
	tokens, _ = l.ScanString("", "a==b=c")
	ExpectStrings(t, []string{"a", "==", "b", "=", "c"}, tokenTexts(tokens))
}

func TestPriority(t *testing.T) {
	types := []TokenType{
		{ifType, "if", "if", false},
		{nameType, "name", alt(letters) + alt(letters) + "*", false},
		{spaceType, "space", " ", true},
	}
	l, e := New(types)
	ExpectNoError(t, e)
	tokens, errs := l.ScanString("", "if iff i")
	ExpectInt(t, 0, len(errs))
	ExpectStrings(t, []string{"if", "name", "name"}, tokenNames(tokens))
	ExpectInt(t, ifType, tokens[0].Type())
}

func TestKeywords(t *testing.T) {
	l := newLexer(t,
		WithKeywords(nameType, TokenType{Type: whileType, TypeName: "while"}, "while"),
		WithKeywords(nameType, TokenType{Type: ifType, TypeName: "if"}, "if", "elif"),
	)
	tokens, errs := l.ScanString("", "while whiles if elif x")
	ExpectInt(t, 0, len(errs))
	ExpectStrings(t, []string{"while", "name", "if", "if", "name"}, tokenNames(tokens))
	ExpectInt(t, whileType, tokens[0].Type())
	ExpectInt(t, nameType, tokens[1].Type())
	ExpectString(t, "elif", tokens[3].Text())
}

func TestWrongChars(t *testing.T) {
	l := newLexer(t)
	src := source.FromString("src", "a\n ?b%")
	tokens, errs := l.Scan(src)
	ExpectStrings(t, []string{"a", "?", "b", "%"}, tokenTexts(tokens))
	ExpectStrings(t, []string{"name", ErrorTokenName, "name", ErrorTokenName}, tokenNames(tokens))
	ExpectInt(t, ErrorTokenType, tokens[1].Type())
	ExpectInt(t, 2, len(errs))

	ExpectErrorCode(t, WrongCharError, errs[0])
	ee := errs[0].(*ll1.Error)
	ExpectString(t, "src", ee.SourceName)
	ExpectInt(t, 2, ee.Line)
	ExpectInt(t, 2, ee.Col)
	Assert(t, strings.Contains(ee.Message, `'?'`), "unexpected message: %s", ee.Message)

	ee = errs[1].(*ll1.Error)
	ExpectInt(t, 2, ee.Line)
	ExpectInt(t, 4, ee.Col)
}

func TestWrongUnicodeChar(t *testing.T) {
	l := newLexer(t)
	tokens, errs := l.ScanString("", "aя1")
	ExpectStrings(t, []string{"a", "я", "1"}, tokenTexts(tokens))
	ExpectInt(t, 1, len(errs))

	tokens, errs = l.Scan(source.New("", []byte{'a', 0xff, 'b'}))
	ExpectInt(t, 3, len(tokens))
	ExpectInt(t, 1, len(errs))
	ExpectString(t, "\xff", tokens[1].Text())
}

func TestPositions(t *testing.T) {
	l := newLexer(t)
	src := source.FromString("name", "ab\n  cd 12\n\n+")
	tokens, _ := l.Scan(src)
	expected := []struct {
		pos, line, col int
	}{
		{0, 1, 1},
		{5, 2, 3},
		{8, 2, 6},
		{12, 4, 1},
	}
	ExpectInt(t, len(expected), len(tokens))
	for i, e := range expected {
		ExpectInt(t, e.pos, tokens[i].Pos())
		ExpectInt(t, e.line, tokens[i].Line())
		ExpectInt(t, e.col, tokens[i].Col())
		ExpectString(t, "name", tokens[i].SourceName())
		Assert(t, tokens[i].Source() == src, "wrong source")
	}
}

func TestTokenTextsCoverSource(t *testing.T) {
	l := newLexer(t)
	inputs := []string{
		"foo = bar + 12*baz",
		"(a)(b)((c))",
		"x==y==z",
		"a1b2 c3d4 == 5678",
	}
	for _, input := range inputs {
		tokens, errs := l.ScanString("", input)
		ExpectInt(t, 0, len(errs))
		ExpectString(t, strings.ReplaceAll(input, " ", ""), strings.Join(tokenTexts(tokens), ""))
		for _, token := range tokens {
			single, errs := l.ScanString("", token.Text())
			ExpectInt(t, 0, len(errs))
			ExpectInt(t, 1, len(single))
			ExpectInt(t, token.Type(), single[0].Type())
		}
	}
}

func TestConfigErrors(t *testing.T) {
	samples := []struct {
		types []TokenType
		opts  []Option
		code  int
	}{
		{nil, nil, NoTokenTypesError},
		{[]TokenType{{-2, "neg", "a", false}}, nil, WrongTypeError},
		{[]TokenType{{1, "a", "a", false}, {1, "b", "b", false}}, nil, DuplicateTypeError},
		{[]TokenType{{1, "a", "(a", false}}, nil, RegexError},
		{[]TokenType{{1, "a", "", false}}, nil, RegexError},
		{[]TokenType{{1, "a", "a", false}}, []Option{WithKeywords(2, TokenType{3, "b", "", false}, "a")}, KeywordError},
	}

	for _, s := range samples {
		_, e := New(s.types, s.opts...)
		ExpectErrorCode(t, s.code, e)
	}
}

func TestMaxStates(t *testing.T) {
	_, e := New(tokenTypes, WithMaxStates(2))
	Assert(t, e != nil, "expecting error")

	_, e = New(tokenTypes, WithMaxStates(1000))
	ExpectNoError(t, e)
}

func TestTokenType(t *testing.T) {
	l := newLexer(t)
	tt, has := l.TokenType(spaceType)
	ExpectBool(t, true, has)
	ExpectBool(t, true, tt.Aside)
	_, has = l.TokenType(100)
	ExpectBool(t, false, has)
	Assert(t, len(l.DFA().States) > 1, "DFA must have states")
}

func TestConcurrentScans(t *testing.T) {
	l := newLexer(t)
	input := strings.Repeat("alpha = beta*(12 - gamma) ", 50)
	expected, _ := l.ScanString("", input)

	var wg sync.WaitGroup
	results := make([][]*Token, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = l.ScanString("", input)
		}(i)
	}
	wg.Wait()

	for _, tokens := range results {
		ExpectStrings(t, tokenTexts(expected), tokenTexts(tokens))
	}
}
