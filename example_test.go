package ll1_test

import (
	"fmt"

	"github.com/ava12/ll1/langdef"
	"github.com/ava12/ll1/lexer"
	"github.com/ava12/ll1/parser"
	"github.com/ava12/ll1/source"
)

func Example() {
	digit := "(0|1|2|3|4|5|6|7|8|9)"
	exprLexer, e := lexer.New([]lexer.TokenType{
		{Type: 0, TypeName: "num", Re: digit + digit + "*"},
		{Type: 1, TypeName: "+", Re: `\+|-`},
		{Type: 2, TypeName: "*", Re: `\*|/`},
		{Type: 3, TypeName: "(", Re: `\(`},
		{Type: 4, TypeName: ")", Re: `\)`},
		{Type: 5, TypeName: "space", Re: "( )( )*", Aside: true},
	})
	if e != nil {
		panic(e)
	}

	grammar := `
!term + * ( ) num;
E  = T E';
E' = + T E' | @;  # "+" stands for both "+" and "-"
T  = F T';
T' = * F T' | @;
F  = ( E ) | num;
`
	exprGrammar, e := langdef.ParseString("example grammar", grammar)
	if e != nil {
		fmt.Println(e)
		return
	}

	exprParser, e := parser.New(exprGrammar)
	if e != nil {
		panic(e)
	}

	for _, input := range []string{"2+3*(4-1)", "2+*3"} {
		result, _ := exprParser.ParseSource(exprLexer, source.FromString("input", input))
		if result.Success {
			fmt.Println(input, "accepted")
		}
		for _, e := range result.Errors() {
			fmt.Println(input, "rejected:", e)
		}
	}

	// Output:
	// 2+3*(4-1) accepted
	// 2+*3 rejected: unexpected * "*" in T, expecting one of: ( num in input at line 1 col 3
}
