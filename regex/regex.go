// Package regex converts regular expressions to postfix form and compiles them to NFA fragments.
//
// Supported syntax:
//   - `|` alternation, `*` Kleene star, `(` and `)` grouping, concatenation is implicit;
//   - `@` matches empty string;
//   - backslash makes the next character literal, e.g. `\*` or `\@`;
//   - any other character matches itself.
//
// There are no character classes, ranges, anchors, or `+` and `?` quantifiers.
package regex

import (
	"strings"

	"github.com/ava12/ll1/automaton"
)

// Kind is a regular expression token kind.
type Kind int

// Token kinds:
const (
	Literal Kind = iota
	Empty
	Union
	Concat
	Star
	LeftParen
	RightParen
)

type Token struct {
	Kind Kind
	// Char contains literal character, meaningful only for Literal.
	Char rune
}

var kindChars = map[Kind]string{
	Empty:      "@",
	Union:      "|",
	Concat:     ".",
	Star:       "*",
	LeftParen:  "(",
	RightParen: ")",
}

var operatorKinds = map[rune]Kind{
	'@': Empty,
	'|': Union,
	'*': Star,
	'(': LeftParen,
	')': RightParen,
}

// String returns token text, literal operator characters are escaped.
func (t Token) String() string {
	if t.Kind != Literal {
		return kindChars[t.Kind]
	}

	_, isOperator := operatorKinds[t.Char]
	if isOperator || t.Char == '\\' || t.Char == '.' {
		return "\\" + string(t.Char)
	}
	return string(t.Char)
}

// Format joins token texts, e.g. postfix form of "ab|c" is "ab.c|".
func Format(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.String())
	}
	return sb.String()
}

// Tokenize splits regular expression into tokens and inserts Concat tokens where concatenation is implied.
func Tokenize(re string) ([]Token, error) {
	var result []Token
	escaped := false
	for _, c := range re {
		t := Token{Literal, c}
		if escaped {
			escaped = false
		} else if c == '\\' {
			escaped = true
			continue
		} else if kind, isOperator := operatorKinds[c]; isOperator {
			t = Token{Kind: kind}
		}

		if len(result) > 0 && needsConcat(result[len(result)-1], t) {
			result = append(result, Token{Kind: Concat})
		}
		result = append(result, t)
	}

	if escaped {
		return nil, trailingEscapeError(re)
	}

	return result, nil
}

func needsConcat(a, b Token) bool {
	if a.Kind == LeftParen || a.Kind == Union {
		return false
	}

	return b.Kind != RightParen && b.Kind != Union && b.Kind != Star
}

var precedence = map[Kind]int{
	Union:  1,
	Concat: 2,
	Star:   3,
}

// ToPostfix converts regular expression to postfix form using shunting yard algorithm.
func ToPostfix(re string) ([]Token, error) {
	tokens, e := Tokenize(re)
	if e != nil {
		return nil, e
	}

	result := make([]Token, 0, len(tokens))
	var ops []Token
	for _, t := range tokens {
		switch t.Kind {
		case Literal, Empty:
			result = append(result, t)

		case LeftParen:
			ops = append(ops, t)

		case RightParen:
			found := false
			for len(ops) > 0 {
				last := len(ops) - 1
				op := ops[last]
				ops = ops[:last]
				if op.Kind == LeftParen {
					found = true
					break
				}
				result = append(result, op)
			}
			if !found {
				return nil, unbalancedParenError(re)
			}

		default:
			p := precedence[t.Kind]
			for len(ops) > 0 {
				last := len(ops) - 1
				if ops[last].Kind == LeftParen || precedence[ops[last].Kind] < p {
					break
				}
				result = append(result, ops[last])
				ops = ops[:last]
			}
			ops = append(ops, t)
		}
	}

	for i := len(ops) - 1; i >= 0; i-- {
		if ops[i].Kind == LeftParen {
			return nil, unbalancedParenError(re)
		}
		result = append(result, ops[i])
	}

	return result, nil
}

// Compile builds NFA fragment for regular expression, all created nodes get the given class.
func Compile(b *automaton.Builder, re string, class int) (automaton.Fragment, error) {
	var f automaton.Fragment
	if re == "" {
		return f, emptyRegexError(re)
	}

	postfix, e := ToPostfix(re)
	if e != nil {
		return f, e
	}

	if len(postfix) == 0 {
		return f, emptyRegexError(re)
	}

	stack := make([]automaton.Fragment, 0, len(postfix))
	for _, t := range postfix {
		l := len(stack)
		switch t.Kind {
		case Literal:
			stack = append(stack, b.Literal(t.Char, class))

		case Empty:
			stack = append(stack, b.Empty(class))

		case Star:
			if l < 1 {
				return f, missingOperandError(re, t)
			}
			stack[l-1] = b.Star(stack[l-1])

		case Concat, Union:
			if l < 2 {
				return f, missingOperandError(re, t)
			}
			if t.Kind == Concat {
				stack[l-2] = b.Concat(stack[l-2], stack[l-1])
			} else {
				stack[l-2] = b.Union(stack[l-2], stack[l-1])
			}
			stack = stack[:l-1]
		}
	}

	if len(stack) != 1 {
		return f, extraOperandError(re)
	}

	return stack[0], nil
}
