package regex

import (
	"github.com/ava12/ll1"
)

// Error codes used by regex:
const (
	// EmptyRegexError indicates empty regular expression or expression producing no fragments, e.g. "()".
	EmptyRegexError = ll1.RegexErrors + iota

	// TrailingEscapeError indicates regular expression ending with lone backslash.
	TrailingEscapeError

	// UnbalancedParenError indicates unmatched opening or closing parenthesis.
	UnbalancedParenError

	// MalformedRegexError indicates operator lacking operands or operands lacking operator, e.g. "a|" or "*".
	MalformedRegexError
)

func emptyRegexError(re string) *ll1.Error {
	return ll1.FormatError(EmptyRegexError, "empty regular expression %q", re)
}

func trailingEscapeError(re string) *ll1.Error {
	return ll1.FormatError(TrailingEscapeError, "trailing backslash in %q", re)
}

func unbalancedParenError(re string) *ll1.Error {
	return ll1.FormatError(UnbalancedParenError, "unbalanced parenthesis in %q", re)
}

func missingOperandError(re string, op Token) *ll1.Error {
	return ll1.FormatError(MalformedRegexError, "missing operand for %q in %q", op.String(), re)
}

func extraOperandError(re string) *ll1.Error {
	return ll1.FormatError(MalformedRegexError, "missing operator in %q", re)
}
