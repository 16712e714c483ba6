package langdef

import (
	"strings"

	"github.com/ava12/ll1"
	"github.com/ava12/ll1/lexer"
)

// Error codes used by langdef, grammar validation codes are defined in grammar package:
const (
	// ConflictError indicates that grammar is not LL(1): two productions claim the same table cell.
	ConflictError = ll1.GrammarErrors + 50 + iota

	// UnexpectedEofError indicates unfinished grammar description.
	UnexpectedEofError

	// UnexpectedTokenError indicates misplaced token in grammar description.
	UnexpectedTokenError

	// WrongCharError indicates character that cannot appear in grammar description.
	WrongCharError

	// UnknownDirError indicates unknown directive.
	UnknownDirError

	// DirDefinedError indicates directive used more than once.
	DirDefinedError

	// MisplacedDirError indicates directive following production definitions.
	MisplacedDirError

	// NoDefinitionsError indicates grammar description with no production definitions.
	NoDefinitionsError
)

func conflictError(nonterm string, first, second int, terms []string) *ll1.Error {
	return ll1.FormatError(ConflictError, "grammar is not LL(1): productions #%d and #%d of %q conflict on %s",
		first, second, nonterm, strings.Join(terms, ", "))
}

func eofError(sp ll1.SourcePos) *ll1.Error {
	return ll1.FormatErrorPos(sp, UnexpectedEofError, "unexpected end of description")
}

func unexpectedTokenError(token *lexer.Token) *ll1.Error {
	return ll1.FormatErrorPos(token, UnexpectedTokenError, "unexpected %s %q", token.TypeName(), token.Text())
}

func wrongCharError(token *lexer.Token) *ll1.Error {
	return ll1.FormatErrorPos(token, WrongCharError, "wrong char %q in grammar description", token.Text())
}

func unknownDirError(token *lexer.Token) *ll1.Error {
	return ll1.FormatErrorPos(token, UnknownDirError, "unknown directive %s", token.Text())
}

func dirDefinedError(token *lexer.Token) *ll1.Error {
	return ll1.FormatErrorPos(token, DirDefinedError, "directive %s already used", token.Text())
}

func misplacedDirError(token *lexer.Token) *ll1.Error {
	return ll1.FormatErrorPos(token, MisplacedDirError, "directive %s must precede definitions", token.Text())
}

func noDefinitionsError(name string) *ll1.Error {
	return ll1.NewError(NoDefinitionsError, "no definitions in grammar description", name, 0, 0)
}
