package parser

import (
	"fmt"
	"strings"

	"github.com/ava12/ll1"
)

// Error codes used by parser:
const (
	// UnexpectedTokenError indicates terminal on stack top not matching lookahead, parsing halts.
	UnexpectedTokenError = ll1.SyntaxErrors + iota

	// NoRuleError indicates empty table cell for nonterminal on stack top and lookahead.
	NoRuleError

	// SkippedError indicates nonterminal skipped at synchronization point.
	SkippedError
)

func describe(ev *Event) string {
	if ev.Token == nil {
		return "end of input"
	}

	return fmt.Sprintf("%s %q", ev.Terminal, ev.Token.Text())
}

func newEventError(ev *Event, code int, msg string, params ...any) *ll1.Error {
	if sp, has := ev.Token.(ll1.SourcePos); has {
		return ll1.FormatErrorPos(sp, code, msg, params...)
	}

	return ll1.FormatError(code, msg+" (token #%d)", append(params, ev.Index)...)
}

func unexpectedTokenError(ev *Event) *ll1.Error {
	return newEventError(ev, UnexpectedTokenError, "unexpected %s, expecting %s", describe(ev), ev.Symbol)
}

func noRuleError(ev *Event) *ll1.Error {
	if len(ev.Expected) == 0 {
		return newEventError(ev, NoRuleError, "unexpected %s in %s", describe(ev), ev.Symbol)
	}

	return newEventError(ev, NoRuleError, "unexpected %s in %s, expecting one of: %s",
		describe(ev), ev.Symbol, strings.Join(ev.Expected, " "))
}

func skippedError(ev *Event) *ll1.Error {
	return newEventError(ev, SkippedError, "%s skipped at %s", ev.Symbol, describe(ev))
}
