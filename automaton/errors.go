package automaton

import (
	"github.com/ava12/ll1"
)

// Error codes used by automaton:
const (
	// NoFragmentsError indicates that Merge is called without fragments.
	NoFragmentsError = ll1.RegexErrors + 50 + iota

	// StateLimitError indicates that subset construction exceeded configured DFA state limit.
	StateLimitError
)

func noFragmentsError() *ll1.Error {
	return ll1.FormatError(NoFragmentsError, "no fragments to merge")
}

func stateLimitError(limit int) *ll1.Error {
	return ll1.FormatError(StateLimitError, "DFA state limit (%d) exceeded", limit)
}
