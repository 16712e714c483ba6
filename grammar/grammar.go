// Package grammar defines context-free grammar and LL(1) prediction table structures.
package grammar

import (
	"strings"

	"github.com/ava12/ll1"
)

const (
	// Epsilon is the empty right side marker, may only be the single symbol of a production.
	Epsilon = "@"

	// EndMarker is the end of input terminal, appended implicitly.
	EndMarker = "#"
)

// Error codes used by grammar:
const (
	// EmptyGrammarError indicates grammar with no nonterminals or no productions.
	EmptyGrammarError = ll1.GrammarErrors + iota

	// ReservedSymbolError indicates empty or reserved name used as terminal or nonterminal.
	ReservedSymbolError

	// DuplicateSymbolError indicates symbol declared more than once.
	DuplicateSymbolError

	// UnknownStartError indicates start symbol that is not a nonterminal.
	UnknownStartError

	// WrongLhsError indicates production left side that is not a nonterminal.
	WrongLhsError

	// UndefinedSymbolError indicates undeclared symbol in production right side.
	UndefinedSymbolError

	// MisplacedEpsilonError indicates epsilon marker combined with other symbols.
	MisplacedEpsilonError

	// NoProductionsError indicates nonterminal having no productions.
	NoProductionsError

	// WrongTableError indicates prediction table with inconsistent dimensions or references.
	WrongTableError
)

// Production is a rule Nonterm → Symbols. Empty Symbols or single Epsilon symbol means empty right side.
type Production struct {
	Nonterm string   `json:"nonterm"`
	Symbols []string `json:"symbols"`
}

// IsEpsilon tells whether the right side is empty.
func (p Production) IsEpsilon() bool {
	return len(p.Symbols) == 0 || (len(p.Symbols) == 1 && p.Symbols[0] == Epsilon)
}

// Rhs returns right side symbols without epsilon marker.
func (p Production) Rhs() []string {
	if p.IsEpsilon() {
		return nil
	}

	return p.Symbols
}

// String returns production in grammar description syntax, e.g. "E' = + T E'".
func (p Production) String() string {
	if p.IsEpsilon() {
		return p.Nonterm + " = " + Epsilon
	}

	return p.Nonterm + " = " + strings.Join(p.Symbols, " ")
}

// Grammar is a context-free grammar, symbols are referred to by names.
// Terms and Nonterms order is used for output and table layout.
type Grammar struct {
	Start       string       `json:"start"`
	Terms       []string     `json:"terms"`
	Nonterms    []string     `json:"nonterms"`
	Productions []Production `json:"productions"`
}

func isReserved(name string) bool {
	return name == "" || name == Epsilon || name == EndMarker
}

func emptyGrammarError() *ll1.Error {
	return ll1.FormatError(EmptyGrammarError, "grammar has no nonterminals or productions")
}

func reservedSymbolError(name string) *ll1.Error {
	return ll1.FormatError(ReservedSymbolError, "cannot declare reserved symbol %q", name)
}

func duplicateSymbolError(name string) *ll1.Error {
	return ll1.FormatError(DuplicateSymbolError, "symbol %q declared more than once", name)
}

func unknownStartError(name string) *ll1.Error {
	return ll1.FormatError(UnknownStartError, "start symbol %q is not a nonterminal", name)
}

func wrongLhsError(i int, name string) *ll1.Error {
	return ll1.FormatError(WrongLhsError, "production #%d: %q is not a nonterminal", i, name)
}

func undefinedSymbolError(i int, name string) *ll1.Error {
	return ll1.FormatError(UndefinedSymbolError, "production #%d: undefined symbol %q", i, name)
}

func misplacedEpsilonError(i int) *ll1.Error {
	return ll1.FormatError(MisplacedEpsilonError, "production #%d: %q must be the only symbol", i, Epsilon)
}

func noProductionsError(names []string) *ll1.Error {
	return ll1.FormatError(NoProductionsError, "nonterminals without productions: %s", strings.Join(names, ", "))
}

// IsTerm tells whether name is a declared terminal.
func (g *Grammar) IsTerm(name string) bool {
	for _, t := range g.Terms {
		if t == name {
			return true
		}
	}
	return false
}

// IsNonterm tells whether name is a declared nonterminal.
func (g *Grammar) IsNonterm(name string) bool {
	for _, nt := range g.Nonterms {
		if nt == name {
			return true
		}
	}
	return false
}

// Validate checks symbol declarations and productions, returns nil or ll1.Error.
// Empty Start means the first nonterminal.
func (g *Grammar) Validate() error {
	if len(g.Nonterms) == 0 || len(g.Productions) == 0 {
		return emptyGrammarError()
	}

	declared := make(map[string]bool, len(g.Terms)+len(g.Nonterms))
	for _, name := range g.Terms {
		if isReserved(name) {
			return reservedSymbolError(name)
		}
		if _, has := declared[name]; has {
			return duplicateSymbolError(name)
		}
		declared[name] = false
	}
	for _, name := range g.Nonterms {
		if isReserved(name) {
			return reservedSymbolError(name)
		}
		if _, has := declared[name]; has {
			return duplicateSymbolError(name)
		}
		declared[name] = true
	}

	if g.Start != "" && !declared[g.Start] {
		return unknownStartError(g.Start)
	}

	defined := make(map[string]bool, len(g.Nonterms))
	for i, p := range g.Productions {
		if !declared[p.Nonterm] {
			return wrongLhsError(i, p.Nonterm)
		}
		defined[p.Nonterm] = true

		for _, s := range p.Symbols {
			if s == Epsilon {
				if len(p.Symbols) > 1 {
					return misplacedEpsilonError(i)
				}
				continue
			}

			if _, has := declared[s]; !has {
				return undefinedSymbolError(i, s)
			}
		}
	}

	var missing []string
	for _, name := range g.Nonterms {
		if !defined[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return noProductionsError(missing)
	}

	return nil
}

// StartSymbol returns Start or the first nonterminal if Start is empty.
func (g *Grammar) StartSymbol() string {
	if g.Start == "" && len(g.Nonterms) > 0 {
		return g.Nonterms[0]
	}

	return g.Start
}
