package langdef

import (
	"github.com/ava12/ll1/grammar"
	"github.com/ava12/ll1/internal/ints"
	"github.com/ava12/ll1/internal/queue"
)

// Analysis contains First, Follow, and Select sets of a valid grammar.
// Terminals are indexed in declaration order followed by end marker and epsilon,
// so every returned list is ordered this way.
type Analysis struct {
	g        *grammar.Grammar
	start    int
	names    []string
	terms    map[string]int
	nonterms map[string]int
	lhs      []int
	rhs      [][]string
	first    []*ints.Set
	follow   []*ints.Set
	selects  []*ints.Set
}

// Analyze validates grammar and computes its sets.
// Returns nil and ll1.Error if grammar is not valid.
func Analyze(g *grammar.Grammar) (*Analysis, error) {
	e := g.Validate()
	if e != nil {
		return nil, e
	}

	a := &Analysis{
		g:        g,
		names:    make([]string, 0, len(g.Terms)+2),
		terms:    make(map[string]int, len(g.Terms)+2),
		nonterms: make(map[string]int, len(g.Nonterms)),
		lhs:      make([]int, len(g.Productions)),
		rhs:      make([][]string, len(g.Productions)),
		first:    make([]*ints.Set, len(g.Nonterms)),
		follow:   make([]*ints.Set, len(g.Nonterms)),
		selects:  make([]*ints.Set, len(g.Productions)),
	}

	for _, name := range g.Terms {
		a.addTerm(name)
	}
	a.addTerm(grammar.EndMarker)
	a.addTerm(grammar.Epsilon)

	for i, name := range g.Nonterms {
		a.nonterms[name] = i
		a.first[i] = ints.NewSet()
		a.follow[i] = ints.NewSet()
	}
	a.start = a.nonterms[g.StartSymbol()]

	for i, p := range g.Productions {
		a.lhs[i] = a.nonterms[p.Nonterm]
		a.rhs[i] = p.Rhs()
	}

	a.buildFirst()
	a.buildFollow()
	a.buildSelect()
	return a, nil
}

func (a *Analysis) addTerm(name string) {
	a.terms[name] = len(a.names)
	a.names = append(a.names, name)
}

func (a *Analysis) endIndex() int {
	return len(a.g.Terms)
}

func (a *Analysis) epsIndex() int {
	return len(a.g.Terms) + 1
}

func (a *Analysis) firstOfSymbol(name string) *ints.Set {
	if nt, has := a.nonterms[name]; has {
		return a.first[nt]
	}

	return ints.NewSet(a.terms[name])
}

// firstOfSeq returns First of symbol sequence, epsilon is included if every symbol is nullable.
func (a *Analysis) firstOfSeq(symbols []string) *ints.Set {
	eps := a.epsIndex()
	result := ints.NewSet()
	for _, s := range symbols {
		f := a.firstOfSymbol(s)
		result.Union(f)
		if !f.Contains(eps) {
			result.Remove(eps)
			return result
		}
	}

	result.Add(eps)
	return result
}

func (a *Analysis) buildFirst() {
	for changed := true; changed; {
		changed = false
		for i, symbols := range a.rhs {
			if a.first[a.lhs[i]].Union(a.firstOfSeq(symbols)) {
				changed = true
			}
		}
	}
}

func (a *Analysis) buildFollow() {
	eps := a.epsIndex()
	epsSet := ints.NewSet(eps)
	a.follow[a.start].Add(a.endIndex())
	for changed := true; changed; {
		changed = false
		for i, symbols := range a.rhs {
			for j, s := range symbols {
				nt, isNonterm := a.nonterms[s]
				if !isNonterm {
					continue
				}

				rest := a.firstOfSeq(symbols[j+1:])
				nullable := rest.Contains(eps)
				if a.follow[nt].Union(ints.Subtract(rest, epsSet)) {
					changed = true
				}
				if nullable && a.follow[nt].Union(a.follow[a.lhs[i]]) {
					changed = true
				}
			}
		}
	}
}

func (a *Analysis) buildSelect() {
	eps := a.epsIndex()
	epsSet := ints.NewSet(eps)
	for i, symbols := range a.rhs {
		s := a.firstOfSeq(symbols)
		if s.Contains(eps) {
			s = ints.Union(ints.Subtract(s, epsSet), a.follow[a.lhs[i]])
		}
		a.selects[i] = s
	}
}

func (a *Analysis) toNames(s *ints.Set) []string {
	items := s.ToSlice()
	result := make([]string, len(items))
	for i, item := range items {
		result[i] = a.names[item]
	}
	return result
}

// Grammar returns analyzed grammar.
func (a *Analysis) Grammar() *grammar.Grammar {
	return a.g
}

// First returns First set of a symbol, grammar.Epsilon included for nullable nonterminals.
// First of a terminal, end marker, or epsilon is the symbol itself. Returns nil for unknown symbols.
func (a *Analysis) First(symbol string) []string {
	if _, has := a.nonterms[symbol]; has {
		return a.toNames(a.first[a.nonterms[symbol]])
	}
	if _, has := a.terms[symbol]; has {
		return []string{symbol}
	}
	return nil
}

// FirstOf returns First set of symbol sequence, grammar.Epsilon included if the sequence is nullable.
// Epsilon symbols in the sequence are ignored. Returns nil if the sequence contains unknown symbols.
func (a *Analysis) FirstOf(symbols []string) []string {
	known := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s == grammar.Epsilon {
			continue
		}

		_, isNonterm := a.nonterms[s]
		_, isTerm := a.terms[s]
		if !isNonterm && !isTerm {
			return nil
		}

		known = append(known, s)
	}
	return a.toNames(a.firstOfSeq(known))
}

// Follow returns Follow set of a nonterminal or nil for unknown names.
func (a *Analysis) Follow(nonterm string) []string {
	nt, has := a.nonterms[nonterm]
	if !has {
		return nil
	}

	return a.toNames(a.follow[nt])
}

// Select returns Select set of i-th production.
func (a *Analysis) Select(production int) []string {
	return a.toNames(a.selects[production])
}

// Nullable tells whether nonterminal derives empty string.
func (a *Analysis) Nullable(nonterm string) bool {
	nt, has := a.nonterms[nonterm]
	return has && a.first[nt].Contains(a.epsIndex())
}

// Unreachable returns nonterminals that cannot be derived from start symbol, in declaration order.
func (a *Analysis) Unreachable() []string {
	reached := ints.NewSet(a.start)
	q := queue.New(a.start)
	for !q.IsEmpty() {
		nt, _ := q.First()
		for i, symbols := range a.rhs {
			if a.lhs[i] != nt {
				continue
			}

			for _, s := range symbols {
				next, isNonterm := a.nonterms[s]
				if isNonterm && !reached.Contains(next) {
					reached.Add(next)
					q.Append(next)
				}
			}
		}
	}

	var result []string
	for i, name := range a.g.Nonterms {
		if !reached.Contains(i) {
			result = append(result, name)
		}
	}
	return result
}
