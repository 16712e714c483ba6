package grammar

import (
	"fmt"
	"sync"

	"golang.org/x/exp/slices"

	"github.com/ava12/ll1"
)

// CellKind tells what a prediction table cell contains.
type CellKind int

const (
	// NoRule cell means a syntax error.
	NoRule CellKind = iota
	// RuleCell cell refers to a production to expand.
	RuleCell
	// SyncCell cell is a synchronization point for panic-mode recovery, never a valid expansion.
	SyncCell
)

var cellKindNames = []string{"none", "rule", "sync"}

func (k CellKind) String() string {
	if k < 0 || int(k) >= len(cellKindNames) {
		return fmt.Sprintf("CellKind(%d)", int(k))
	}

	return cellKindNames[k]
}

func (k CellKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *CellKind) UnmarshalText(text []byte) error {
	for i, name := range cellKindNames {
		if name == string(text) {
			*k = CellKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown cell kind %q", text)
}

type Cell struct {
	Kind CellKind `json:"kind"`
	// Production contains production index, meaningful only for RuleCell.
	Production int `json:"production"`
}

// Table is an LL(1) prediction table: one row per nonterminal, one column per terminal.
// The last column is EndMarker. Table must not be modified after construction.
type Table struct {
	Start       string       `json:"start"`
	Terms       []string     `json:"terms"`
	Nonterms    []string     `json:"nonterms"`
	Productions []Production `json:"productions"`
	Cells       [][]Cell     `json:"cells"`

	once         sync.Once
	termIndex    map[string]int
	nontermIndex map[string]int
}

// NewTable creates table for grammar with every cell set to NoRule.
func NewTable(g *Grammar) *Table {
	terms := make([]string, 0, len(g.Terms)+1)
	terms = append(terms, g.Terms...)
	terms = append(terms, EndMarker)
	cells := make([][]Cell, len(g.Nonterms))
	for i := range cells {
		cells[i] = make([]Cell, len(terms))
	}

	return &Table{
		Start:       g.StartSymbol(),
		Terms:       terms,
		Nonterms:    slices.Clone(g.Nonterms),
		Productions: slices.Clone(g.Productions),
		Cells:       cells,
	}
}

func (t *Table) index() {
	t.once.Do(func() {
		t.termIndex = make(map[string]int, len(t.Terms))
		for i, name := range t.Terms {
			t.termIndex[name] = i
		}
		t.nontermIndex = make(map[string]int, len(t.Nonterms))
		for i, name := range t.Nonterms {
			t.nontermIndex[name] = i
		}
	})
}

// TermIndex returns column index for terminal name or -1.
func (t *Table) TermIndex(name string) int {
	t.index()
	if i, has := t.termIndex[name]; has {
		return i
	}
	return -1
}

// NontermIndex returns row index for nonterminal name or -1.
func (t *Table) NontermIndex(name string) int {
	t.index()
	if i, has := t.nontermIndex[name]; has {
		return i
	}
	return -1
}

// Cell returns cell for nonterminal and terminal names, NoRule cell for unknown names.
func (t *Table) Cell(nonterm, term string) Cell {
	nt := t.NontermIndex(nonterm)
	tm := t.TermIndex(term)
	if nt < 0 || tm < 0 {
		return Cell{}
	}

	return t.Cells[nt][tm]
}

// Expected returns terminals having non-empty cells for nonterminal row in column order.
func (t *Table) Expected(nonterm int) []string {
	var result []string
	for i, c := range t.Cells[nonterm] {
		if c.Kind == RuleCell {
			result = append(result, t.Terms[i])
		}
	}
	return result
}

func wrongTableError(msg string, params ...any) *ll1.Error {
	return ll1.FormatError(WrongTableError, "wrong table: "+msg, params...)
}

// Check verifies table dimensions, production references, and symbol names.
// Intended for tables decoded from external data.
func (t *Table) Check() error {
	if len(t.Terms) == 0 || t.Terms[len(t.Terms)-1] != EndMarker {
		return wrongTableError("last terminal must be %q", EndMarker)
	}
	if t.NontermIndex(t.Start) < 0 {
		return wrongTableError("unknown start symbol %q", t.Start)
	}
	if len(t.Cells) != len(t.Nonterms) {
		return wrongTableError("%d rows for %d nonterminals", len(t.Cells), len(t.Nonterms))
	}

	for i, p := range t.Productions {
		if t.NontermIndex(p.Nonterm) < 0 {
			return wrongTableError("production #%d has unknown nonterminal %q", i, p.Nonterm)
		}
		for _, s := range p.Rhs() {
			if t.NontermIndex(s) < 0 && t.TermIndex(s) < 0 {
				return wrongTableError("production #%d has unknown symbol %q", i, s)
			}
		}
	}

	for i, row := range t.Cells {
		if len(row) != len(t.Terms) {
			return wrongTableError("row %q has %d cells for %d terminals", t.Nonterms[i], len(row), len(t.Terms))
		}
		for _, c := range row {
			if c.Kind == RuleCell && (c.Production < 0 || c.Production >= len(t.Productions) || t.Productions[c.Production].Nonterm != t.Nonterms[i]) {
				return wrongTableError("row %q refers to wrong production #%d", t.Nonterms[i], c.Production)
			}
		}
	}

	return nil
}
