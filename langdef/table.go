package langdef

import (
	"github.com/ava12/ll1/grammar"
)

// BuildTable analyzes grammar and builds its prediction table.
// Returns nil and ll1.Error if grammar is not valid or is not LL(1).
func BuildTable(g *grammar.Grammar) (*grammar.Table, error) {
	a, e := Analyze(g)
	if e != nil {
		return nil, e
	}

	return a.Table()
}

// Table builds prediction table.
// Every production is placed into cells of its Select set, a cell claimed by two productions
// makes the grammar rejected. Remaining empty cells of Follow sets become synchronization cells.
func (a *Analysis) Table() (*grammar.Table, error) {
	t := grammar.NewTable(a.g)
	for i := range a.rhs {
		nt := a.lhs[i]
		var conflicts []string
		rival := -1
		for _, term := range a.selects[i].ToSlice() {
			c := &t.Cells[nt][term]
			if c.Kind == grammar.RuleCell && c.Production != i {
				conflicts = append(conflicts, a.names[term])
				rival = c.Production
				continue
			}

			*c = grammar.Cell{Kind: grammar.RuleCell, Production: i}
		}
		if len(conflicts) > 0 {
			return nil, conflictError(a.g.Nonterms[nt], rival, i, conflicts)
		}
	}

	for nt, follow := range a.follow {
		for _, term := range follow.ToSlice() {
			c := &t.Cells[nt][term]
			if c.Kind == grammar.NoRule {
				c.Kind = grammar.SyncCell
			}
		}
	}

	return t, nil
}
