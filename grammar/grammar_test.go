package grammar

import (
	"encoding/json"
	"testing"

	. "github.com/ava12/ll1/internal/test"
)

func p(nonterm string, symbols ...string) Production {
	return Production{nonterm, symbols}
}

func arithmetic() *Grammar {
	return &Grammar{
		Start:    "E",
		Terms:    []string{"+", "*", "(", ")", "num"},
		Nonterms: []string{"E", "E'", "T", "T'", "F"},
		Productions: []Production{
			p("E", "T", "E'"),
			p("E'", "+", "T", "E'"),
			p("E'", Epsilon),
			p("T", "F", "T'"),
			p("T'", "*", "F", "T'"),
			p("T'"),
			p("F", "(", "E", ")"),
			p("F", "num"),
		},
	}
}

func TestValidGrammar(t *testing.T) {
	g := arithmetic()
	ExpectNoError(t, g.Validate())
	ExpectBool(t, true, g.IsTerm("num"))
	ExpectBool(t, false, g.IsTerm("E"))
	ExpectBool(t, true, g.IsNonterm("T'"))
	ExpectString(t, "E", g.StartSymbol())

	g.Start = ""
	ExpectNoError(t, g.Validate())
	ExpectString(t, "E", g.StartSymbol())
}

func TestProduction(t *testing.T) {
	ExpectBool(t, true, p("A").IsEpsilon())
	ExpectBool(t, true, p("A", Epsilon).IsEpsilon())
	ExpectBool(t, false, p("A", "a").IsEpsilon())
	ExpectInt(t, 0, len(p("A", Epsilon).Rhs()))
	ExpectStrings(t, []string{"a", "B"}, p("A", "a", "B").Rhs())
	ExpectString(t, "E' = + T E'", p("E'", "+", "T", "E'").String())
	ExpectString(t, "E' = @", p("E'").String())
}

func TestValidationErrors(t *testing.T) {
	samples := []struct {
		modify func(g *Grammar)
		code   int
	}{
		{func(g *Grammar) { g.Nonterms = nil }, EmptyGrammarError},
		{func(g *Grammar) { g.Productions = nil }, EmptyGrammarError},
		{func(g *Grammar) { g.Terms = append(g.Terms, EndMarker) }, ReservedSymbolError},
		{func(g *Grammar) { g.Nonterms = append(g.Nonterms, Epsilon) }, ReservedSymbolError},
		{func(g *Grammar) { g.Terms = append(g.Terms, "") }, ReservedSymbolError},
		{func(g *Grammar) { g.Terms = append(g.Terms, "+") }, DuplicateSymbolError},
		{func(g *Grammar) { g.Terms = append(g.Terms, "E") }, DuplicateSymbolError},
		{func(g *Grammar) { g.Start = "num" }, UnknownStartError},
		{func(g *Grammar) { g.Start = "X" }, UnknownStartError},
		{func(g *Grammar) { g.Productions = append(g.Productions, p("num", "E")) }, WrongLhsError},
		{func(g *Grammar) { g.Productions = append(g.Productions, p("F", "-", "F")) }, UndefinedSymbolError},
		{func(g *Grammar) { g.Productions = append(g.Productions, p("F", Epsilon, "num")) }, MisplacedEpsilonError},
		{func(g *Grammar) { g.Nonterms = append(g.Nonterms, "G") }, NoProductionsError},
	}

	for i, s := range samples {
		g := arithmetic()
		s.modify(g)
		e := g.Validate()
		Assert(t, e != nil, "sample #%d: expecting error", i)
		ExpectErrorCode(t, s.code, e)
	}
}

func TestNewTable(t *testing.T) {
	g := arithmetic()
	table := NewTable(g)
	ExpectStrings(t, []string{"+", "*", "(", ")", "num", EndMarker}, table.Terms)
	ExpectInt(t, len(g.Nonterms), len(table.Cells))
	for _, row := range table.Cells {
		ExpectInt(t, len(table.Terms), len(row))
		for _, c := range row {
			Assert(t, c.Kind == NoRule, "expecting empty cell")
		}
	}

	ExpectInt(t, 5, table.TermIndex(EndMarker))
	ExpectInt(t, -1, table.TermIndex("E"))
	ExpectInt(t, 1, table.NontermIndex("E'"))
	ExpectInt(t, -1, table.NontermIndex("num"))

	table.Cells[4][4] = Cell{RuleCell, 7}
	Assert(t, table.Cell("F", "num") == Cell{RuleCell, 7}, "wrong cell")
	Assert(t, table.Cell("X", "num") == Cell{}, "unknown cell must be empty")
	ExpectStrings(t, []string{"num"}, table.Expected(4))
	ExpectNoError(t, table.Check())
}

func TestTableCheck(t *testing.T) {
	samples := []func(t *Table){
		func(t *Table) { t.Terms = t.Terms[:len(t.Terms)-1] },
		func(t *Table) { t.Start = "X" },
		func(t *Table) { t.Cells = t.Cells[1:] },
		func(t *Table) { t.Cells[0] = t.Cells[0][1:] },
		func(t *Table) { t.Cells[0][0] = Cell{RuleCell, 100} },
		func(t *Table) { t.Cells[0][0] = Cell{RuleCell, 1} },
		func(t *Table) { t.Productions = append(t.Productions, p("F", "-")) },
	}

	for _, modify := range samples {
		table := NewTable(arithmetic())
		modify(table)
		ExpectErrorCode(t, WrongTableError, table.Check())
	}
}

func TestTableJSON(t *testing.T) {
	table := NewTable(arithmetic())
	table.Cells[0][2] = Cell{RuleCell, 0}
	table.Cells[1][3] = Cell{SyncCell, 0}
	data, e := json.Marshal(table)
	ExpectNoError(t, e)

	decoded := &Table{}
	ExpectNoError(t, json.Unmarshal(data, decoded))
	ExpectNoError(t, decoded.Check())
	Assert(t, decoded.Cell("E", "(") == Cell{RuleCell, 0}, "wrong decoded rule cell")
	Assert(t, decoded.Cell("E'", ")").Kind == SyncCell, "wrong decoded sync cell")
	ExpectString(t, "sync", SyncCell.String())

	var k CellKind
	Assert(t, k.UnmarshalText([]byte("bogus")) != nil, "expecting error")
}
