package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ava12/ll1/grammar"
	"github.com/ava12/ll1/lexer"
	"github.com/ava12/ll1/parser"
)

func makeJson(t *grammar.Table) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

func set(names []string) string {
	return "{" + strings.Join(names, ", ") + "}"
}

// renderSets writes First and Follow sets of every nonterminal and Select sets of every production.
func renderSets(w io.Writer, p *parser.Parser) error {
	a := p.Analysis()
	g := a.Grammar()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "nonterminal\tfirst\tfollow")
	for _, nt := range g.Nonterms {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", nt, set(a.First(nt)), set(a.Follow(nt)))
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "#\tproduction\tselect")
	for i, prod := range g.Productions {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i, prod, set(a.Select(i)))
	}
	return tw.Flush()
}

// renderTable writes prediction table: production index for rule cells, "sync" for synchronization cells.
func renderTable(w io.Writer, t *grammar.Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', tabwriter.AlignRight|tabwriter.Debug)
	fmt.Fprint(tw, "\t")
	for _, term := range t.Terms {
		fmt.Fprintf(tw, "%s\t", term)
	}
	fmt.Fprintln(tw)

	for i, nt := range t.Nonterms {
		fmt.Fprintf(tw, "%s\t", nt)
		for _, c := range t.Cells[i] {
			switch c.Kind {
			case grammar.RuleCell:
				fmt.Fprintf(tw, "%d\t", c.Production)
			case grammar.SyncCell:
				fmt.Fprint(tw, "sync\t")
			default:
				fmt.Fprint(tw, "\t")
			}
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// renderParse writes tokens, lexical errors, and syntax error events.
func renderParse(w io.Writer, tokens []*lexer.Token, lexErrors []error, r *parser.Result) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, t := range tokens {
		fmt.Fprintf(tw, "%d:%d\t%s\t%q\n", t.Line(), t.Col(), t.TypeName(), t.Text())
	}
	tw.Flush()

	for _, e := range lexErrors {
		fmt.Fprintln(w, e)
	}
	for _, e := range r.Errors() {
		fmt.Fprintln(w, e)
	}

	if r.Success && len(lexErrors) == 0 {
		fmt.Fprintf(w, "accepted, %d tokens\n", r.Consumed)
	} else {
		fmt.Fprintf(w, "rejected, %d of %d tokens consumed\n", r.Consumed, len(tokens))
	}
}
