// Package parser implements table-driven predictive parser with panic-mode error recovery.
//
// Parser builds no tree, it only checks whether token sequence is derivable from the start symbol
// and records syntax error events.
package parser

import (
	"log/slog"

	"github.com/ava12/ll1"
	"github.com/ava12/ll1/grammar"
	"github.com/ava12/ll1/langdef"
	"github.com/ava12/ll1/lexer"
	"github.com/ava12/ll1/source"
)

// Token is a parser input item, *lexer.Token satisfies this interface.
// Token maps to terminal named by its type name if there is such terminal, to terminal named by its text otherwise.
type Token interface {
	TypeName() string
	Text() string
}

// EventKind is a kind of syntax error event.
type EventKind int

const (
	// Mismatch means that terminal on stack top differs from lookahead, parsing halts.
	Mismatch EventKind = iota
	// NoRule means that table has no rule for nonterminal on stack top and lookahead.
	NoRule
	// Sync means that nonterminal was popped at a synchronization point.
	Sync
)

var eventKindNames = []string{"mismatch", "no rule", "sync"}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return "unknown"
	}

	return eventKindNames[k]
}

type Event struct {
	Kind EventKind
	// Index contains lookahead token index, equals to number of tokens for end of input.
	Index int
	// Symbol contains stack top symbol.
	Symbol string
	// Terminal contains lookahead terminal name, grammar.EndMarker for end of input.
	Terminal string
	// Token contains lookahead token, nil for end of input.
	Token Token
	// Expected contains terminals acceptable at this point.
	Expected []string
}

// Error converts event to ll1.Error with token position if the token implements ll1.SourcePos.
func (ev *Event) Error() *ll1.Error {
	switch ev.Kind {
	case Mismatch:
		return unexpectedTokenError(ev)
	case NoRule:
		return noRuleError(ev)
	default:
		return skippedError(ev)
	}
}

type Result struct {
	// Success is set if the stack is empty, the end of input is consumed, and there are no events.
	Success bool
	Events  []Event
	// Consumed contains the number of consumed tokens, end of input not counted.
	Consumed int
}

// Errors returns events converted to errors.
func (r *Result) Errors() []error {
	result := make([]error, len(r.Events))
	for i := range r.Events {
		result[i] = r.Events[i].Error()
	}
	return result
}

type config struct {
	logger *slog.Logger
}

type Option func(*config)

// WithLogger sets logger, slog.Default() is used if nil or not set.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// Parser is immutable and safe for concurrent use.
type Parser struct {
	table    *grammar.Table
	analysis *langdef.Analysis
	rhs      [][]stackItem
	start    int
	end      int
	logger   *slog.Logger
}

type stackItem struct {
	term  bool
	index int
}

// New analyzes grammar and builds parser.
// Returns nil and ll1.Error if grammar is not valid or is not LL(1).
func New(g *grammar.Grammar, opts ...Option) (*Parser, error) {
	a, e := langdef.Analyze(g)
	if e != nil {
		return nil, e
	}

	t, e := a.Table()
	if e != nil {
		return nil, e
	}

	p := newParser(t, opts)
	p.analysis = a
	return p, nil
}

// NewWithTable builds parser for prebuilt table, e.g. decoded from JSON.
// Returns nil and ll1.Error if table is inconsistent.
func NewWithTable(t *grammar.Table, opts ...Option) (*Parser, error) {
	e := t.Check()
	if e != nil {
		return nil, e
	}

	return newParser(t, opts), nil
}

func newParser(t *grammar.Table, opts []Option) *Parser {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	p := &Parser{
		table:  t,
		rhs:    make([][]stackItem, len(t.Productions)),
		start:  t.NontermIndex(t.Start),
		end:    len(t.Terms) - 1,
		logger: c.logger,
	}
	for i, prod := range t.Productions {
		symbols := prod.Rhs()
		items := make([]stackItem, len(symbols))
		for j, s := range symbols {
			if nt := t.NontermIndex(s); nt >= 0 {
				items[j] = stackItem{false, nt}
			} else {
				items[j] = stackItem{true, t.TermIndex(s)}
			}
		}
		p.rhs[i] = items
	}

	p.logger.Debug("parser built",
		"nonterms", len(t.Nonterms),
		"terms", len(t.Terms)-1,
		"productions", len(t.Productions),
	)
	return p
}

// Table returns prediction table, it must not be modified.
func (p *Parser) Table() *grammar.Table {
	return p.table
}

// Analysis returns grammar analysis or nil if parser is built with NewWithTable.
func (p *Parser) Analysis() *langdef.Analysis {
	return p.analysis
}

// Terminal returns terminal column for token or -1 if the token matches no terminal.
// Error tokens never match.
func (p *Parser) Terminal(t Token) int {
	name := t.TypeName()
	if name == lexer.ErrorTokenName {
		return -1
	}

	i := p.table.TermIndex(name)
	if i < 0 {
		i = p.table.TermIndex(t.Text())
	}
	if i == p.end {
		return -1
	}
	return i
}

type run struct {
	p      *Parser
	tokens []Token
	stack  []stackItem
	index  int
	result *Result
}

func (r *run) lookahead() (column int, ev Event) {
	ev.Index = r.index
	if r.index >= len(r.tokens) {
		ev.Terminal = grammar.EndMarker
		return r.p.end, ev
	}

	ev.Token = r.tokens[r.index]
	column = r.p.Terminal(ev.Token)
	if column >= 0 {
		ev.Terminal = r.p.table.Terms[column]
	} else {
		ev.Terminal = ev.Token.TypeName()
	}
	return column, ev
}

func (r *run) cell(nt, column int) grammar.Cell {
	if column < 0 {
		return grammar.Cell{}
	}

	return r.p.table.Cells[nt][column]
}

func (r *run) pop() stackItem {
	last := len(r.stack) - 1
	top := r.stack[last]
	r.stack = r.stack[:last]
	return top
}

func (r *run) report(ev Event, kind EventKind, top stackItem) {
	ev.Kind = kind
	if top.term {
		ev.Symbol = r.p.table.Terms[top.index]
		ev.Expected = []string{ev.Symbol}
	} else {
		ev.Symbol = r.p.table.Nonterms[top.index]
		ev.Expected = r.p.table.Expected(top.index)
	}
	r.result.Events = append(r.result.Events, ev)
	r.p.logger.Debug("syntax error",
		"kind", kind.String(),
		"index", ev.Index,
		"symbol", ev.Symbol,
		"terminal", ev.Terminal,
	)
}

// step processes stack top, returns false if parsing must halt.
func (r *run) step() bool {
	column, ev := r.lookahead()
	top := r.stack[len(r.stack)-1]
	if top.term {
		if top.index != column {
			r.report(ev, Mismatch, top)
			return false
		}

		r.pop()
		r.index++
		return true
	}

	c := r.cell(top.index, column)
	switch c.Kind {
	case grammar.RuleCell:
		r.pop()
		items := r.p.rhs[c.Production]
		for i := len(items) - 1; i >= 0; i-- {
			r.stack = append(r.stack, items[i])
		}

	case grammar.SyncCell:
		r.report(ev, Sync, top)
		r.pop()

	default:
		r.report(ev, NoRule, top)
		r.pop()
		synced := false
		for len(r.stack) > 0 {
			next := r.stack[len(r.stack)-1]
			if next.term || r.cell(next.index, column).Kind != grammar.SyncCell {
				break
			}

			r.report(ev, Sync, next)
			r.pop()
			synced = true
		}
		return synced
	}

	return true
}

// Parse checks token sequence, end of input is appended implicitly.
func (p *Parser) Parse(tokens []Token) *Result {
	r := &run{
		p:      p,
		tokens: tokens,
		stack:  []stackItem{{true, p.end}, {false, p.start}},
		result: &Result{},
	}

	for len(r.stack) > 0 {
		if !r.step() {
			break
		}
	}

	endConsumed := r.index > len(tokens)
	r.result.Consumed = r.index
	if endConsumed {
		r.result.Consumed = len(tokens)
	}
	r.result.Success = len(r.stack) == 0 && endConsumed && len(r.result.Events) == 0
	p.logger.Debug("parse finished",
		"success", r.result.Success,
		"consumed", r.result.Consumed,
		"events", len(r.result.Events),
	)
	return r.result
}

// FromLexer converts lexer tokens to parser tokens.
func FromLexer(tokens []*lexer.Token) []Token {
	result := make([]Token, len(tokens))
	for i, t := range tokens {
		result[i] = t
	}
	return result
}

// ParseSource scans source with lexer and parses resulting tokens.
// Returns parse result and lexical errors.
func (p *Parser) ParseSource(l *lexer.Lexer, src *source.Source) (*Result, []error) {
	tokens, errs := l.Scan(src)
	return p.Parse(FromLexer(tokens)), errs
}
