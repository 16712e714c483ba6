// Package automaton builds NFA from fragments using Thompson construction and converts it to DFA.
//
// NFA nodes are stored in an arena, edges refer to nodes by index, so cycles and shared
// successors need no special handling. Node index is its origin tag, the counter is local
// to a Builder.
package automaton

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Epsilon is the edge label for transitions consuming no input.
const Epsilon rune = -1

// NoClass is the class of nodes not belonging to any token type.
const NoClass = -1

type Edge struct {
	Symbol rune
	Target int
}

type Node struct {
	Edges     []Edge
	Accepting bool
	// Class contains token type of the pattern this node was created for.
	Class int
}

// Fragment is a subgraph with single entry and single exit nodes.
type Fragment struct {
	Start, End int
}

// NFA is the result of merging fragments, Start is the root node.
type NFA struct {
	Nodes    []Node
	Start    int
	Alphabet []rune
}

// Builder owns the node arena during compilation.
// Fragments composed together must be created for the same class.
type Builder struct {
	nodes    []Node
	alphabet map[rune]struct{}
}

func NewBuilder() *Builder {
	return &Builder{alphabet: make(map[rune]struct{})}
}

// Len returns the number of nodes created so far.
func (b *Builder) Len() int {
	return len(b.nodes)
}

func (b *Builder) newNode(accepting bool, class int) int {
	b.nodes = append(b.nodes, Node{Accepting: accepting, Class: class})
	return len(b.nodes) - 1
}

func (b *Builder) addEdge(from int, symbol rune, to int) {
	b.nodes[from].Edges = append(b.nodes[from].Edges, Edge{symbol, to})
}

func (b *Builder) class(f Fragment) int {
	return b.nodes[f.End].Class
}

// Literal creates fragment matching single character c.
func (b *Builder) Literal(c rune, class int) Fragment {
	start := b.newNode(false, class)
	end := b.newNode(true, class)
	b.addEdge(start, c, end)
	b.alphabet[c] = struct{}{}
	return Fragment{start, end}
}

// Empty creates fragment matching empty string.
func (b *Builder) Empty(class int) Fragment {
	start := b.newNode(false, class)
	end := b.newNode(true, class)
	b.addEdge(start, Epsilon, end)
	return Fragment{start, end}
}

// Concat creates fragment matching x followed by y.
func (b *Builder) Concat(x, y Fragment) Fragment {
	b.nodes[x.End].Accepting = false
	b.addEdge(x.End, Epsilon, y.Start)
	return Fragment{x.Start, y.End}
}

// Union creates fragment matching either x or y.
func (b *Builder) Union(x, y Fragment) Fragment {
	b.nodes[x.End].Accepting = false
	b.nodes[y.End].Accepting = false
	class := b.class(x)
	start := b.newNode(false, class)
	end := b.newNode(true, class)
	b.addEdge(start, Epsilon, x.Start)
	b.addEdge(start, Epsilon, y.Start)
	b.addEdge(x.End, Epsilon, end)
	b.addEdge(y.End, Epsilon, end)
	return Fragment{start, end}
}

// Star creates fragment matching x repeated zero or more times.
func (b *Builder) Star(x Fragment) Fragment {
	b.nodes[x.End].Accepting = false
	class := b.class(x)
	start := b.newNode(false, class)
	end := b.newNode(true, class)
	b.addEdge(start, Epsilon, x.Start)
	b.addEdge(start, Epsilon, end)
	b.addEdge(x.End, Epsilon, end)
	b.addEdge(x.End, Epsilon, x.Start)
	return Fragment{start, end}
}

// Merge creates root node with epsilon edges to every fragment start and returns the resulting NFA.
// Fragment ends keep their accepting flags and classes.
// Builder must not be used after merging.
func (b *Builder) Merge(fragments ...Fragment) (*NFA, error) {
	if len(fragments) == 0 {
		return nil, noFragmentsError()
	}

	root := b.newNode(false, NoClass)
	for _, f := range fragments {
		b.addEdge(root, Epsilon, f.Start)
	}

	alphabet := maps.Keys(b.alphabet)
	slices.Sort(alphabet)
	result := &NFA{Nodes: b.nodes, Start: root, Alphabet: alphabet}
	b.nodes = nil
	b.alphabet = nil
	return result, nil
}
