package automaton

import (
	"github.com/ava12/ll1/internal/ints"
	"github.com/ava12/ll1/internal/queue"
)

const (
	// StartState is the index of DFA start state.
	StartState = 0
	// DeadState is returned by Step when there is no transition.
	DeadState = -1
)

type State struct {
	// Tags contains origin tags (NFA node indexes) of state members in ascending order.
	Tags []int
	// Accepting is set if at least one member is accepting.
	Accepting bool
	// Classes contains classes of accepting members in ascending order, empty for non-accepting states.
	Classes []int
	// Transitions maps input symbol to target state index.
	Transitions map[rune]int
}

// Class returns the highest priority (lowest) class of accepting state or NoClass.
func (s *State) Class() int {
	if len(s.Classes) == 0 {
		return NoClass
	}

	return s.Classes[0]
}

// DFA is immutable after construction and may be shared by goroutines.
type DFA struct {
	States   []State
	Alphabet []rune
}

// Step returns target state for given state and symbol or DeadState.
func (d *DFA) Step(state int, c rune) int {
	if state < 0 || state >= len(d.States) {
		return DeadState
	}

	target, has := d.States[state].Transitions[c]
	if !has {
		return DeadState
	}

	return target
}

// Accepts tells whether the whole input is matched.
func (d *DFA) Accepts(input string) bool {
	state := StartState
	for _, c := range input {
		state = d.Step(state, c)
		if state == DeadState {
			return false
		}
	}
	return d.States[state].Accepting
}

func (n *NFA) closure(set *ints.Set) *ints.Set {
	result := set.Copy()
	stack := set.ToSlice()
	for len(stack) > 0 {
		last := len(stack) - 1
		node := stack[last]
		stack = stack[:last]
		for _, e := range n.Nodes[node].Edges {
			if e.Symbol == Epsilon && !result.Contains(e.Target) {
				result.Add(e.Target)
				stack = append(stack, e.Target)
			}
		}
	}
	return result
}

func (n *NFA) move(set *ints.Set, c rune) *ints.Set {
	result := ints.NewSet()
	for _, node := range set.ToSlice() {
		for _, e := range n.Nodes[node].Edges {
			if e.Symbol == c {
				result.Add(e.Target)
			}
		}
	}
	return result
}

func (n *NFA) newState(members *ints.Set) State {
	tags := members.ToSlice()
	classes := ints.NewSet()
	accepting := false
	for _, node := range tags {
		if n.Nodes[node].Accepting {
			accepting = true
			if n.Nodes[node].Class >= 0 {
				classes.Add(n.Nodes[node].Class)
			}
		}
	}
	return State{
		Tags:        tags,
		Accepting:   accepting,
		Classes:     classes.ToSlice(),
		Transitions: make(map[rune]int),
	}
}

// Determinize converts NFA to DFA using subset construction.
// States are discovered in breadth-first order, symbols are tried in ascending order,
// so the result is deterministic. maxStates limits the number of DFA states, 0 means no limit.
func Determinize(n *NFA, maxStates int) (*DFA, error) {
	var (
		members []*ints.Set
		states  []State
		index   = make(map[uint64][]int)
		pending = queue.New[int]()
	)

	find := func(set *ints.Set) (int, bool) {
		for _, i := range index[set.Hash()] {
			if members[i].IsEqual(set) {
				return i, true
			}
		}
		return 0, false
	}

	add := func(set *ints.Set) (int, error) {
		if maxStates > 0 && len(states) >= maxStates {
			return 0, stateLimitError(maxStates)
		}

		i := len(states)
		members = append(members, set)
		states = append(states, n.newState(set))
		h := set.Hash()
		index[h] = append(index[h], i)
		pending.Append(i)
		return i, nil
	}

	_, e := add(n.closure(ints.NewSet(n.Start)))
	if e != nil {
		return nil, e
	}

	for !pending.IsEmpty() {
		current, _ := pending.First()
		for _, c := range n.Alphabet {
			target := n.move(members[current], c)
			if target.IsEmpty() {
				continue
			}

			target = n.closure(target)
			ti, found := find(target)
			if !found {
				ti, e = add(target)
				if e != nil {
					return nil, e
				}
			}
			states[current].Transitions[c] = ti
		}
	}

	return &DFA{States: states, Alphabet: n.Alphabet}, nil
}
