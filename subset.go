package chomsky

import "strings"

// MaxSubsetStates is the largest automaton ConvertToDFA will determinise.
//
// The powerset of the state set is enumerated in full.
const MaxSubsetStates = 16

// ConvertToDFA performs subset construction over the full powerset of the states.
//
// Each subset becomes one state named by its members in declaration order, eg.
// "{q0,q1}". The start state is the ε-closure of the original start state, the target
// of a subset on a symbol is the ε-closure of the union of the symbol's destinations
// (omitted when empty), and a subset is accepting iff it contains an accepting state.
// State names containing "," or braces can make two subsets share a name, which fails
// with ErrInvalidState.
func (fa *FiniteAutomaton) ConvertToDFA() (*FiniteAutomaton, error) {
	n := len(fa.states.order)
	if n > MaxSubsetStates {
		return nil, errorf(TooManyStates, "%d states exceeds the limit of %d", n, MaxSubsetStates)
	}
	b := newSubsetBuilder(fa)
	total := uint64(1) << uint(n)
	states := make([]Symbol, 0, total)
	var (
		transitions []Transition
		accepting   []Symbol
	)
	seen := make(Set, total)
	for mask := uint64(0); mask < total; mask++ {
		name := b.name(mask)
		if seen.Has(name) {
			return nil, errorf(InvalidState, "subset state name %q is ambiguous", name)
		}
		seen.Add(name)
		states = append(states, name)
		if mask&b.accepting != 0 {
			accepting = append(accepting, name)
		}
		for _, sym := range fa.alphabet.order {
			target := b.move(mask, sym)
			if target == 0 {
				continue
			}
			transitions = append(transitions, Transition{From: name, Label: sym, To: b.name(target)})
		}
	}
	return NewFiniteAutomaton(states, fa.alphabet.order, transitions, b.name(b.closure[b.index[fa.start]]), accepting)
}

// subsetBuilder represents subsets of the original states as bitmasks, bit i being the
// i'th declared state.
type subsetBuilder struct {
	fa        *FiniteAutomaton
	index     map[Symbol]int
	closure   []uint64
	step      []map[Symbol]uint64
	accepting uint64
}

func newSubsetBuilder(fa *FiniteAutomaton) *subsetBuilder {
	b := &subsetBuilder{fa: fa, index: map[Symbol]int{}}
	for i, state := range fa.states.order {
		b.index[state] = i
	}
	b.closure = make([]uint64, len(fa.states.order))
	b.step = make([]map[Symbol]uint64, len(fa.states.order))
	for i, state := range fa.states.order {
		b.closure[i] = b.mask(fa.closure(state))
		b.step[i] = map[Symbol]uint64{}
		for label, tos := range fa.delta[state] {
			if label == Epsilon {
				continue
			}
			b.step[i][label] = b.mask(NewSet(tos...))
		}
		if fa.accepting.has(state) {
			b.accepting |= 1 << uint(i)
		}
	}
	return b
}

func (b *subsetBuilder) mask(states Set) (out uint64) {
	for state := range states {
		out |= 1 << uint(b.index[state])
	}
	return out
}

// move returns the ε-closure of the states reachable from subset on sym.
func (b *subsetBuilder) move(subset uint64, sym Symbol) uint64 {
	var image uint64
	for i := range b.step {
		if subset&(1<<uint(i)) != 0 {
			image |= b.step[i][sym]
		}
	}
	var out uint64
	for i := range b.closure {
		if image&(1<<uint(i)) != 0 {
			out |= b.closure[i]
		}
	}
	return out
}

func (b *subsetBuilder) name(subset uint64) Symbol {
	w := &strings.Builder{}
	w.WriteString("{")
	first := true
	for i, state := range b.fa.states.order {
		if subset&(1<<uint(i)) == 0 {
			continue
		}
		if !first {
			w.WriteString(",")
		}
		first = false
		w.WriteString(string(state))
	}
	w.WriteString("}")
	return Symbol(w.String())
}
