package chomsky

import (
	"fmt"
	"strings"
)

// A Transition is one edge of a FiniteAutomaton.
type Transition struct {
	From  Symbol
	Label Symbol
	To    Symbol
}

// IsEpsilon returns true if the transition consumes no input.
func (t Transition) IsEpsilon() bool { return t.Label == Epsilon }

func (t Transition) String() string {
	return fmt.Sprintf("(%s, %s, %s)", t.From, t.Label, t.To)
}

// A FiniteAutomaton is an immutable, possibly nondeterministic, finite automaton
// with ε-transitions.
type FiniteAutomaton struct {
	states      *orderedSet
	alphabet    *orderedSet
	transitions []Transition
	start       Symbol
	accepting   *orderedSet

	// from -> label -> destinations, in transition order.
	delta map[Symbol]map[Symbol][]Symbol
}

// NewFiniteAutomaton validates and constructs a FiniteAutomaton.
//
// The start state and every accepting state and transition endpoint must be a declared
// state, and every transition label must be Epsilon or a member of the alphabet.
func NewFiniteAutomaton(states, alphabet []Symbol, transitions []Transition, start Symbol, accepting []Symbol) (*FiniteAutomaton, error) {
	fa := &FiniteAutomaton{
		states:      newOrderedSet(states...),
		alphabet:    newOrderedSet(alphabet...),
		transitions: append([]Transition(nil), transitions...),
		start:       start,
		accepting:   newOrderedSet(accepting...),
		delta:       map[Symbol]map[Symbol][]Symbol{},
	}
	if fa.alphabet.has(Epsilon) {
		return nil, errorf(InvalidSymbol, "%s can not be a member of the alphabet", Epsilon)
	}
	if !fa.states.has(start) {
		return nil, errorf(InvalidState, "start state %q is not declared", start)
	}
	for _, f := range fa.accepting.order {
		if !fa.states.has(f) {
			return nil, errorf(InvalidState, "accepting state %q is not declared", f)
		}
	}
	for _, t := range fa.transitions {
		if !fa.states.has(t.From) {
			return nil, errorf(InvalidState, "transition %s: %q is not declared", t, t.From)
		}
		if !fa.states.has(t.To) {
			return nil, errorf(InvalidState, "transition %s: %q is not declared", t, t.To)
		}
		if !t.IsEpsilon() && !fa.alphabet.has(t.Label) {
			return nil, errorf(InvalidSymbol, "transition %s: %q is not in the alphabet", t, t.Label)
		}
		edges := fa.delta[t.From]
		if edges == nil {
			edges = map[Symbol][]Symbol{}
			fa.delta[t.From] = edges
		}
		edges[t.Label] = append(edges[t.Label], t.To)
	}
	return fa, nil
}

// MustFiniteAutomaton calls NewFiniteAutomaton and panics on error.
func MustFiniteAutomaton(states, alphabet []Symbol, transitions []Transition, start Symbol, accepting []Symbol) *FiniteAutomaton {
	fa, err := NewFiniteAutomaton(states, alphabet, transitions, start, accepting)
	if err != nil {
		panic(err)
	}
	return fa
}

// States in declaration order.
func (fa *FiniteAutomaton) States() []Symbol { return fa.states.symbols() }

// Alphabet in declaration order.
func (fa *FiniteAutomaton) Alphabet() []Symbol { return fa.alphabet.symbols() }

// Transitions returns a copy of the transition list.
func (fa *FiniteAutomaton) Transitions() []Transition {
	return append([]Transition(nil), fa.transitions...)
}

// Start state.
func (fa *FiniteAutomaton) Start() Symbol { return fa.start }

// Accepting states in declaration order.
func (fa *FiniteAutomaton) Accepting() []Symbol { return fa.accepting.symbols() }

// IsAccepting returns true if state is an accepting state.
func (fa *FiniteAutomaton) IsAccepting(state Symbol) bool { return fa.accepting.has(state) }

// EpsilonClosure returns the states reachable from state through zero or more
// ε-transitions. The result always contains state.
func (fa *FiniteAutomaton) EpsilonClosure(state Symbol) (Set, error) {
	if !fa.states.has(state) {
		return nil, errorf(InvalidState, "%q is not declared", state)
	}
	return fa.closure(state), nil
}

// EpsilonClosureSet returns the union of the ε-closures of states.
func (fa *FiniteAutomaton) EpsilonClosureSet(states Set) (Set, error) {
	out := Set{}
	for state := range states {
		closure, err := fa.EpsilonClosure(state)
		if err != nil {
			return nil, err
		}
		out = out.Union(closure)
	}
	return out, nil
}

func (fa *FiniteAutomaton) closure(state Symbol) Set {
	closure := NewSet(state)
	stack := []Symbol{state}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range fa.delta[current][Epsilon] {
			if !closure.Has(next) {
				closure.Add(next)
				stack = append(stack, next)
			}
		}
	}
	return closure
}

// Tokenize splits word into alphabet symbols.
//
// At each offset the longest symbol that still leaves a splittable remainder is taken,
// so the result is the longest-match split whenever one exists. InvalidSymbol is
// returned only if no split exists.
func (fa *FiniteAutomaton) Tokenize(word string) ([]Symbol, error) {
	if err := fa.splittable(word); err != nil {
		return nil, err
	}
	// tail[i] is true if word[i:] can be split.
	tail := make([]bool, len(word)+1)
	tail[len(word)] = true
	for i := len(word) - 1; i >= 0; i-- {
		for _, sym := range fa.prefixes(word[i:]) {
			if tail[i+len(sym)] {
				tail[i] = true
				break
			}
		}
	}
	var out []Symbol
	for i := 0; i < len(word); {
		var best Symbol
		for _, sym := range fa.prefixes(word[i:]) {
			if len(sym) > len(best) && tail[i+len(sym)] {
				best = sym
			}
		}
		out = append(out, best)
		i += len(best)
	}
	return out, nil
}

// prefixes returns the alphabet symbols that word starts with.
func (fa *FiniteAutomaton) prefixes(word string) []Symbol {
	var out []Symbol
	for _, sym := range fa.alphabet.order {
		if sym != "" && strings.HasPrefix(word, string(sym)) {
			out = append(out, sym)
		}
	}
	return out
}

// splittable fails with InvalidSymbol at the furthest offset reachable by any split.
func (fa *FiniteAutomaton) splittable(word string) error {
	reach := make([]bool, len(word)+1)
	reach[0] = true
	furthest := 0
	for i := 0; i < len(word); i++ {
		if !reach[i] {
			continue
		}
		furthest = i
		for _, sym := range fa.prefixes(word[i:]) {
			reach[i+len(sym)] = true
		}
	}
	if !reach[len(word)] {
		return errorf(InvalidSymbol, "no alphabet symbol matches %q at offset %d", word[furthest:], furthest)
	}
	return nil
}

// Accepts simulates the automaton over word.
//
// Simulation stops as soon as no state is active, without validating the remaining
// symbols.
func (fa *FiniteAutomaton) Accepts(word ...Symbol) (bool, error) {
	current := fa.closure(fa.start)
	for _, sym := range word {
		if !fa.alphabet.has(sym) {
			return false, errorf(InvalidSymbol, "%q is not in the alphabet", sym)
		}
		current = fa.step(current, sym)
		if len(current) == 0 {
			return false, nil
		}
	}
	return current.Intersects(fa.accepting.index), nil
}

// step returns the ε-closure of the states reached from current on sym.
func (fa *FiniteAutomaton) step(current Set, sym Symbol) Set {
	next := Set{}
	for state := range current {
		for _, to := range fa.delta[state][sym] {
			if next.Has(to) {
				continue
			}
			for reached := range fa.closure(to) {
				next.Add(reached)
			}
		}
	}
	return next
}

// IsWordValid reports whether the automaton accepts some split of word into alphabet
// symbols.
//
// Every split is simulated at once by tracking the active states at each offset of
// word. InvalidSymbol is returned only if word has no split at all.
func (fa *FiniteAutomaton) IsWordValid(word string) (bool, error) {
	if err := fa.splittable(word); err != nil {
		return false, err
	}
	active := make([]Set, len(word)+1)
	active[0] = fa.closure(fa.start)
	for i := 0; i < len(word); i++ {
		if len(active[i]) == 0 {
			continue
		}
		for _, sym := range fa.prefixes(word[i:]) {
			next := fa.step(active[i], sym)
			if len(next) == 0 {
				continue
			}
			j := i + len(sym)
			if active[j] == nil {
				active[j] = next
			} else {
				active[j] = active[j].Union(next)
			}
		}
	}
	return active[len(word)].Intersects(fa.accepting.index), nil
}

// IsDeterministic returns true if no (state, alphabet symbol) pair has more than one
// destination.
//
// ε-transitions are not alphabet symbols and are not considered. A partial transition
// function is still deterministic.
func (fa *FiniteAutomaton) IsDeterministic() bool {
	for _, edges := range fa.delta {
		for _, sym := range fa.alphabet.order {
			if len(NewSet(edges[sym]...)) > 1 {
				return false
			}
		}
	}
	return true
}

// Reachable returns a copy of the automaton without the states that can not be
// reached from the start state.
func (fa *FiniteAutomaton) Reachable() *FiniteAutomaton {
	seen := NewSet(fa.start)
	queue := []Symbol{fa.start}
	for len(queue) > 0 {
		state := queue[0]
		queue = queue[1:]
		for _, t := range fa.transitions {
			if t.From == state && !seen.Has(t.To) {
				seen.Add(t.To)
				queue = append(queue, t.To)
			}
		}
	}
	var states, accepting []Symbol
	for _, state := range fa.states.order {
		if seen.Has(state) {
			states = append(states, state)
		}
	}
	for _, state := range fa.accepting.order {
		if seen.Has(state) {
			accepting = append(accepting, state)
		}
	}
	var transitions []Transition
	for _, t := range fa.transitions {
		if seen.Has(t.From) {
			transitions = append(transitions, t)
		}
	}
	return MustFiniteAutomaton(states, fa.alphabet.order, transitions, fa.start, accepting)
}

func (fa *FiniteAutomaton) String() string {
	w := &strings.Builder{}
	fmt.Fprintf(w, "Finite Automaton\n")
	fmt.Fprintf(w, "\tStates = {%s}\n", joinSymbols(fa.states.order, ", "))
	fmt.Fprintf(w, "\tAlphabet = {%s}\n", joinSymbols(fa.alphabet.order, ", "))
	fmt.Fprintf(w, "\tTransitions = ")
	for i, t := range fa.transitions {
		if i > 0 {
			w.WriteString(" ")
		}
		w.WriteString(t.String())
	}
	fmt.Fprintf(w, "\n\tStart = %s\n", fa.start)
	fmt.Fprintf(w, "\tAccepting = {%s}\n", joinSymbols(fa.accepting.order, ", "))
	return w.String()
}
