package chomsky

import (
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

// Symbol is a terminal, a nonterminal or an automaton state.
type Symbol string

// Epsilon labels a transition that consumes no input. As a production right
// side, ε is written as an empty symbol sequence.
const Epsilon Symbol = "ε"

// Symbols converts strings to symbols.
func Symbols(names ...string) []Symbol {
	out := make([]Symbol, len(names))
	for i, name := range names {
		out[i] = Symbol(name)
	}
	return out
}

// Set is an unordered collection of symbols.
type Set map[Symbol]struct{}

// NewSet creates a Set containing symbols.
func NewSet(symbols ...Symbol) Set {
	s := make(Set, len(symbols))
	s.Add(symbols...)
	return s
}

// Add symbols to the set.
func (s Set) Add(symbols ...Symbol) {
	for _, sym := range symbols {
		s[sym] = struct{}{}
	}
}

// Has returns true if sym is in the set.
func (s Set) Has(sym Symbol) bool {
	_, ok := s[sym]
	return ok
}

// Union returns a new set holding the members of both sets.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for sym := range s {
		out[sym] = struct{}{}
	}
	for sym := range other {
		out[sym] = struct{}{}
	}
	return out
}

// Intersects returns true if the sets share at least one member.
func (s Set) Intersects(other Set) bool {
	if len(other) < len(s) {
		s, other = other, s
	}
	for sym := range s {
		if other.Has(sym) {
			return true
		}
	}
	return false
}

// Equal returns true if both sets have the same members.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for sym := range s {
		if !other.Has(sym) {
			return false
		}
	}
	return true
}

// Sorted members of the set.
func (s Set) Sorted() []Symbol {
	keys := maps.Keys(s)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (s Set) String() string {
	return "{" + joinSymbols(s.Sorted(), ",") + "}"
}

func joinSymbols(symbols []Symbol, sep string) string {
	parts := make([]string, len(symbols))
	for i, sym := range symbols {
		parts[i] = string(sym)
	}
	return strings.Join(parts, sep)
}

// orderedSet is a Set that remembers insertion order.
type orderedSet struct {
	order []Symbol
	index Set
}

func newOrderedSet(symbols ...Symbol) *orderedSet {
	o := &orderedSet{index: Set{}}
	o.add(symbols...)
	return o
}

func (o *orderedSet) add(symbols ...Symbol) {
	for _, sym := range symbols {
		if !o.index.Has(sym) {
			o.index.Add(sym)
			o.order = append(o.order, sym)
		}
	}
}

func (o *orderedSet) has(sym Symbol) bool { return o.index.Has(sym) }

func (o *orderedSet) symbols() []Symbol { return append([]Symbol(nil), o.order...) }
