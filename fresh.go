package chomsky

import "strconv"

// A NameGenerator hands out nonterminal names that collide with no existing symbol.
//
// Each pipeline run owns its own generator.
type NameGenerator struct {
	prefix string
	next   int
	taken  Set
}

// NewNameGenerator creates a generator producing prefix0, prefix1, ... skipping any
// name in taken.
func NewNameGenerator(prefix string, taken ...[]Symbol) *NameGenerator {
	n := &NameGenerator{prefix: prefix, taken: Set{}}
	for _, symbols := range taken {
		n.taken.Add(symbols...)
	}
	return n
}

// Next fresh name.
func (n *NameGenerator) Next() Symbol {
	for {
		name := Symbol(n.prefix + strconv.Itoa(n.next))
		n.next++
		if !n.taken.Has(name) {
			n.taken.Add(name)
			return name
		}
	}
}

// Reserve marks symbols as unavailable.
func (n *NameGenerator) Reserve(symbols ...Symbol) { n.taken.Add(symbols...) }
