package chomsky

import "fmt"

// Class is a level of the Chomsky hierarchy.
type Class int

// Chomsky hierarchy classes, least restrictive first.
const (
	Unrestricted Class = iota
	ContextSensitive
	ContextFree
	Regular
)

func (c Class) String() string {
	switch c {
	case Unrestricted:
		return "Type-0 (unrestricted)"
	case ContextSensitive:
		return "Type-1 (context-sensitive)"
	case ContextFree:
		return "Type-2 (context-free)"
	case Regular:
		return "Type-3 (regular)"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// Classify returns the most restrictive class every production of g satisfies.
func (g *Grammar) Classify() Class {
	switch {
	case g.all(g.isRegular):
		return Regular
	case g.all(g.isContextFree):
		return ContextFree
	case g.all(isContextSensitive):
		return ContextSensitive
	default:
		return Unrestricted
	}
}

func (g *Grammar) all(pred func(Production) bool) bool {
	for _, p := range g.productions {
		if !pred(p) {
			return false
		}
	}
	return true
}

// A -> a, A -> aB or A -> Ba.
func (g *Grammar) isRegular(p Production) bool {
	if !g.isContextFree(p) {
		return false
	}
	switch len(p.Right) {
	case 1:
		return g.terminals.has(p.Right[0])
	case 2:
		a, b := p.Right[0], p.Right[1]
		return (g.nonterminals.has(a) && g.terminals.has(b)) ||
			(g.terminals.has(a) && g.nonterminals.has(b))
	}
	return false
}

func (g *Grammar) isContextFree(p Production) bool {
	h, ok := p.Head()
	return ok && g.nonterminals.has(h)
}

// Non-contracting.
func isContextSensitive(p Production) bool {
	return len(p.Right) >= len(p.Left)
}
