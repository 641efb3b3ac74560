package chomsky

import (
	"fmt"
	"strings"
)

// A Grammar is an immutable formal grammar.
//
// Every transformation returns a new Grammar.
type Grammar struct {
	nonterminals *orderedSet
	terminals    *orderedSet
	productions  []Production
	start        Symbol
}

// NewGrammar validates and constructs a Grammar.
//
// Terminals and nonterminals must be disjoint, start must be a nonterminal, and every
// production may only reference declared symbols. Each left side must contain at least
// one nonterminal.
func NewGrammar(nonterminals, terminals []Symbol, productions []Production, start Symbol) (*Grammar, error) {
	g := &Grammar{
		nonterminals: newOrderedSet(nonterminals...),
		terminals:    newOrderedSet(terminals...),
		start:        start,
	}
	for _, t := range g.terminals.order {
		if g.nonterminals.has(t) {
			return nil, errorf(InvalidSymbol, "%q is both a terminal and a nonterminal", t)
		}
		if t == Epsilon {
			return nil, errorf(InvalidSymbol, "%s can not be declared as a terminal", Epsilon)
		}
	}
	if g.nonterminals.has(Epsilon) {
		return nil, errorf(InvalidSymbol, "%s can not be declared as a nonterminal", Epsilon)
	}
	if !g.nonterminals.has(start) {
		return nil, errorf(InvalidSymbol, "start symbol %q is not a nonterminal", start)
	}
	g.productions = make([]Production, 0, len(productions))
	for _, p := range productions {
		p = Production{Left: append([]Symbol(nil), p.Left...), Right: normaliseRight(p.Right)}
		if err := g.validate(p); err != nil {
			return nil, err
		}
		g.productions = append(g.productions, p)
	}
	return g, nil
}

// MustGrammar calls NewGrammar and panics on error.
func MustGrammar(nonterminals, terminals []Symbol, productions []Production, start Symbol) *Grammar {
	g, err := NewGrammar(nonterminals, terminals, productions, start)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Grammar) validate(p Production) error {
	if len(p.Left) == 0 {
		return errorf(InvalidSymbol, "production %s has an empty left side", p)
	}
	hasNonterminal := false
	for _, sym := range p.Left {
		if g.nonterminals.has(sym) {
			hasNonterminal = true
		} else if !g.terminals.has(sym) {
			return errorf(InvalidSymbol, "%q in production %s is not declared", sym, p)
		}
	}
	if !hasNonterminal {
		return errorf(InvalidSymbol, "left side of production %s has no nonterminal", p)
	}
	for _, sym := range p.Right {
		if !g.nonterminals.has(sym) && !g.terminals.has(sym) {
			return errorf(InvalidSymbol, "%q in production %s is not declared", sym, p)
		}
	}
	return nil
}

// Nonterminals in declaration order.
func (g *Grammar) Nonterminals() []Symbol { return g.nonterminals.symbols() }

// Terminals in declaration order.
func (g *Grammar) Terminals() []Symbol { return g.terminals.symbols() }

// Start symbol.
func (g *Grammar) Start() Symbol { return g.start }

// Productions returns a copy of the ordered production list.
func (g *Grammar) Productions() []Production {
	out := make([]Production, len(g.productions))
	for i, p := range g.productions {
		out[i] = p.clone()
	}
	return out
}

// ProductionsFor returns the productions with the single left-side symbol head.
func (g *Grammar) ProductionsFor(head Symbol) []Production {
	var out []Production
	for _, p := range g.productions {
		if h, ok := p.Head(); ok && h == head {
			out = append(out, p.clone())
		}
	}
	return out
}

// IsTerminal returns true if sym is a declared terminal.
func (g *Grammar) IsTerminal(sym Symbol) bool { return g.terminals.has(sym) }

// IsNonterminal returns true if sym is a declared nonterminal.
func (g *Grammar) IsNonterminal(sym Symbol) bool { return g.nonterminals.has(sym) }

// requireContextFree fails unless every left side is a single nonterminal.
func (g *Grammar) requireContextFree(op string) error {
	for _, p := range g.productions {
		if h, ok := p.Head(); !ok || !g.nonterminals.has(h) {
			return errorf(InvalidGrammarShape, "%s: production %s does not have a single nonterminal on the left", op, p)
		}
	}
	return nil
}

// byHead groups productions by their single left-side symbol, preserving order.
func (g *Grammar) byHead() map[Symbol][]Production {
	out := map[Symbol][]Production{}
	for _, p := range g.productions {
		if h, ok := p.Head(); ok {
			out[h] = append(out[h], p)
		}
	}
	return out
}

// IsChomskyNormalForm returns true if every production has the form A -> a or A -> B C.
func (g *Grammar) IsChomskyNormalForm() bool {
	if g.requireContextFree("cnf") != nil {
		return false
	}
	for _, p := range g.productions {
		switch len(p.Right) {
		case 1:
			if !g.terminals.has(p.Right[0]) {
				return false
			}
		case 2:
			if !g.nonterminals.has(p.Right[0]) || !g.nonterminals.has(p.Right[1]) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (g *Grammar) String() string {
	w := &strings.Builder{}
	fmt.Fprintf(w, "Grammar\n")
	fmt.Fprintf(w, "\tNonterminals = {%s}\n", joinSymbols(g.nonterminals.order, ", "))
	fmt.Fprintf(w, "\tTerminals = {%s}\n", joinSymbols(g.terminals.order, ", "))
	fmt.Fprintf(w, "\tStart = %s\n", g.start)
	fmt.Fprintf(w, "\tProductions:\n")
	for _, p := range g.productions {
		fmt.Fprintf(w, "\t\t%s\n", p)
	}
	return w.String()
}
