package chomsky

// FinalState is the name of the synthetic accepting state added by
// Grammar.ToFiniteAutomaton, unless the grammar already uses it.
const FinalState Symbol = "X"

// ToFiniteAutomaton builds the right-linear automaton of a regular grammar.
//
// There is one state per nonterminal plus a synthetic accepting state. A -> aB becomes
// (A, a, B), A -> a becomes (A, a, final) and A -> ε makes A accepting. Any other
// production shape fails with ErrInvalidGrammarShape.
func (g *Grammar) ToFiniteAutomaton() (*FiniteAutomaton, error) {
	if err := g.requireContextFree("to finite automaton"); err != nil {
		return nil, err
	}
	final := FinalState
	if g.nonterminals.has(final) || g.terminals.has(final) {
		final = NewNameGenerator(string(FinalState), g.nonterminals.order, g.terminals.order).Next()
	}
	states := append(g.nonterminals.symbols(), final)
	accepting := newOrderedSet(final)
	transitions := make([]Transition, 0, len(g.productions))
	for _, p := range g.productions {
		head := p.Left[0]
		switch {
		case len(p.Right) == 0:
			accepting.add(head)
		case !g.terminals.has(p.Right[0]):
			return nil, errorf(InvalidGrammarShape, "right side of %s does not begin with a terminal", p)
		case len(p.Right) == 1:
			transitions = append(transitions, Transition{From: head, Label: p.Right[0], To: final})
		case len(p.Right) == 2 && g.nonterminals.has(p.Right[1]):
			transitions = append(transitions, Transition{From: head, Label: p.Right[0], To: p.Right[1]})
		default:
			return nil, errorf(InvalidGrammarShape, "%s is not right-linear", p)
		}
	}
	return NewFiniteAutomaton(states, g.terminals.order, transitions, g.start, accepting.order)
}

// ConvertToRegularGrammar is the inverse of Grammar.ToFiniteAutomaton.
//
// States become nonterminals and the alphabet becomes the terminals. Every transition
// (q, a, r) yields q -> a r and every accepting state f yields f -> ε. Transitions and
// acceptance reachable through ε-transitions are attributed to every state whose
// ε-closure includes them, so no ε-transition survives.
func (fa *FiniteAutomaton) ConvertToRegularGrammar() (*Grammar, error) {
	var productions []Production
	for _, q := range fa.states.order {
		closure := fa.closure(q)
		for _, t := range fa.transitions {
			if t.IsEpsilon() || !closure.Has(t.From) {
				continue
			}
			productions = append(productions, Rule(q, t.Label, t.To))
		}
	}
	for _, q := range fa.states.order {
		if fa.closure(q).Intersects(fa.accepting.index) {
			productions = append(productions, Rule(q))
		}
	}
	return NewGrammar(fa.states.order, fa.alphabet.order, dedupe(productions), fa.start)
}
