package chomsky_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alecthomas/chomsky"
)

var S = chomsky.Symbols

// labGrammar is the right-linear grammar S -> aB, B -> bB | cL, L -> cL | aS | b.
func labGrammar(t *testing.T) *chomsky.Grammar {
	t.Helper()
	g, err := chomsky.NewGrammar(S("S", "B", "L"), S("a", "b", "c"), []chomsky.Production{
		chomsky.Rule("S", "a", "B"),
		chomsky.Rule("B", "b", "B"),
		chomsky.Rule("B", "c", "L"),
		chomsky.Rule("L", "c", "L"),
		chomsky.Rule("L", "a", "S"),
		chomsky.Rule("L", "b"),
	}, "S")
	require.NoError(t, err)
	return g
}

// contextFreeGrammar needs every CNF stage.
func contextFreeGrammar(t *testing.T) *chomsky.Grammar {
	t.Helper()
	g, err := chomsky.NewGrammar(S("S", "A", "B", "D"), S("a", "b", "d"), []chomsky.Production{
		chomsky.Rule("S", "d", "B"),
		chomsky.Rule("S", "A", "B"),
		chomsky.Rule("A", "d"),
		chomsky.Rule("A", "d", "S"),
		chomsky.Rule("A", "a", "A", "a", "A", "b"),
		chomsky.Rule("A"),
		chomsky.Rule("B", "a"),
		chomsky.Rule("B", "a", "S"),
		chomsky.Rule("B", "A"),
		chomsky.Rule("D", "A", "b", "a"),
	}, "S")
	require.NoError(t, err)
	return g
}

// nfa has a nondeterministic choice on (q2, c).
func nfa(t *testing.T) *chomsky.FiniteAutomaton {
	t.Helper()
	fa, err := chomsky.NewFiniteAutomaton(S("q0", "q1", "q2", "q3"), S("a", "b", "c"), []chomsky.Transition{
		{"q0", "a", "q1"},
		{"q1", "b", "q2"},
		{"q2", "c", "q0"},
		{"q1", "a", "q3"},
		{"q0", "b", "q2"},
		{"q2", "c", "q3"},
	}, "q0", S("q3"))
	require.NoError(t, err)
	return fa
}

// epsilonNFA accepts a*b.
func epsilonNFA(t *testing.T) *chomsky.FiniteAutomaton {
	t.Helper()
	fa, err := chomsky.NewFiniteAutomaton(S("p0", "p1", "p2"), S("a", "b"), []chomsky.Transition{
		{"p0", "a", "p0"},
		{"p0", chomsky.Epsilon, "p1"},
		{"p1", "b", "p2"},
	}, "p0", S("p2"))
	require.NoError(t, err)
	return fa
}

func productionStrings(g *chomsky.Grammar) []string {
	out := []string{}
	for _, p := range g.Productions() {
		out = append(out, p.String())
	}
	return out
}

// allWords over alphabet up to and including maxLen symbols.
func allWords(alphabet []chomsky.Symbol, maxLen int) [][]chomsky.Symbol {
	out := [][]chomsky.Symbol{{}}
	frontier := [][]chomsky.Symbol{{}}
	for l := 0; l < maxLen; l++ {
		var next [][]chomsky.Symbol
		for _, prefix := range frontier {
			for _, sym := range alphabet {
				word := append(append([]chomsky.Symbol{}, prefix...), sym)
				next = append(next, word)
			}
		}
		out = append(out, next...)
		frontier = next
	}
	return out
}

func seeded() *rand.Rand { return rand.New(rand.NewSource(1)) } // nolint: gosec
