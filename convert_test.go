package chomsky_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alecthomas/chomsky"
)

func TestToFiniteAutomaton(t *testing.T) {
	fa, err := labGrammar(t).ToFiniteAutomaton()
	require.NoError(t, err)
	require.Equal(t, S("S", "B", "L", "X"), fa.States())
	require.Equal(t, S("a", "b", "c"), fa.Alphabet())
	require.Equal(t, chomsky.Symbol("S"), fa.Start())
	require.Equal(t, S("X"), fa.Accepting())
	require.Equal(t, []chomsky.Transition{
		{From: "S", Label: "a", To: "B"},
		{From: "B", Label: "b", To: "B"},
		{From: "B", Label: "c", To: "L"},
		{From: "L", Label: "c", To: "L"},
		{From: "L", Label: "a", To: "S"},
		{From: "L", Label: "b", To: "X"},
	}, fa.Transitions())
}

func TestToFiniteAutomaton_FreshFinalState(t *testing.T) {
	g := chomsky.MustGrammar(S("S", "X"), S("a", "b"), []chomsky.Production{
		chomsky.Rule("S", "a", "X"),
		chomsky.Rule("X", "b"),
	}, "S")
	fa, err := g.ToFiniteAutomaton()
	require.NoError(t, err)
	require.Equal(t, S("S", "X", "X0"), fa.States())
	require.Equal(t, S("X0"), fa.Accepting())
}

func TestToFiniteAutomaton_InvalidShape(t *testing.T) {
	for name, productions := range map[string][]chomsky.Production{
		"LeftLinear":  {chomsky.Rule("S", "S", "a")},
		"Unit":        {chomsky.Rule("S", "S")},
		"TwoTerminal": {chomsky.Rule("S", "a", "a")},
		"TooLong":     {chomsky.Rule("S", "a", "S", "a")},
	} {
		t.Run(name, func(t *testing.T) {
			g := chomsky.MustGrammar(S("S"), S("a"), productions, "S")
			_, err := g.ToFiniteAutomaton()
			require.ErrorIs(t, err, chomsky.ErrInvalidGrammarShape)
		})
	}
}

func TestConvertToRegularGrammar(t *testing.T) {
	g, err := nfa(t).ConvertToRegularGrammar()
	require.NoError(t, err)
	require.Equal(t, S("q0", "q1", "q2", "q3"), g.Nonterminals())
	require.Equal(t, S("a", "b", "c"), g.Terminals())
	require.Equal(t, chomsky.Symbol("q0"), g.Start())
	require.Equal(t, []string{
		"q0 -> a q1",
		"q0 -> b q2",
		"q1 -> b q2",
		"q1 -> a q3",
		"q2 -> c q0",
		"q2 -> c q3",
		"q3 -> ε",
	}, productionStrings(g))
}

func TestConvertToRegularGrammar_Epsilon(t *testing.T) {
	g, err := epsilonNFA(t).ConvertToRegularGrammar()
	require.NoError(t, err)
	require.Equal(t, []string{
		"p0 -> a p0",
		"p0 -> b p2",
		"p1 -> b p2",
		"p2 -> ε",
	}, productionStrings(g))
}

func TestAutomatonGrammarRoundTrip(t *testing.T) {
	for _, original := range []*chomsky.FiniteAutomaton{nfa(t), epsilonNFA(t)} {
		g, err := original.ConvertToRegularGrammar()
		require.NoError(t, err)
		back, err := g.ToFiniteAutomaton()
		require.NoError(t, err)
		requireSameLanguage(t, original, back, 6)
	}
}

func TestGrammarAutomatonRoundTrip(t *testing.T) {
	g := labGrammar(t)
	fa, err := g.ToFiniteAutomaton()
	require.NoError(t, err)
	cnf, err := g.ToChomskyNormalForm()
	require.NoError(t, err)
	accepted := 0
	for _, word := range allWords(fa.Alphabet(), 6) {
		ok, err := fa.Accepts(word...)
		require.NoError(t, err)
		derived, err := cnf.Recognize(word...)
		require.NoError(t, err)
		require.Equal(t, ok, derived, "%v", word)
		if ok {
			accepted++
		}
	}
	require.NotZero(t, accepted)
}
