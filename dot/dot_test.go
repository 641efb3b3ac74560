package dot_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alecthomas/chomsky"
	"github.com/alecthomas/chomsky/dot"
)

func TestWrite(t *testing.T) {
	fa := chomsky.MustFiniteAutomaton(chomsky.Symbols("q0", "q1"), chomsky.Symbols("a"), []chomsky.Transition{
		{From: "q0", Label: "a", To: "q1"},
		{From: "q1", Label: chomsky.Epsilon, To: "q0"},
	}, "q0", chomsky.Symbols("q1"))
	w := &bytes.Buffer{}
	require.NoError(t, dot.Write(w, fa))
	require.Equal(t, `digraph finite_automaton {
	rankdir=LR;
	node [shape=circle];
	"q0";
	"q1" [shape=doublecircle];
	__start [shape=point, label=""];
	__start -> "q0";
	"q0" -> "q1" [label="a"];
	"q1" -> "q0" [label="ε"];
}
`, w.String())
}

func TestStringQuotesSubsetStates(t *testing.T) {
	fa := chomsky.MustFiniteAutomaton(chomsky.Symbols("q0", "q1"), chomsky.Symbols("a"), []chomsky.Transition{
		{From: "q0", Label: "a", To: "q1"},
		{From: "q0", Label: "a", To: "q0"},
	}, "q0", chomsky.Symbols("q1"))
	dfa, err := fa.ConvertToDFA()
	require.NoError(t, err)
	require.Contains(t, dot.String(dfa.Reachable()), `"{q0}" -> "{q0,q1}" [label="a"];`)
}
