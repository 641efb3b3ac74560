package notation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alecthomas/chomsky"
	"github.com/alecthomas/chomsky/notation"
)

const lab = `
# Right-linear grammar.
S -> "a" B .
B -> "b" B | "c" L .
L -> "c" L | "a" S | "b" .
`

func productionStrings(g *chomsky.Grammar) []string {
	out := []string{}
	for _, p := range g.Productions() {
		out = append(out, p.String())
	}
	return out
}

func TestParseGrammar(t *testing.T) {
	g, err := notation.ParseGrammar(lab)
	require.NoError(t, err)
	require.Equal(t, chomsky.Symbols("S", "B", "L"), g.Nonterminals())
	require.Equal(t, chomsky.Symbols("a", "b", "c"), g.Terminals())
	require.Equal(t, chomsky.Symbol("S"), g.Start())
	require.Equal(t, []string{
		"S -> a B",
		"B -> b B",
		"B -> c L",
		"L -> c L",
		"L -> a S",
		"L -> b",
	}, productionStrings(g))
	require.Equal(t, chomsky.Regular, g.Classify())
}

func TestParseGrammar_StartAndEpsilon(t *testing.T) {
	g, err := notation.ParseGrammar(`
start = S .
A -> "a" A | ε .
S -> A "b" .
`)
	require.NoError(t, err)
	require.Equal(t, chomsky.Symbol("S"), g.Start())
	require.Equal(t, []string{"A -> a A", "A -> ε", "S -> A b"}, productionStrings(g))
	require.Equal(t, chomsky.ContextFree, g.Classify())
}

func TestParseGrammar_ContextSensitive(t *testing.T) {
	g, err := notation.ParseGrammar(`
S -> "a" B .
"a" B -> "a" "b" .
`)
	require.NoError(t, err)
	require.Equal(t, chomsky.ContextSensitive, g.Classify())
	require.Equal(t, "a B -> a b", g.Productions()[1].String())
}

func TestParseGrammar_Errors(t *testing.T) {
	_, err := notation.ParseGrammar(`S -> "a"`)
	require.Error(t, err)

	_, err = notation.ParseGrammar(`S -> "S" .`)
	require.ErrorIs(t, err, chomsky.ErrInvalidSymbol)

	_, err = notation.ParseGrammar(`"a" "b" -> "c" .`)
	require.EqualError(t, err, "grammar has no start symbol")
}

func TestParseString(t *testing.T) {
	f, err := notation.ParseString("lab.g", lab)
	require.NoError(t, err)
	require.Len(t, f.Productions, 3)
	require.Equal(t, 3, f.Productions[0].Pos.Line)
	require.Equal(t, "lab.g", f.Productions[0].Pos.Filename)
	require.Equal(t, `L -> "c" L | "a" S | "b" .`, f.Productions[2].String())
}

func TestFormat(t *testing.T) {
	g, err := notation.ParseGrammar(lab)
	require.NoError(t, err)
	text, err := notation.Format(g)
	require.NoError(t, err)
	require.Equal(t, `start = S .
S -> "a" B .
B -> "b" B | "c" L .
L -> "c" L | "a" S | "b" .
`, text)
	again, err := notation.ParseGrammar(text)
	require.NoError(t, err)
	require.Equal(t, productionStrings(g), productionStrings(again))
}

func TestFormat_InvalidIdentifier(t *testing.T) {
	fa := chomsky.MustFiniteAutomaton(chomsky.Symbols("q0", "q1"), chomsky.Symbols("a"), []chomsky.Transition{
		{From: "q0", Label: "a", To: "q1"},
	}, "q0", chomsky.Symbols("q1"))
	dfa, err := fa.ConvertToDFA()
	require.NoError(t, err)
	g, err := dfa.ConvertToRegularGrammar()
	require.NoError(t, err)
	_, err = notation.Format(g)
	require.Error(t, err)
}
