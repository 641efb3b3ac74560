// Package dot renders finite automata in the Graphviz DOT language.
package dot

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/chomsky"
)

// Write the DOT graph of fa to w.
//
// Accepting states are drawn as double circles and an invisible point node marks the
// start state.
func Write(w io.Writer, fa *chomsky.FiniteAutomaton) error {
	_, err := io.WriteString(w, String(fa))
	return err
}

// String returns the DOT graph of fa.
func String(fa *chomsky.FiniteAutomaton) string {
	sb := &strings.Builder{}
	sb.WriteString("digraph finite_automaton {\n")
	sb.WriteString("\trankdir=LR;\n")
	sb.WriteString("\tnode [shape=circle];\n")
	for _, state := range fa.States() {
		if fa.IsAccepting(state) {
			fmt.Fprintf(sb, "\t%s [shape=doublecircle];\n", quote(state))
		} else {
			fmt.Fprintf(sb, "\t%s;\n", quote(state))
		}
	}
	sb.WriteString("\t__start [shape=point, label=\"\"];\n")
	fmt.Fprintf(sb, "\t__start -> %s;\n", quote(fa.Start()))
	for _, t := range fa.Transitions() {
		fmt.Fprintf(sb, "\t%s -> %s [label=%s];\n", quote(t.From), quote(t.To), quote(t.Label))
	}
	sb.WriteString("}\n")
	return sb.String()
}

func quote(sym chomsky.Symbol) string { return strconv.Quote(string(sym)) }
