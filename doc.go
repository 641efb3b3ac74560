// Package chomsky classifies formal grammars by the Chomsky hierarchy, converts
// between regular grammars and finite automata, determinises automata by subset
// construction and normalises context-free grammars into Chomsky Normal Form.
//
// Grammars and automata are immutable; every conversion returns a new value, so
// independent values may be used from multiple goroutines.
//
// A grammar is built from productions over declared symbols:
//
//     g, err := chomsky.NewGrammar(
//         chomsky.Symbols("S", "B"),
//         chomsky.Symbols("a", "b"),
//         []chomsky.Production{
//             chomsky.Rule("S", "a", "B"),
//             chomsky.Rule("B", "b"),
//         },
//         "S",
//     )
//
// Productions with an empty right side are ε-productions. Automaton transitions use
// the Epsilon label for moves that consume no input.
//
// Chomsky Normal Form conversion runs the stages EliminateEpsilon,
// EliminateUnitProductions, EliminateNonProductive, EliminateInaccessible and Binarize
// in order:
//
//     cnf, err := g.ToChomskyNormalForm(chomsky.Trace(os.Stderr))
package chomsky
