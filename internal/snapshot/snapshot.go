// Package snapshot serialises grammars and automata with msgpack.
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/alecthomas/chomsky"
)

// Version of the snapshot format.
const Version = 1

// ErrKind is returned when a snapshot holds a different kind of value than requested.
var ErrKind = errors.New("unexpected snapshot kind")

// Kind of value held by a snapshot.
type Kind string

// Snapshot kinds.
const (
	KindGrammar   Kind = "grammar"
	KindAutomaton Kind = "automaton"
)

// Snapshot is the on-disk representation.
type Snapshot struct {
	Version   int        `msgpack:"version"`
	Kind      Kind       `msgpack:"kind"`
	Name      string     `msgpack:"name,omitempty"`
	Grammar   *Grammar   `msgpack:"grammar,omitempty"`
	Automaton *Automaton `msgpack:"automaton,omitempty"`
}

// Grammar payload.
type Grammar struct {
	Nonterminals []string     `msgpack:"nonterminals"`
	Terminals    []string     `msgpack:"terminals"`
	Start        string       `msgpack:"start"`
	Productions  []Production `msgpack:"productions"`
}

// Production payload.
type Production struct {
	Left  []string `msgpack:"left"`
	Right []string `msgpack:"right"`
}

// Automaton payload.
type Automaton struct {
	States      []string     `msgpack:"states"`
	Alphabet    []string     `msgpack:"alphabet"`
	Start       string       `msgpack:"start"`
	Accepting   []string     `msgpack:"accepting"`
	Transitions []Transition `msgpack:"transitions"`
}

// Transition payload.
type Transition struct {
	From  string `msgpack:"from"`
	Label string `msgpack:"label"`
	To    string `msgpack:"to"`
}

func strs(symbols []chomsky.Symbol) []string {
	out := make([]string, len(symbols))
	for i, sym := range symbols {
		out[i] = string(sym)
	}
	return out
}

// FromGrammar captures g.
func FromGrammar(name string, g *chomsky.Grammar) *Snapshot {
	payload := &Grammar{
		Nonterminals: strs(g.Nonterminals()),
		Terminals:    strs(g.Terminals()),
		Start:        string(g.Start()),
	}
	for _, p := range g.Productions() {
		payload.Productions = append(payload.Productions, Production{Left: strs(p.Left), Right: strs(p.Right)})
	}
	return &Snapshot{Version: Version, Kind: KindGrammar, Name: name, Grammar: payload}
}

// FromAutomaton captures fa.
func FromAutomaton(name string, fa *chomsky.FiniteAutomaton) *Snapshot {
	payload := &Automaton{
		States:    strs(fa.States()),
		Alphabet:  strs(fa.Alphabet()),
		Start:     string(fa.Start()),
		Accepting: strs(fa.Accepting()),
	}
	for _, t := range fa.Transitions() {
		payload.Transitions = append(payload.Transitions, Transition{From: string(t.From), Label: string(t.Label), To: string(t.To)})
	}
	return &Snapshot{Version: Version, Kind: KindAutomaton, Name: name, Automaton: payload}
}

// Encode s to w.
func Encode(w io.Writer, s *Snapshot) error {
	return msgpack.NewEncoder(w).Encode(s)
}

// Marshal s to bytes.
func Marshal(s *Snapshot) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := Encode(buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode a snapshot from r.
func Decode(r io.Reader) (*Snapshot, error) {
	s := &Snapshot{}
	if err := msgpack.NewDecoder(r).Decode(s); err != nil {
		return nil, err
	}
	if s.Version != Version {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	return s, nil
}

// ToGrammar rebuilds the snapshot's grammar through chomsky.NewGrammar.
func (s *Snapshot) ToGrammar() (*chomsky.Grammar, error) {
	if s.Kind != KindGrammar || s.Grammar == nil {
		return nil, fmt.Errorf("%w: %s", ErrKind, s.Kind)
	}
	productions := make([]chomsky.Production, len(s.Grammar.Productions))
	for i, p := range s.Grammar.Productions {
		productions[i] = chomsky.Production{Left: chomsky.Symbols(p.Left...), Right: chomsky.Symbols(p.Right...)}
	}
	return chomsky.NewGrammar(chomsky.Symbols(s.Grammar.Nonterminals...), chomsky.Symbols(s.Grammar.Terminals...),
		productions, chomsky.Symbol(s.Grammar.Start))
}

// ToAutomaton rebuilds the snapshot's automaton through chomsky.NewFiniteAutomaton.
func (s *Snapshot) ToAutomaton() (*chomsky.FiniteAutomaton, error) {
	if s.Kind != KindAutomaton || s.Automaton == nil {
		return nil, fmt.Errorf("%w: %s", ErrKind, s.Kind)
	}
	transitions := make([]chomsky.Transition, len(s.Automaton.Transitions))
	for i, t := range s.Automaton.Transitions {
		transitions[i] = chomsky.Transition{From: chomsky.Symbol(t.From), Label: chomsky.Symbol(t.Label), To: chomsky.Symbol(t.To)}
	}
	a := s.Automaton
	return chomsky.NewFiniteAutomaton(chomsky.Symbols(a.States...), chomsky.Symbols(a.Alphabet...), transitions,
		chomsky.Symbol(a.Start), chomsky.Symbols(a.Accepting...))
}
