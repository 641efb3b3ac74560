// Package catalog loads named example grammars and automata from TOML.
package catalog

import (
	_ "embed" // For go:embed.
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"

	"github.com/alecthomas/chomsky"
	"github.com/alecthomas/chomsky/notation"
)

//go:embed default.toml
var defaultCatalog string

// ErrUnknownKey is returned when a catalog contains keys that map to nothing.
var ErrUnknownKey = errors.New("unknown catalog key")

// Catalog of examples.
type Catalog struct {
	Grammars []GrammarEntry   `toml:"grammar"`
	Automata []AutomatonEntry `toml:"automaton"`
}

// GrammarEntry describes a grammar either by symbol lists or in notation form.
//
// Productions are written "A -> aB". Sides containing whitespace are split on it,
// otherwise every character is one symbol. "ε" or an empty side is the empty sequence.
type GrammarEntry struct {
	Name         string   `toml:"name"`
	Description  string   `toml:"description"`
	Start        string   `toml:"start"`
	Nonterminals []string `toml:"nonterminals"`
	Terminals    []string `toml:"terminals"`
	Productions  []string `toml:"productions"`
	Notation     string   `toml:"notation"`
	Words        []string `toml:"words"`
}

// AutomatonEntry describes a finite automaton. Each transition is [from, label, to].
type AutomatonEntry struct {
	Name        string     `toml:"name"`
	Description string     `toml:"description"`
	States      []string   `toml:"states"`
	Alphabet    []string   `toml:"alphabet"`
	Start       string     `toml:"start"`
	Accepting   []string   `toml:"accepting"`
	Transitions [][]string `toml:"transitions"`
	Words       []string   `toml:"words"`
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Decode(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

// Load a catalog from a TOML file.
func Load(path string) (*Catalog, error) {
	c := &Catalog{}
	meta, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := c.check(meta); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Decode a catalog from TOML source.
func Decode(data string) (*Catalog, error) {
	c := &Catalog{}
	meta, err := toml.Decode(data, c)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if err := c.check(meta); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) check(meta toml.MetaData) error {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}
	seen := map[string]bool{}
	for _, name := range c.Names() {
		if name == "" {
			return errors.New("example without a name")
		}
		if seen[name] {
			return fmt.Errorf("duplicate example %q", name)
		}
		seen[name] = true
	}
	return nil
}

// Names of every example, grammars first.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Grammars)+len(c.Automata))
	for _, g := range c.Grammars {
		names = append(names, g.Name)
	}
	for _, a := range c.Automata {
		names = append(names, a.Name)
	}
	return names
}

// Grammar returns the grammar entry called name.
func (c *Catalog) Grammar(name string) (GrammarEntry, bool) {
	for _, g := range c.Grammars {
		if g.Name == name {
			return g, true
		}
	}
	return GrammarEntry{}, false
}

// Automaton returns the automaton entry called name.
func (c *Catalog) Automaton(name string) (AutomatonEntry, bool) {
	for _, a := range c.Automata {
		if a.Name == name {
			return a, true
		}
	}
	return AutomatonEntry{}, false
}

// Build the grammar.
func (e GrammarEntry) Build() (*chomsky.Grammar, error) {
	if e.Notation != "" {
		if len(e.Productions) > 0 || len(e.Nonterminals) > 0 || len(e.Terminals) > 0 {
			return nil, fmt.Errorf("%s: notation can not be combined with symbol lists", e.Name)
		}
		g, err := notation.ParseGrammar(e.Notation)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name, err)
		}
		return g, nil
	}
	productions := make([]chomsky.Production, 0, len(e.Productions))
	for _, text := range e.Productions {
		p, err := ParseProduction(text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name, err)
		}
		productions = append(productions, p)
	}
	g, err := chomsky.NewGrammar(chomsky.Symbols(e.Nonterminals...), chomsky.Symbols(e.Terminals...), productions, chomsky.Symbol(e.Start))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Name, err)
	}
	return g, nil
}

// ParseProduction parses "left -> right".
func ParseProduction(text string) (chomsky.Production, error) {
	left, right, ok := strings.Cut(text, "->")
	if !ok {
		return chomsky.Production{}, fmt.Errorf("production %q has no \"->\"", text)
	}
	p := chomsky.Production{Left: splitSide(left), Right: splitSide(right)}
	if len(p.Left) == 0 {
		return chomsky.Production{}, fmt.Errorf("production %q has an empty left side", text)
	}
	return p, nil
}

func splitSide(side string) []chomsky.Symbol {
	side = strings.TrimSpace(side)
	if side == "" || side == string(chomsky.Epsilon) {
		return nil
	}
	if strings.IndexFunc(side, unicode.IsSpace) >= 0 {
		return chomsky.Symbols(strings.Fields(side)...)
	}
	var out []chomsky.Symbol
	for _, r := range side {
		out = append(out, chomsky.Symbol(string(r)))
	}
	return out
}

// Build the automaton.
func (e AutomatonEntry) Build() (*chomsky.FiniteAutomaton, error) {
	transitions := make([]chomsky.Transition, 0, len(e.Transitions))
	for i, row := range e.Transitions {
		if len(row) != 3 {
			return nil, fmt.Errorf("%s: transition %d must be [from, label, to]", e.Name, i)
		}
		transitions = append(transitions, chomsky.Transition{
			From:  chomsky.Symbol(row[0]),
			Label: chomsky.Symbol(row[1]),
			To:    chomsky.Symbol(row[2]),
		})
	}
	fa, err := chomsky.NewFiniteAutomaton(chomsky.Symbols(e.States...), chomsky.Symbols(e.Alphabet...), transitions,
		chomsky.Symbol(e.Start), chomsky.Symbols(e.Accepting...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Name, err)
	}
	return fa, nil
}
