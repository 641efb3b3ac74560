package chomsky

import "math/rand"

// Rand is a uniform discrete random source.
//
// *math/rand.Rand satisfies this interface.
type Rand interface {
	// Intn returns a uniformly distributed integer in [0, n).
	Intn(n int) int
}

type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) } // nolint: gosec

// Derive a random terminal sequence from the start symbol.
//
// At each nonterminal a production is chosen uniformly from those with a matching
// left side. If rng is nil the math/rand global source is used. Derivation does not
// terminate for grammars whose every choice recurses.
func (g *Grammar) Derive(rng Rand) ([]Symbol, error) {
	if err := g.requireContextFree("derive"); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = globalRand{}
	}
	d := &deriver{rng: rng, grammar: g, byHead: g.byHead()}
	var out []Symbol
	if err := d.derive(g.start, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GenerateWord derives a random word and concatenates its terminals.
func (g *Grammar) GenerateWord(rng Rand) (string, error) {
	symbols, err := g.Derive(rng)
	if err != nil {
		return "", err
	}
	return joinSymbols(symbols, ""), nil
}

type deriver struct {
	rng     Rand
	grammar *Grammar
	byHead  map[Symbol][]Production
}

func (d *deriver) derive(sym Symbol, out *[]Symbol) error {
	if d.grammar.terminals.has(sym) {
		*out = append(*out, sym)
		return nil
	}
	choices := d.byHead[sym]
	if len(choices) == 0 {
		return errorf(NoApplicableProduction, "no production for %q", sym)
	}
	p := choices[d.rng.Intn(len(choices))]
	for _, next := range p.Right {
		if err := d.derive(next, out); err != nil {
			return err
		}
	}
	return nil
}

// Words generates n random words, stopping at the first error.
func (g *Grammar) Words(rng Rand, n int) ([]string, error) {
	words := make([]string, 0, n)
	for i := 0; i < n; i++ {
		word, err := g.GenerateWord(rng)
		if err != nil {
			return words, err
		}
		words = append(words, word)
	}
	return words, nil
}

