package chomsky

import (
	"fmt"
	"io"
)

// A Stage is one step of a normalisation Pipeline.
//
// Apply must not modify its input. Only stages that introduce nonterminals use names.
type Stage struct {
	Name  string
	Apply func(g *Grammar, names *NameGenerator) (*Grammar, error)
}

// The stages of Chomsky Normal Form conversion, in order.
var (
	EpsilonStage = Stage{"remove ε-productions", func(g *Grammar, _ *NameGenerator) (*Grammar, error) {
		return EliminateEpsilon(g)
	}}
	UnitStage = Stage{"remove unit productions", func(g *Grammar, _ *NameGenerator) (*Grammar, error) {
		return EliminateUnitProductions(g)
	}}
	NonProductiveStage = Stage{"remove non-productive symbols", func(g *Grammar, _ *NameGenerator) (*Grammar, error) {
		return EliminateNonProductive(g)
	}}
	InaccessibleStage = Stage{"remove inaccessible symbols", func(g *Grammar, _ *NameGenerator) (*Grammar, error) {
		return EliminateInaccessible(g)
	}}
	BinarizeStage = Stage{"binarize", Binarize}
)

// DefaultStages returns the Chomsky Normal Form stages.
func DefaultStages() []Stage {
	return []Stage{EpsilonStage, UnitStage, NonProductiveStage, InaccessibleStage, BinarizeStage}
}

// A Pipeline applies a sequence of stages to a context-free grammar.
//
// A Pipeline holds no state between runs and may be shared.
type Pipeline struct {
	stages []Stage
	trace  io.Writer
	prefix string
	check  bool
}

// NewPipeline creates a Chomsky Normal Form pipeline.
func NewPipeline(options ...Option) (*Pipeline, error) {
	p := &Pipeline{
		stages: DefaultStages(),
		prefix: "X",
		check:  true,
	}
	for _, option := range options {
		if err := option(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Run the pipeline over g.
//
// Fresh nonterminals are drawn from a generator owned by this run.
func (p *Pipeline) Run(g *Grammar) (*Grammar, error) {
	if err := g.requireContextFree("normalise"); err != nil {
		return nil, err
	}
	names := NewNameGenerator(p.prefix, g.nonterminals.order, g.terminals.order)
	for _, stage := range p.stages {
		next, err := stage.Apply(g, names)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", stage.Name, err)
		}
		g = next
		if p.trace != nil {
			fmt.Fprintf(p.trace, "%s:\n%s\n", stage.Name, formatProductions(g.productions))
		}
	}
	if p.check && !g.IsChomskyNormalForm() {
		return nil, errorf(InvalidGrammarShape, "result is not in Chomsky Normal Form")
	}
	return g, nil
}

// ToChomskyNormalForm converts g to Chomsky Normal Form.
//
// The empty word is not preserved.
func (g *Grammar) ToChomskyNormalForm(options ...Option) (*Grammar, error) {
	p, err := NewPipeline(options...)
	if err != nil {
		return nil, err
	}
	return p.Run(g)
}

func (g *Grammar) rebuild(nonterminals []Symbol, productions []Production) (*Grammar, error) {
	return NewGrammar(nonterminals, g.terminals.order, dedupe(productions), g.start)
}

// EliminateEpsilon removes every ε-production.
//
// For each production, every combination of dropping or keeping each nullable
// occurrence on its right side is added, except combinations that leave the right side
// empty. Nonterminals that only ever derive ε are removed with their productions.
func EliminateEpsilon(g *Grammar) (*Grammar, error) {
	if err := g.requireContextFree("remove ε-productions"); err != nil {
		return nil, err
	}
	nullable := g.nullable()
	// Nullable symbols that derive nothing but ε are always dropped.
	onlyEpsilon := Set{}
	nonEmpty := g.derivesNonEmpty()
	for sym := range nullable {
		if !nonEmpty.Has(sym) {
			onlyEpsilon.Add(sym)
		}
	}
	var productions []Production
	for _, p := range g.productions {
		head := p.Left[0]
		if p.IsEpsilon() || onlyEpsilon.Has(head) {
			continue
		}
		var optional []int
		for i, sym := range p.Right {
			if nullable.Has(sym) && !onlyEpsilon.Has(sym) {
				optional = append(optional, i)
			}
		}
		for mask := (1 << uint(len(optional))) - 1; mask >= 0; mask-- {
			dropped := map[int]bool{}
			for bit, pos := range optional {
				if mask&(1<<uint(bit)) == 0 {
					dropped[pos] = true
				}
			}
			right := make([]Symbol, 0, len(p.Right))
			for i, sym := range p.Right {
				if dropped[i] || onlyEpsilon.Has(sym) {
					continue
				}
				right = append(right, sym)
			}
			if len(right) == 0 {
				continue
			}
			productions = append(productions, Rule(head, right...))
		}
	}
	var nonterminals []Symbol
	for _, sym := range g.nonterminals.order {
		if sym == g.start || !onlyEpsilon.Has(sym) {
			nonterminals = append(nonterminals, sym)
		}
	}
	return g.rebuild(nonterminals, productions)
}

// nullable returns the nonterminals that derive ε.
func (g *Grammar) nullable() Set {
	return g.fixedPoint(func(known Set, p Production) bool {
		for _, sym := range p.Right {
			if !known.Has(sym) {
				return false
			}
		}
		return true
	})
}

// derivesNonEmpty over-approximates the nonterminals that derive a non-empty word.
func (g *Grammar) derivesNonEmpty() Set {
	return g.fixedPoint(func(known Set, p Production) bool {
		for _, sym := range p.Right {
			if g.terminals.has(sym) || known.Has(sym) {
				return true
			}
		}
		return false
	})
}

// productive returns the nonterminals that derive a terminal word.
func (g *Grammar) productive() Set {
	return g.fixedPoint(func(known Set, p Production) bool {
		for _, sym := range p.Right {
			if !g.terminals.has(sym) && !known.Has(sym) {
				return false
			}
		}
		return true
	})
}

// fixedPoint grows a set of heads until no production satisfying rule adds a new one.
func (g *Grammar) fixedPoint(rule func(known Set, p Production) bool) Set {
	known := Set{}
	for changed := true; changed; {
		changed = false
		for _, p := range g.productions {
			head := p.Left[0]
			if !known.Has(head) && rule(known, p) {
				known.Add(head)
				changed = true
			}
		}
	}
	return known
}

func (g *Grammar) isUnit(p Production) bool {
	return len(p.Right) == 1 && g.nonterminals.has(p.Right[0])
}

// EliminateUnitProductions replaces every A -> B with the non-unit productions of
// every nonterminal reachable from A through chains of unit productions.
func EliminateUnitProductions(g *Grammar) (*Grammar, error) {
	if err := g.requireContextFree("remove unit productions"); err != nil {
		return nil, err
	}
	byHead := g.byHead()
	var productions []Production
	for _, head := range g.nonterminals.order {
		chain := newOrderedSet(head)
		for i := 0; i < len(chain.order); i++ {
			for _, p := range byHead[chain.order[i]] {
				if g.isUnit(p) {
					chain.add(p.Right[0])
				}
			}
		}
		for _, via := range chain.order {
			for _, p := range byHead[via] {
				if !g.isUnit(p) {
					productions = append(productions, Rule(head, p.Right...))
				}
			}
		}
	}
	return g.rebuild(g.nonterminals.order, productions)
}

// EliminateNonProductive removes nonterminals that derive no terminal word, together
// with every production mentioning them. The start symbol is always retained.
func EliminateNonProductive(g *Grammar) (*Grammar, error) {
	if err := g.requireContextFree("remove non-productive symbols"); err != nil {
		return nil, err
	}
	productive := g.productive()
	var productions []Production
	for _, p := range g.productions {
		if !productive.Has(p.Left[0]) {
			continue
		}
		keep := true
		for _, sym := range p.Right {
			if !g.terminals.has(sym) && !productive.Has(sym) {
				keep = false
				break
			}
		}
		if keep {
			productions = append(productions, p)
		}
	}
	var nonterminals []Symbol
	for _, sym := range g.nonterminals.order {
		if sym == g.start || productive.Has(sym) {
			nonterminals = append(nonterminals, sym)
		}
	}
	return g.rebuild(nonterminals, productions)
}

// EliminateInaccessible removes nonterminals not reachable from the start symbol,
// along with their productions.
func EliminateInaccessible(g *Grammar) (*Grammar, error) {
	if err := g.requireContextFree("remove inaccessible symbols"); err != nil {
		return nil, err
	}
	byHead := g.byHead()
	reached := newOrderedSet(g.start)
	for i := 0; i < len(reached.order); i++ {
		for _, p := range byHead[reached.order[i]] {
			for _, sym := range p.Right {
				if g.nonterminals.has(sym) {
					reached.add(sym)
				}
			}
		}
	}
	var productions []Production
	for _, p := range g.productions {
		if reached.has(p.Left[0]) {
			productions = append(productions, p)
		}
	}
	var nonterminals []Symbol
	for _, sym := range g.nonterminals.order {
		if reached.has(sym) {
			nonterminals = append(nonterminals, sym)
		}
	}
	return g.rebuild(nonterminals, productions)
}

// Binarize rewrites every right side longer than one symbol into nonterminal pairs.
//
// Terminals in such right sides are replaced by a fresh nonterminal per terminal, then
// right sides longer than two are folded left to right, each leading pair replaced by a
// fresh nonterminal shared by every occurrence of the same pair.
func Binarize(g *Grammar, names *NameGenerator) (*Grammar, error) {
	if err := g.requireContextFree("binarize"); err != nil {
		return nil, err
	}
	if names == nil {
		names = NewNameGenerator("X", g.nonterminals.order, g.terminals.order)
	}
	b := &binarizer{
		g:            g,
		names:        names,
		terminals:    map[Symbol]Symbol{},
		pairs:        map[string]Symbol{},
		nonterminals: newOrderedSet(g.nonterminals.order...),
	}
	productions := make([]Production, 0, len(g.productions))
	for _, p := range g.productions {
		productions = append(productions, b.rewrite(p))
	}
	productions = append(productions, b.added...)
	return g.rebuild(b.nonterminals.order, productions)
}

type binarizer struct {
	g            *Grammar
	names        *NameGenerator
	terminals    map[Symbol]Symbol
	pairs        map[string]Symbol
	nonterminals *orderedSet
	added        []Production
}

func (b *binarizer) rewrite(p Production) Production {
	if len(p.Right) < 2 {
		return p.clone()
	}
	right := make([]Symbol, len(p.Right))
	for i, sym := range p.Right {
		if b.g.terminals.has(sym) {
			sym = b.forTerminal(sym)
		}
		right[i] = sym
	}
	for len(right) > 2 {
		right = append([]Symbol{b.forPair(right[0], right[1])}, right[2:]...)
	}
	return Rule(p.Left[0], right...)
}

func (b *binarizer) forTerminal(terminal Symbol) Symbol {
	if name, ok := b.terminals[terminal]; ok {
		return name
	}
	name := b.fresh()
	b.terminals[terminal] = name
	b.added = append(b.added, Rule(name, terminal))
	return name
}

func (b *binarizer) forPair(left, right Symbol) Symbol {
	key := string(left) + " " + string(right)
	if name, ok := b.pairs[key]; ok {
		return name
	}
	name := b.fresh()
	b.pairs[key] = name
	b.added = append(b.added, Rule(name, left, right))
	return name
}

func (b *binarizer) fresh() Symbol {
	name := b.names.Next()
	b.nonterminals.add(name)
	return name
}
