package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/repr"

	"github.com/alecthomas/chomsky"
	"github.com/alecthomas/chomsky/dot"
	"github.com/alecthomas/chomsky/internal/catalog"
	"github.com/alecthomas/chomsky/internal/snapshot"
	"github.com/alecthomas/chomsky/notation"
)

func lookupGrammar(cat *catalog.Catalog, name string) (*chomsky.Grammar, error) {
	entry, ok := cat.Grammar(name)
	if !ok {
		return nil, fmt.Errorf("unknown grammar %q", name)
	}
	return entry.Build()
}

// lookupAutomaton returns the named automaton, converting a right-linear grammar if necessary.
func lookupAutomaton(cat *catalog.Catalog, name string) (*chomsky.FiniteAutomaton, error) {
	if entry, ok := cat.Automaton(name); ok {
		return entry.Build()
	}
	if _, ok := cat.Grammar(name); !ok {
		return nil, fmt.Errorf("unknown example %q", name)
	}
	g, err := lookupGrammar(cat, name)
	if err != nil {
		return nil, err
	}
	return g.ToFiniteAutomaton()
}

type cnfCmd struct {
	Trace bool   `help:"Print the grammar after each normalisation stage to stderr."`
	Name  string `arg:"" help:"Grammar to normalise."`
}

func (c *cnfCmd) Run(globals *Globals, stdout io.Writer) error {
	cat, err := globals.load()
	if err != nil {
		return err
	}
	g, err := lookupGrammar(cat, c.Name)
	if err != nil {
		return err
	}
	options := []chomsky.Option{}
	if c.Trace {
		options = append(options, chomsky.Trace(os.Stderr))
	}
	cnf, err := g.ToChomskyNormalForm(options...)
	if err != nil {
		return err
	}
	return printGrammar(stdout, cnf)
}

func printGrammar(w io.Writer, g *chomsky.Grammar) error {
	text, err := notation.Format(g)
	if err != nil {
		text = g.String()
	}
	_, err = fmt.Fprintln(w, strings.TrimRight(text, "\n"))
	return err
}

type dfaCmd struct {
	Full bool   `help:"Include subsets unreachable from the start state."`
	Name string `arg:"" help:"Automaton (or right-linear grammar) to determinise."`
}

func (d *dfaCmd) Run(globals *Globals, stdout io.Writer) error {
	cat, err := globals.load()
	if err != nil {
		return err
	}
	fa, err := lookupAutomaton(cat, d.Name)
	if err != nil {
		return err
	}
	dfa, err := fa.ConvertToDFA()
	if err != nil {
		return err
	}
	if !d.Full {
		dfa = dfa.Reachable()
	}
	_, err = fmt.Fprint(stdout, dfa)
	return err
}

type dotCmd struct {
	DFA    bool   `name:"dfa" help:"Determinise before rendering."`
	Output string `short:"o" type:"path" help:"Write to this file rather than stdout."`
	Name   string `arg:"" help:"Automaton (or right-linear grammar) to render."`
}

func (d *dotCmd) Run(globals *Globals, stdout io.Writer) error {
	cat, err := globals.load()
	if err != nil {
		return err
	}
	fa, err := lookupAutomaton(cat, d.Name)
	if err != nil {
		return err
	}
	if d.DFA {
		if fa, err = fa.ConvertToDFA(); err != nil {
			return err
		}
		fa = fa.Reachable()
	}
	if d.Output == "" {
		return dot.Write(stdout, fa)
	}
	w, err := os.Create(d.Output)
	if err != nil {
		return err
	}
	defer w.Close() // nolint: errcheck
	if err := dot.Write(w, fa); err != nil {
		return err
	}
	return w.Close()
}

type exportCmd struct {
	Output string `short:"o" type:"path" required:"" help:"Snapshot file to write."`
	Name   string `arg:"" help:"Example to export."`
}

func (e *exportCmd) Run(globals *Globals) error {
	cat, err := globals.load()
	if err != nil {
		return err
	}
	var snap *snapshot.Snapshot
	if _, ok := cat.Grammar(e.Name); ok {
		g, err := lookupGrammar(cat, e.Name)
		if err != nil {
			return err
		}
		snap = snapshot.FromGrammar(e.Name, g)
	} else {
		fa, err := lookupAutomaton(cat, e.Name)
		if err != nil {
			return err
		}
		snap = snapshot.FromAutomaton(e.Name, fa)
	}
	w, err := os.Create(e.Output)
	if err != nil {
		return err
	}
	defer w.Close() // nolint: errcheck
	if err := snapshot.Encode(w, snap); err != nil {
		return err
	}
	return w.Close()
}

type inspectCmd struct {
	Repr bool   `help:"Dump the raw snapshot structure."`
	File string `arg:"" type:"existingfile" help:"Snapshot file to read."`
}

func (i *inspectCmd) Run(stdout io.Writer) error {
	r, err := os.Open(i.File)
	if err != nil {
		return err
	}
	defer r.Close() // nolint: errcheck
	snap, err := snapshot.Decode(r)
	if err != nil {
		return err
	}
	if i.Repr {
		_, err = fmt.Fprintln(stdout, repr.String(snap, repr.Indent("  "), repr.OmitEmpty(true)))
		return err
	}
	fmt.Fprintf(stdout, "%s %s\n", snap.Kind, snap.Name)
	switch snap.Kind {
	case snapshot.KindGrammar:
		g, err := snap.ToGrammar()
		if err != nil {
			return err
		}
		return printGrammar(stdout, g)
	default:
		fa, err := snap.ToAutomaton()
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(stdout, fa)
		return err
	}
}
