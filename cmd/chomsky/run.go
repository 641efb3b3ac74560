package main

import (
	"bytes"
	"fmt"
	"io"
	"runtime"

	"github.com/mattn/go-runewidth"
	"golang.org/x/sync/errgroup"

	"github.com/alecthomas/chomsky/internal/catalog"
)

type runCmd struct {
	Words int      `short:"n" default:"5" help:"Number of random words to generate per grammar."`
	Seed  int64    `default:"1" help:"Seed for word generation."`
	Jobs  int      `short:"j" default:"0" help:"Maximum examples to run concurrently (0 = GOMAXPROCS)."`
	Names []string `arg:"" optional:"" help:"Examples to run (default: all)."`
}

// example output is buffered so concurrent runs print in catalog order.
type example struct {
	name string
	out  bytes.Buffer
	err  error
}

func (r *runCmd) Run(globals *Globals, stdout io.Writer) error {
	cat, err := globals.load()
	if err != nil {
		return err
	}
	names := r.Names
	if len(names) == 0 {
		names = cat.Names()
	}
	examples := make([]*example, len(names))
	jobs := r.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	wg := errgroup.Group{}
	wg.SetLimit(jobs)
	for i, name := range names {
		ex := &example{name: name}
		examples[i] = ex
		seed := r.Seed + int64(i)
		name := name // per-iteration copy; go.mod targets go 1.21 loop semantics
		wg.Go(func() error {
			ex.err = runExample(&ex.out, cat, name, runOptions{words: r.Words, seed: seed})
			return nil
		})
	}
	_ = wg.Wait()

	failed := 0
	for _, ex := range examples {
		if _, err := stdout.Write(ex.out.Bytes()); err != nil {
			return err
		}
		if ex.err != nil {
			failed++
			fmt.Fprintf(stdout, "%s\n", rejectColour.Sprintf("%s: %s", ex.name, ex.err))
		}
		fmt.Fprintln(stdout)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d examples failed", failed, len(examples))
	}
	return nil
}

func runExample(w io.Writer, cat *catalog.Catalog, name string, options runOptions) error {
	if entry, ok := cat.Grammar(name); ok {
		return reportGrammar(w, entry, options)
	}
	if entry, ok := cat.Automaton(name); ok {
		return reportAutomaton(w, entry)
	}
	return fmt.Errorf("unknown example %q", name)
}

type listCmd struct{}

func (l *listCmd) Run(globals *Globals, stdout io.Writer) error {
	cat, err := globals.load()
	if err != nil {
		return err
	}
	for _, entry := range cat.Grammars {
		fmt.Fprintf(stdout, "grammar    %s %s\n", pad(entry.Name, nameWidth), entry.Description)
	}
	for _, entry := range cat.Automata {
		fmt.Fprintf(stdout, "automaton  %s %s\n", pad(entry.Name, nameWidth), entry.Description)
	}
	return nil
}

const nameWidth = 20

// pad name to width terminal cells.
func pad(name string, width int) string {
	return runewidth.FillRight(name, width)
}
