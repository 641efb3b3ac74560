// Command chomsky runs grammar and automaton examples.
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/alecthomas/chomsky/internal/catalog"
)

var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Version kong.VersionFlag `help:"Show version."`
	Catalog string           `short:"c" type:"existingfile" help:"TOML catalog of examples (default: built-in examples)."`
	NoColor bool             `help:"Disable coloured output."`
}

func (g *Globals) load() (*catalog.Catalog, error) {
	if g.Catalog == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(g.Catalog)
}

// CLI is the command-line interface.
type CLI struct {
	Globals

	Run     runCmd     `cmd:"" default:"withargs" help:"Run every example in the catalog."`
	List    listCmd    `cmd:"" help:"List the examples in the catalog."`
	CNF     cnfCmd     `cmd:"" name:"cnf" help:"Convert a grammar to Chomsky Normal Form."`
	DFA     dfaCmd     `cmd:"" name:"dfa" help:"Determinise an automaton by subset construction."`
	Dot     dotCmd     `cmd:"" help:"Render an automaton as Graphviz DOT."`
	Export  exportCmd  `cmd:"" help:"Write an example as a msgpack snapshot."`
	Inspect inspectCmd `cmd:"" help:"Print a msgpack snapshot."`
}

func newParser(cli *CLI, stdout io.Writer) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("chomsky"),
		kong.Description(`Classify grammars, convert them to and from finite automata, and normalise them.`),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.BindTo(stdout, (*io.Writer)(nil)),
	)
}

func main() {
	cli := &CLI{}
	parser, err := newParser(cli, os.Stdout)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	if cli.NoColor {
		color.NoColor = true
	}
	err = kctx.Run(&cli.Globals)
	kctx.FatalIfErrorf(err)
}
