package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	cli := &CLI{}
	out := &bytes.Buffer{}
	parser, err := newParser(cli, out)
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	err = kctx.Run(&cli.Globals)
	return out.String(), err
}

func TestRunDefaultCatalog(t *testing.T) {
	out, err := execute(t, "run", "--words=2", "--jobs=2")
	require.NoError(t, err)
	for _, want := range []string{
		"== grammar right-linear ==",
		"Classification: Type-3 (regular)",
		`"acb": accepted`,
		`"ba": rejected`,
		"== grammar normal-form ==",
		"Classification: Type-2 (context-free)",
		`"d": accepted`,
		"== grammar context-sensitive ==",
		"Classification: Type-1 (context-sensitive)",
		"Chomsky Normal Form: skipped",
		"== automaton nondeterministic ==",
		"Deterministic: false",
		`"aa": accepted`,
		`"b": rejected`,
		"== automaton epsilon ==",
		`"aab": accepted`,
	} {
		require.Contains(t, out, want)
	}
	// Output follows catalog order regardless of scheduling.
	order := []string{"right-linear", "normal-form", "balanced", "context-sensitive", "nondeterministic", "epsilon"}
	last := -1
	for _, name := range order {
		idx := strings.Index(out, " "+name+" ==")
		require.Greater(t, idx, last, name)
		last = idx
	}
}

func TestRunIsDeterministicForSeed(t *testing.T) {
	a, err := execute(t, "run", "--seed=7", "--jobs=4", "balanced")
	require.NoError(t, err)
	b, err := execute(t, "run", "--seed=7", "--jobs=1", "balanced")
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestRunIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.toml")
	err := os.WriteFile(path, []byte(`
[[grammar]]
name = "broken"
start = "S"
nonterminals = ["S"]
terminals = ["a"]
productions = ["S -> aZ"]

[[automaton]]
name = "fine"
states = ["q0"]
alphabet = ["a"]
start = "q0"
accepting = ["q0"]
transitions = [["q0", "a", "q0"]]
words = ["aaa"]
`), 0600)
	require.NoError(t, err)
	out, err := execute(t, "--catalog", path, "run")
	require.EqualError(t, err, "1 of 2 examples failed")
	require.Contains(t, out, "broken: ")
	require.Contains(t, out, `"aaa": accepted`)
}

func TestRunUnknownExample(t *testing.T) {
	out, err := execute(t, "run", "missing")
	require.Error(t, err)
	require.Contains(t, out, `missing: unknown example "missing"`)
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	require.Contains(t, out, "grammar    right-linear")
	require.Contains(t, out, "automaton  epsilon")
}

func TestCNF(t *testing.T) {
	out, err := execute(t, "cnf", "balanced")
	require.NoError(t, err)
	require.NotContains(t, out, "ε")
	require.Contains(t, out, `-> "a" .`)
}

func TestCNF_NotContextFree(t *testing.T) {
	_, err := execute(t, "cnf", "context-sensitive")
	require.Error(t, err)
}

func TestDFA(t *testing.T) {
	out, err := execute(t, "dfa", "nondeterministic")
	require.NoError(t, err)
	require.Contains(t, out, "{q0,q3}")
	require.NotContains(t, out, "{q0,q1,q2,q3}")

	out, err = execute(t, "dfa", "--full", "nondeterministic")
	require.NoError(t, err)
	require.Contains(t, out, "{q0,q1,q2,q3}")
}

func TestDot(t *testing.T) {
	out, err := execute(t, "dot", "right-linear")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "digraph finite_automaton {\n"))
	require.Contains(t, out, `"S" -> "B" [label="a"];`)

	path := filepath.Join(t.TempDir(), "epsilon.dot")
	_, err = execute(t, "dot", "--dfa", "-o", path, "epsilon")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "\t\"{p0,p1}\";\n")
}

func TestExportInspect(t *testing.T) {
	dir := t.TempDir()
	grammarPath := filepath.Join(dir, "grammar.msgpack")
	_, err := execute(t, "export", "-o", grammarPath, "balanced")
	require.NoError(t, err)
	out, err := execute(t, "inspect", grammarPath)
	require.NoError(t, err)
	require.Equal(t, "grammar balanced\nstart = S .\nS -> \"a\" S \"b\" | \"a\" \"b\" .\n", out)

	automatonPath := filepath.Join(dir, "automaton.msgpack")
	_, err = execute(t, "export", "-o", automatonPath, "epsilon")
	require.NoError(t, err)
	out, err = execute(t, "inspect", "--repr", automatonPath)
	require.NoError(t, err)
	require.Contains(t, out, `"automaton"`)
	require.Contains(t, out, `Label: "ε"`)
}

func TestListAlignsNonASCIINames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	err := os.WriteFile(path, []byte(`
[[automaton]]
name = "ε-loop"
description = "loop"
states = ["q0"]
alphabet = ["a"]
start = "q0"

[[automaton]]
name = "plain"
description = "plain"
states = ["q0"]
alphabet = ["a"]
start = "q0"
`), 0600)
	require.NoError(t, err)
	out, err := execute(t, "--catalog", path, "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	loop := strings.TrimSuffix(lines[0], "loop")
	plain := strings.TrimSuffix(lines[1], "plain")
	require.Equal(t, runewidth.StringWidth(plain), runewidth.StringWidth(loop))
}
