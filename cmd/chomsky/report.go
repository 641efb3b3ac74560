package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/fatih/color"

	"github.com/alecthomas/chomsky"
	"github.com/alecthomas/chomsky/internal/catalog"
	"github.com/alecthomas/chomsky/notation"
)

var (
	headingColour = color.New(color.FgCyan, color.Bold)
	acceptColour  = color.New(color.FgGreen)
	rejectColour  = color.New(color.FgRed)
	skipColour    = color.New(color.FgYellow)
)

// reporter writes one example's results.
//
// Failed records the first error that is not a grammar shape mismatch.
type reporter struct {
	w      io.Writer
	Failed error
}

func (r *reporter) heading(format string, args ...interface{}) {
	fmt.Fprintln(r.w, headingColour.Sprintf(format, args...))
}

func (r *reporter) section(title string) {
	fmt.Fprintf(r.w, "%s:\n", title)
}

func (r *reporter) line(format string, args ...interface{}) {
	fmt.Fprintf(r.w, "  "+format+"\n", args...)
}

func (r *reporter) block(text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		r.line("%s", line)
	}
}

// check prints err and reports whether the step succeeded.
func (r *reporter) check(step string, err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, chomsky.ErrInvalidGrammarShape) {
		fmt.Fprintf(r.w, "%s: %s\n", step, skipColour.Sprintf("skipped (%s)", err))
		return false
	}
	fmt.Fprintf(r.w, "%s: %s\n", step, rejectColour.Sprint(err))
	if r.Failed == nil {
		r.Failed = fmt.Errorf("%s: %w", step, err)
	}
	return false
}

func (r *reporter) verdict(word string, ok bool, err error) {
	word = fmt.Sprintf("%q", word)
	switch {
	case err != nil:
		r.line("%s: %s", word, skipColour.Sprint(err))
	case ok:
		r.line("%s: %s", word, acceptColour.Sprint("accepted"))
	default:
		r.line("%s: %s", word, rejectColour.Sprint("rejected"))
	}
}

func (r *reporter) grammar(g *chomsky.Grammar) {
	if text, err := notation.Format(g); err == nil {
		r.block(text)
	} else {
		r.block(g.String())
	}
}

type runOptions struct {
	words int
	seed  int64
}

// reportGrammar runs every grammar operation over entry.
func reportGrammar(w io.Writer, entry catalog.GrammarEntry, options runOptions) error {
	r := &reporter{w: w}
	r.heading("== grammar %s ==", entry.Name)
	if entry.Description != "" {
		fmt.Fprintln(w, entry.Description)
	}
	g, err := entry.Build()
	if err != nil {
		return err
	}
	r.grammar(g)
	fmt.Fprintf(w, "Classification: %s\n", g.Classify())

	rng := rand.New(rand.NewSource(options.seed)) // nolint: gosec
	if words, err := g.Words(rng, options.words); r.check("Generated words", err) {
		r.section("Generated words")
		for _, word := range words {
			r.line("%q", word)
		}
	}

	var recognise func(word string) (bool, error)
	if fa, err := g.ToFiniteAutomaton(); r.check("Finite automaton", err) {
		r.section("Finite automaton")
		r.block(fa.String())
		recognise = fa.IsWordValid
	}
	if cnf, err := g.ToChomskyNormalForm(); r.check("Chomsky Normal Form", err) {
		r.section("Chomsky Normal Form")
		r.grammar(cnf)
		if recognise == nil {
			recognise = func(word string) (bool, error) {
				return cnf.Recognize(chomsky.Symbols(strings.Split(word, "")...)...)
			}
		}
	}
	if len(entry.Words) > 0 && recognise != nil {
		r.section("Words")
		for _, word := range entry.Words {
			ok, err := recognise(word)
			r.verdict(word, ok, err)
		}
	}
	return r.Failed
}

// reportAutomaton runs every automaton operation over entry.
func reportAutomaton(w io.Writer, entry catalog.AutomatonEntry) error {
	r := &reporter{w: w}
	r.heading("== automaton %s ==", entry.Name)
	if entry.Description != "" {
		fmt.Fprintln(w, entry.Description)
	}
	fa, err := entry.Build()
	if err != nil {
		return err
	}
	r.block(fa.String())
	fmt.Fprintf(w, "Deterministic: %v\n", fa.IsDeterministic())
	if len(entry.Words) > 0 {
		r.section("Words")
		for _, word := range entry.Words {
			ok, err := fa.IsWordValid(word)
			r.verdict(word, ok, err)
		}
	}
	if g, err := fa.ConvertToRegularGrammar(); r.check("Regular grammar", err) {
		r.section("Regular grammar")
		r.grammar(g)
		fmt.Fprintf(w, "Classification: %s\n", g.Classify())
	}
	if dfa, err := fa.ConvertToDFA(); r.check("Deterministic automaton", err) {
		r.section("Deterministic automaton (reachable states)")
		r.block(dfa.Reachable().String())
	}
	return r.Failed
}
