// Package notation parses a compact textual notation for grammars.
//
// The notation is:
//
//      File        = ("start" "=" <ident> ".")? Production* .
//      Production  = Symbol+ "->" Alternative ("|" Alternative)* "." .
//      Alternative = "ε" | Symbol* .
//      Symbol      = <ident> | <string> .
//
// Identifiers are nonterminals and double-quoted strings are terminals. Without a start
// declaration the first nonterminal of the first production is the start symbol. "#"
// starts a comment.
//
//      S -> "a" B .
//      B -> "b" B | "c" L .
//      L -> "c" L | "a" S | "b" .
package notation

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/alecthomas/chomsky"
)

var (
	notationLexer = lexer.MustSimple([]lexer.SimpleRule{
		{"Comment", `#[^\n]*`},
		{"Epsilon", `ε|ϵ`},
		{"Arrow", `->|→`},
		{"String", `"(?:\\.|[^"])*"`},
		{"Ident", `[A-Za-z_][A-Za-z0-9_']*`},
		{"Punct", `[|.=]`},
		{"Whitespace", `\s+`},
	})
	parser = participle.MustBuild[File](
		participle.Lexer(notationLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.Unquote("String"),
		participle.UseLookahead(2),
	)
	identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_']*$`)
)

// File is a parsed grammar file.
type File struct {
	Start       string        `("start" "=" @Ident ".")?`
	Productions []*Production `@@*`
}

// Production is one left side with its alternatives.
type Production struct {
	Pos lexer.Position

	Left         []*Symbol      `@@+ Arrow`
	Alternatives []*Alternative `@@ ("|" @@)* "."`
}

// Alternative is a single right side.
type Alternative struct {
	Epsilon bool      `  @Epsilon`
	Symbols []*Symbol `| @@*`
}

// Symbol is a terminal or a nonterminal.
type Symbol struct {
	Terminal    string `  @String`
	Nonterminal string `| @Ident`
}

func (s *Symbol) String() string {
	if s.Nonterminal != "" {
		return s.Nonterminal
	}
	return strconv.Quote(s.Terminal)
}

func (a *Alternative) String() string {
	if a.Epsilon || len(a.Symbols) == 0 {
		return "ε"
	}
	parts := make([]string, len(a.Symbols))
	for i, sym := range a.Symbols {
		parts[i] = sym.String()
	}
	return strings.Join(parts, " ")
}

func (p *Production) String() string {
	left := make([]string, len(p.Left))
	for i, sym := range p.Left {
		left[i] = sym.String()
	}
	alternatives := make([]string, len(p.Alternatives))
	for i, alt := range p.Alternatives {
		alternatives[i] = alt.String()
	}
	return strings.Join(left, " ") + " -> " + strings.Join(alternatives, " | ") + " ."
}

func (f *File) String() string {
	w := &strings.Builder{}
	if f.Start != "" {
		fmt.Fprintf(w, "start = %s .\n", f.Start)
	}
	for _, p := range f.Productions {
		fmt.Fprintln(w, p)
	}
	return w.String()
}

// ParseString parses src into a File.
func ParseString(filename, src string) (*File, error) {
	return parser.ParseString(filename, src)
}

// Parse parses r into a File.
func Parse(filename string, r io.Reader) (*File, error) {
	return parser.Parse(filename, r)
}

// ParseGrammar parses src and builds the grammar it describes.
func ParseGrammar(src string) (*chomsky.Grammar, error) {
	f, err := ParseString("", src)
	if err != nil {
		return nil, err
	}
	return f.Grammar()
}

// Grammar builds the grammar described by the file.
//
// Symbols are declared in order of first appearance.
func (f *File) Grammar() (*chomsky.Grammar, error) {
	var (
		nonterminals, terminals []chomsky.Symbol
		seenNonterminal         = map[chomsky.Symbol]bool{}
		seenTerminal            = map[chomsky.Symbol]bool{}
		productions             []chomsky.Production
	)
	declare := func(sym *Symbol) (chomsky.Symbol, error) {
		var out chomsky.Symbol
		switch {
		case sym.Nonterminal != "":
			out = chomsky.Symbol(sym.Nonterminal)
			if !seenNonterminal[out] {
				seenNonterminal[out] = true
				nonterminals = append(nonterminals, out)
			}
		case sym.Terminal != "":
			out = chomsky.Symbol(sym.Terminal)
			if !seenTerminal[out] {
				seenTerminal[out] = true
				terminals = append(terminals, out)
			}
		default:
			return "", errors.New("empty terminal")
		}
		return out, nil
	}
	symbols := func(in []*Symbol) ([]chomsky.Symbol, error) {
		out := make([]chomsky.Symbol, 0, len(in))
		for _, sym := range in {
			s, err := declare(sym)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	}
	start := chomsky.Symbol(f.Start)
	for _, p := range f.Productions {
		left, err := symbols(p.Left)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Pos, err)
		}
		if start == "" {
			for i, sym := range p.Left {
				if sym.Nonterminal != "" {
					start = left[i]
					break
				}
			}
		}
		for _, alt := range p.Alternatives {
			right, err := symbols(alt.Symbols)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", p.Pos, err)
			}
			productions = append(productions, chomsky.Production{Left: left, Right: right})
		}
	}
	if start == "" {
		return nil, errors.New("grammar has no start symbol")
	}
	if !seenNonterminal[start] {
		nonterminals = append([]chomsky.Symbol{start}, nonterminals...)
	}
	return chomsky.NewGrammar(nonterminals, terminals, productions, start)
}

// Format renders g in the notation, merging consecutive productions with the same left
// side into alternatives.
//
// Declared symbols that no production uses are not represented.
func Format(g *chomsky.Grammar) (string, error) {
	f := &File{Start: string(g.Start())}
	if !identRe.MatchString(f.Start) {
		return "", fmt.Errorf("%q can not be written as a nonterminal", f.Start)
	}
	var last *Production
	for _, p := range g.Productions() {
		left, err := formatSymbols(g, p.Left)
		if err != nil {
			return "", err
		}
		right, err := formatSymbols(g, p.Right)
		if err != nil {
			return "", err
		}
		alt := &Alternative{Symbols: right, Epsilon: len(right) == 0}
		if last != nil && sameSymbols(last.Left, left) {
			last.Alternatives = append(last.Alternatives, alt)
			continue
		}
		last = &Production{Left: left, Alternatives: []*Alternative{alt}}
		f.Productions = append(f.Productions, last)
	}
	return f.String(), nil
}

func formatSymbols(g *chomsky.Grammar, in []chomsky.Symbol) ([]*Symbol, error) {
	out := make([]*Symbol, len(in))
	for i, sym := range in {
		if g.IsTerminal(sym) {
			out[i] = &Symbol{Terminal: string(sym)}
			continue
		}
		if !identRe.MatchString(string(sym)) {
			return nil, fmt.Errorf("%q can not be written as a nonterminal", sym)
		}
		out[i] = &Symbol{Nonterminal: string(sym)}
	}
	return out, nil
}

func sameSymbols(a, b []*Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if *a[i] != *b[i] {
			return false
		}
	}
	return true
}
