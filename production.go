package chomsky

import (
	"strings"
)

// A Production rewrites the symbols on its left side into those on its right.
//
// An empty Right is the ε production.
type Production struct {
	Left  []Symbol
	Right []Symbol
}

// Rule creates a production with a single nonterminal on the left.
//
// A right side consisting solely of Epsilon is normalised to the empty sequence.
func Rule(left Symbol, right ...Symbol) Production {
	return Production{Left: []Symbol{left}, Right: normaliseRight(right)}
}

func normaliseRight(right []Symbol) []Symbol {
	if len(right) == 1 && right[0] == Epsilon {
		return nil
	}
	return append([]Symbol(nil), right...)
}

// Head returns the left side if it is a single symbol.
func (p Production) Head() (Symbol, bool) {
	if len(p.Left) != 1 {
		return "", false
	}
	return p.Left[0], true
}

// IsEpsilon returns true if the right side is empty.
func (p Production) IsEpsilon() bool { return len(p.Right) == 0 }

func (p Production) clone() Production {
	return Production{
		Left:  append([]Symbol(nil), p.Left...),
		Right: append([]Symbol(nil), p.Right...),
	}
}

// Equal returns true if both productions have identical sides.
func (p Production) Equal(other Production) bool {
	return symbolsEqual(p.Left, other.Left) && symbolsEqual(p.Right, other.Right)
}

func symbolsEqual(a, b []Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (p Production) String() string {
	right := string(Epsilon)
	if len(p.Right) > 0 {
		right = joinSymbols(p.Right, " ")
	}
	return joinSymbols(p.Left, " ") + " -> " + right
}

// key is a unique textual form used for de-duplication.
func (p Production) key() string {
	return joinSymbols(p.Left, "\x00") + "\x01" + joinSymbols(p.Right, "\x00")
}

// dedupe removes repeated productions, keeping the first occurrence.
func dedupe(productions []Production) []Production {
	seen := map[string]bool{}
	out := make([]Production, 0, len(productions))
	for _, p := range productions {
		k := p.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return out
}

func formatProductions(productions []Production) string {
	w := &strings.Builder{}
	for i, p := range productions {
		if i > 0 {
			w.WriteString("\n")
		}
		w.WriteString(p.String())
	}
	return w.String()
}
