package chomsky

// Recognize reports whether a grammar in Chomsky Normal Form derives word, using the
// Cocke-Younger-Kasami algorithm.
//
// The empty word is never recognised.
func (g *Grammar) Recognize(word ...Symbol) (bool, error) {
	if !g.IsChomskyNormalForm() {
		return false, errorf(InvalidGrammarShape, "recognition requires Chomsky Normal Form")
	}
	for _, sym := range word {
		if !g.terminals.has(sym) {
			return false, errorf(InvalidSymbol, "%q is not a terminal", sym)
		}
	}
	n := len(word)
	if n == 0 {
		return false, nil
	}
	// table[i][l-1] holds the nonterminals deriving word[i:i+l].
	table := make([][]Set, n)
	for i := range table {
		table[i] = make([]Set, n-i)
		cell := Set{}
		for _, p := range g.productions {
			if len(p.Right) == 1 && p.Right[0] == word[i] {
				cell.Add(p.Left[0])
			}
		}
		table[i][0] = cell
	}
	for l := 2; l <= n; l++ {
		for i := 0; i+l <= n; i++ {
			cell := Set{}
			for split := 1; split < l; split++ {
				left, right := table[i][split-1], table[i+split][l-split-1]
				for _, p := range g.productions {
					if len(p.Right) == 2 && left.Has(p.Right[0]) && right.Has(p.Right[1]) {
						cell.Add(p.Left[0])
					}
				}
			}
			table[i][l-1] = cell
		}
	}
	return table[0][n-1].Has(g.start), nil
}
