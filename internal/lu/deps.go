package lu

// dependStep records the data dependencies of every task of step it.
func (g *Generator) dependStep(it int) {
	b := g.codec.Blocks()
	diag := Coord{it, it, it}

	// the next panel needs the whole trailing submatrix of the previous step
	if it > 0 {
		for i := it - 1; i < b; i++ {
			for j := it - 1; j < b; j++ {
				g.dep(diag, Coord{it - 1, i, j})
			}
		}
	}

	for j := it + 1; j < b; j++ {
		g.dep(Coord{it, it, j}, diag)
		g.dep(Coord{it, j, it}, diag)
	}

	for i := it + 1; i < b; i++ {
		for j := it + 1; j < b; j++ {
			// column factor from (it,i,it), row factor from (it,it,j)
			g.dep(Coord{it, i, j}, Coord{it, i, it})
			g.dep(Coord{it, i, j}, Coord{it, it, j})
		}
	}
}

// dep records that from depends on to. Both stay coordinates until the
// workload is assembled.
func (g *Generator) dep(from, to Coord) {
	f, t := g.codec.Encode(from), g.codec.Encode(to)
	set, ok := g.deps[f]
	if !ok {
		set = make(map[int]struct{})
		g.deps[f] = set
	}
	set[t] = struct{}{}
}
