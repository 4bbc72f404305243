package lu

import (
	"github.com/pkg/errors"
)

// registerStep issues the tasks of factorization step it in the order the
// blocked algorithm runs them: the diagonal panel, then row and column
// perimeter pairs, then the trailing submatrix row by row.
func (g *Generator) registerStep(it int) {
	b := g.codec.Blocks()

	g.register(Coord{it, it, it})

	for j := it + 1; j < b; j++ {
		g.register(Coord{it, it, j})
		g.register(Coord{it, j, it})
	}

	for i := it + 1; i < b; i++ {
		for j := it + 1; j < b; j++ {
			g.register(Coord{it, i, j})
		}
	}
}

func (g *Generator) register(c Coord) {
	slot := g.codec.Encode(c)
	if _, ok := g.ids[slot]; ok {
		panic("task registered twice: " + c.String())
	}
	g.ids[slot] = len(g.slots)
	g.slots = append(g.slots, slot)
	g.labels = append(g.labels, c.String())
}

// lookup resolves a slot to its task id.
func (g *Generator) lookup(slot int) (int, error) {
	id, ok := g.ids[slot]
	if !ok {
		return 0, errors.Errorf("coordinate %v is not a task", g.codec.Decode(slot))
	}
	return id, nil
}

// TaskID returns the id assigned to the task at c.
func (g *Generator) TaskID(c Coord) (int, error) {
	return g.lookup(g.codec.Encode(c))
}
