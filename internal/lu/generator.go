// Package lu generates the task graph of a blocked LU factorization. Every
// factorization step factors one diagonal panel, updates the row and column
// blocks next to it, and then updates the trailing submatrix; the next
// step's panel waits for the whole updated submatrix.
package lu

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/Vincent-lau/dagbench/internal/configs"
	"github.com/Vincent-lau/dagbench/internal/workload"
)

const Name = "lu"

// Generator carries all state of one generation pass.
type Generator struct {
	codec    Codec
	platform *configs.Platform
	cost     CostModel
	done     bool

	/* task registry */
	ids    map[int]int // slot -> task id
	slots  []int       // task id -> slot
	labels []string

	// slot -> slots it depends on
	deps map[int]map[int]struct{}
}

func New(blocks int, platform *configs.Platform) (*Generator, error) {
	codec, err := NewCodec(blocks)
	if err != nil {
		return nil, err
	}
	if err := platform.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid platform")
	}
	return &Generator{
		codec:    codec,
		platform: platform,
		cost:     NewCostModel(platform),
		ids:      make(map[int]int),
		deps:     make(map[int]map[int]struct{}),
	}, nil
}

// Run registers every task and records its dependencies. It is idempotent.
func (g *Generator) Run() {
	if g.done {
		return
	}
	b := g.codec.Blocks()
	for it := 0; it < b; it++ {
		g.registerStep(it)
	}
	for it := 0; it < b; it++ {
		g.dependStep(it)
	}
	g.done = true

	log.WithFields(log.Fields{
		"blocks": b,
		"ntasks": len(g.slots),
	}).Debug("generated LU task graph")
}

func (g *Generator) NTasks() int {
	g.Run()
	return len(g.slots)
}

// Tasks returns the coordinate of every task, indexed by task id.
func (g *Generator) Tasks() []Coord {
	g.Run()
	tasks := make([]Coord, len(g.slots))
	for id, slot := range g.slots {
		tasks[id] = g.codec.Decode(slot)
	}
	return tasks
}

// Dependencies returns the coordinates c depends on, ordered by slot.
func (g *Generator) Dependencies(c Coord) []Coord {
	g.Run()
	slots := maps.Keys(g.deps[g.codec.Encode(c)])
	slices.Sort(slots)
	deps := make([]Coord, len(slots))
	for i, s := range slots {
		deps[i] = g.codec.Decode(s)
	}
	return deps
}

// RoleCounts tallies the tasks per role.
func (g *Generator) RoleCounts() map[Role]int {
	counts := make(map[Role]int)
	for _, c := range g.Tasks() {
		counts[c.Role()]++
	}
	return counts
}

// Generate runs the generator and assembles the workload document.
func (g *Generator) Generate() (*workload.Document, error) {
	g.Run()

	a := workload.NewAssembler(len(g.slots), g.platform.Configs, g.platform.ProcessorConfigs)
	for id, slot := range g.slots {
		if err := a.Label(id, g.labels[id]); err != nil {
			return nil, err
		}
		if err := a.SetCost(id, g.cost.Cost(g.codec.Decode(slot))); err != nil {
			return nil, err
		}
	}

	for from, set := range g.deps {
		f, err := g.lookup(from)
		if err != nil {
			return nil, errors.Wrap(err, "resolving dependent")
		}
		for to := range set {
			t, err := g.lookup(to)
			if err != nil {
				return nil, errors.Wrapf(err, "resolving dependency of %v", g.codec.Decode(from))
			}
			if err := a.Depend(f, t); err != nil {
				return nil, err
			}
		}
	}

	counts := g.RoleCounts()
	log.WithFields(log.Fields{
		"blocks":    g.codec.Blocks(),
		"ntasks":    len(g.slots),
		"diagonal":  counts[Diagonal],
		"perimeter": counts[Perimeter],
		"interior":  counts[Interior],
	}).Info("generated LU workload")

	return a.Document()
}
