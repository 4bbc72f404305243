package workload

import (
	"github.com/Workiva/go-datastructures/queue"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises the shape of a workload.
type Stats struct {
	Tasks int
	Edges int
	// length of the longest dependency chain, counted in tasks
	Levels int
	// most tasks sharing one level
	MaxWidth int
	// mean over all applicable cost entries
	MeanCost float64
}

// Analyze checks that the dependency relation is acyclic and computes Stats.
func Analyze(doc *Document) (Stats, error) {
	s := Stats{Tasks: doc.NTasks}
	deps := doc.Deps

	// edges run from producer to consumer
	g := simple.NewDirectedGraph()
	consumers := make([][]int, doc.NTasks)
	indeg := make([]int, doc.NTasks)
	for a := 0; a < doc.NTasks; a++ {
		g.AddNode(simple.Node(a))
	}
	for a := 0; a < doc.NTasks; a++ {
		for _, b := range deps.Deps(a) {
			if a == b {
				return s, errors.Errorf("task %d depends on itself", a)
			}
			g.SetEdge(g.NewEdge(simple.Node(b), simple.Node(a)))
			consumers[b] = append(consumers[b], a)
			indeg[a]++
			s.Edges++
		}
	}

	if _, err := topo.Sort(g); err != nil {
		var cycles topo.Unorderable
		if errors.As(err, &cycles) {
			return s, errors.Errorf("dependency graph has %d cyclic components", len(cycles))
		}
		return s, errors.Wrap(err, "ordering tasks")
	}

	levels, width, err := levelize(consumers, indeg)
	if err != nil {
		return s, err
	}
	s.Levels = levels
	s.MaxWidth = width

	var costs []float64
	for _, row := range doc.Cost {
		for _, c := range row {
			if v, ok := c.Value(); ok {
				costs = append(costs, float64(v))
			}
		}
	}
	if len(costs) > 0 {
		s.MeanCost = stat.Mean(costs, nil)
	}

	log.WithFields(log.Fields{
		"tasks":     s.Tasks,
		"edges":     s.Edges,
		"levels":    s.Levels,
		"max width": s.MaxWidth,
		"mean cost": s.MeanCost,
	}).Debug("analyzed workload")

	return s, nil
}

// levelize peels the graph one level of ready tasks at a time.
func levelize(consumers [][]int, indeg []int) (int, int, error) {
	q := queue.New(int64(len(indeg)))
	defer q.Dispose()

	for t, d := range indeg {
		if d == 0 {
			if err := q.Put(t); err != nil {
				return 0, 0, errors.Wrap(err, "queueing ready task")
			}
		}
	}

	levels, width, seen := 0, 0, 0
	for !q.Empty() {
		ready, err := q.Get(q.Len())
		if err != nil {
			return 0, 0, errors.Wrap(err, "dequeueing ready tasks")
		}
		levels++
		if len(ready) > width {
			width = len(ready)
		}
		seen += len(ready)

		for _, item := range ready {
			for _, c := range consumers[item.(int)] {
				indeg[c]--
				if indeg[c] == 0 {
					if err := q.Put(c); err != nil {
						return 0, 0, errors.Wrap(err, "queueing ready task")
					}
				}
			}
		}
	}

	if seen != len(indeg) {
		return 0, 0, errors.Errorf("only %d of %d tasks can become ready", seen, len(indeg))
	}
	return levels, width, nil
}
