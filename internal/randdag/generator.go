// Package randdag generates uniformly random task graphs with uniformly
// random costs. There is no algorithmic structure behind them; they share
// the workload document format with the LU generator.
package randdag

import (
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Vincent-lau/dagbench/internal/configs"
	"github.com/Vincent-lau/dagbench/internal/workload"
)

const (
	Name = "random"

	DefaultSeed = 12345
	// percent chance of an edge between two tasks
	DefaultConnectivity = 10
)

type Params struct {
	NTasks int
	// percent chance of task f depending on each later task t; values
	// outside [0, 100] saturate
	Connectivity int
	// maximum concurrent tasks; accepted for compatibility, not used
	Concurrency int
	Seed        uint64
}

func DefaultParams(ntasks int) Params {
	return Params{
		NTasks:       ntasks,
		Connectivity: DefaultConnectivity,
		Seed:         DefaultSeed,
	}
}

func (p Params) Validate() error {
	if p.NTasks < 1 {
		return errors.Errorf("ntasks must be at least 1, got %d", p.NTasks)
	}
	return nil
}

// EdgeProbability is the chance of each forward edge, clamped to [0, 1].
func (p Params) EdgeProbability() float64 {
	switch {
	case p.Connectivity <= 0:
		return 0
	case p.Connectivity >= 100:
		return 1
	default:
		return float64(p.Connectivity) / 100
	}
}

// Generate draws the dependency matrix first and the cost table second, both
// from one source seeded with p.Seed.
func Generate(p Params, platform *configs.Platform) (*workload.Document, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := platform.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid platform")
	}
	if p.Concurrency != 0 {
		log.WithFields(log.Fields{
			"concurrency": p.Concurrency,
		}).Debug("concurrency limit is not applied to random graphs")
	}

	src := rand.NewSource(p.Seed)
	edge := distuv.Bernoulli{P: p.EdgeProbability(), Src: src}
	cost := distuv.Uniform{Min: 0, Max: float64(platform.CostMax), Src: src}

	a := workload.NewAssembler(p.NTasks, platform.Configs, platform.ProcessorConfigs)

	edges := 0
	for f := 0; f < p.NTasks; f++ {
		for t := f + 1; t < p.NTasks; t++ {
			if edge.Rand() == 1 {
				if err := a.Depend(f, t); err != nil {
					return nil, err
				}
				edges++
			}
		}
	}

	for task := 0; task < p.NTasks; task++ {
		if err := a.Label(task, strconv.Itoa(task)); err != nil {
			return nil, err
		}
		v := workload.NewCostVector(platform.NProcs())
		for s := range v {
			v[s] = workload.Some(drawCost(cost, platform.CostMax))
		}
		if err := a.SetCost(task, v); err != nil {
			return nil, err
		}
	}

	log.WithFields(log.Fields{
		"ntasks":       p.NTasks,
		"connectivity": p.Connectivity,
		"seed":         p.Seed,
		"edges":        edges,
	}).Info("generated random workload")

	return a.Document()
}

// drawCost truncates a uniform draw to an integer in [0, max).
func drawCost(d distuv.Uniform, max int) int {
	c := int(d.Rand())
	if c >= max {
		c = max - 1
	}
	return c
}
