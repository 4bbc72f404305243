package workload

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Assembler collects labels, dependencies and costs for a fixed number of
// tasks and packages them with the processor metadata into a Document.
type Assembler struct {
	ntasks  int
	configs []string
	pConfig []string

	labels   []string
	labelled []bool
	deps     *DepMatrix
	cost     []CostVector
}

func NewAssembler(ntasks int, configs, pConfig []string) *Assembler {
	return &Assembler{
		ntasks:   ntasks,
		configs:  configs,
		pConfig:  pConfig,
		labels:   make([]string, ntasks),
		labelled: make([]bool, ntasks),
		deps:     NewDepMatrix(ntasks),
		cost:     make([]CostVector, ntasks),
	}
}

func (a *Assembler) NTasks() int {
	return a.ntasks
}

func (a *Assembler) NProcs() int {
	return len(a.pConfig)
}

func (a *Assembler) checkTask(task int) error {
	if task < 0 || task >= a.ntasks {
		return errors.Errorf("task %d out of range [0, %d)", task, a.ntasks)
	}
	return nil
}

func (a *Assembler) Label(task int, label string) error {
	if err := a.checkTask(task); err != nil {
		return err
	}
	a.labels[task] = label
	a.labelled[task] = true
	return nil
}

// Depend records that task from must wait for task to.
func (a *Assembler) Depend(from, to int) error {
	if err := a.checkTask(from); err != nil {
		return errors.Wrap(err, "dependent")
	}
	if err := a.checkTask(to); err != nil {
		return errors.Wrap(err, "dependency")
	}
	if from == to {
		return errors.Errorf("task %d cannot depend on itself", from)
	}
	a.deps.set(from, to)
	return nil
}

func (a *Assembler) SetCost(task int, v CostVector) error {
	if err := a.checkTask(task); err != nil {
		return err
	}
	if len(v) != a.NProcs() {
		return errors.Errorf("cost vector for task %d has %d entries, want %d", task, len(v), a.NProcs())
	}
	a.cost[task] = v
	return nil
}

// Document returns the assembled workload. Every task must have been labelled
// and given a cost vector.
func (a *Assembler) Document() (*Document, error) {
	for i := 0; i < a.ntasks; i++ {
		if !a.labelled[i] {
			return nil, errors.Errorf("task %d has no label", i)
		}
		if a.cost[i] == nil {
			return nil, errors.Errorf("task %d has no cost vector", i)
		}
	}

	doc := &Document{
		C:          NewConfigSet(a.configs),
		PConfig:    a.pConfig,
		Deps:       a.deps,
		Cost:       a.cost,
		TaskLabels: a.labels,
		NTasks:     a.ntasks,
		NProcs:     a.NProcs(),
	}

	log.WithFields(log.Fields{
		"ntasks": doc.NTasks,
		"nprocs": doc.NProcs,
	}).Debug("assembled workload")

	return doc, nil
}
