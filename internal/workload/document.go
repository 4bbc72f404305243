// Package workload holds the scheduler benchmark document shared by every
// generator: a dense task dependency matrix, a per-task per-processor cost
// table, task labels and processor configuration metadata.
package workload

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/Workiva/go-datastructures/bitarray"
	"github.com/pkg/errors"
)

// Cost is the execution time of a task on one processor slot. The zero value
// means the task cannot run on that slot.
type Cost struct {
	value int
	ok    bool
}

// NotApplicable marks a processor slot the task cannot run on.
var NotApplicable = Cost{}

// Some returns an applicable cost of v.
func Some(v int) Cost {
	return Cost{value: v, ok: true}
}

// Value returns the cost and whether the slot is applicable at all.
func (c Cost) Value() (int, bool) {
	return c.value, c.ok
}

func (c Cost) Applicable() bool {
	return c.ok
}

func (c Cost) String() string {
	if !c.ok {
		return "n/a"
	}
	return strconv.Itoa(c.value)
}

// MarshalJSON emits the cost as a number, or false when not applicable.
func (c Cost) MarshalJSON() ([]byte, error) {
	if !c.ok {
		return []byte("false"), nil
	}
	return []byte(strconv.Itoa(c.value)), nil
}

func (c *Cost) UnmarshalJSON(data []byte) error {
	switch s := string(bytes.TrimSpace(data)); s {
	case "false", "null":
		*c = NotApplicable
		return nil
	default:
		v, err := strconv.Atoi(s)
		if err != nil {
			return errors.Errorf("cost must be an integer or false, got %s", s)
		}
		*c = Some(v)
		return nil
	}
}

// CostVector holds one Cost per processor slot.
type CostVector []Cost

// NewCostVector returns n not-applicable entries.
func NewCostVector(n int) CostVector {
	return make(CostVector, n)
}

// Applicable returns the slots the task can run on.
func (v CostVector) Applicable() []int {
	var slots []int
	for i, c := range v {
		if c.ok {
			slots = append(slots, i)
		}
	}
	return slots
}

// DepMatrix is the dense dependency relation: Has(a, b) means task a depends
// on task b. Each row is a bit array so the n x n matrix costs n²/8 bytes.
type DepMatrix struct {
	n    int
	rows []bitarray.BitArray
}

func NewDepMatrix(n int) *DepMatrix {
	m := &DepMatrix{
		n:    n,
		rows: make([]bitarray.BitArray, n),
	}
	for i := range m.rows {
		m.rows[i] = bitarray.NewBitArray(uint64(n))
	}
	return m
}

// Len is the number of tasks, i.e. both dimensions of the matrix.
func (m *DepMatrix) Len() int {
	return m.n
}

func (m *DepMatrix) set(from, to int) {
	if err := m.rows[from].SetBit(uint64(to)); err != nil {
		panic(err)
	}
}

func (m *DepMatrix) Has(from, to int) bool {
	ok, err := m.rows[from].GetBit(uint64(to))
	if err != nil {
		panic(err)
	}
	return ok
}

// Deps returns the tasks that task from depends on, in ascending order.
func (m *DepMatrix) Deps(from int) []int {
	nums := m.rows[from].ToNums()
	deps := make([]int, len(nums))
	for i, k := range nums {
		deps[i] = int(k)
	}
	return deps
}

// Edges counts all dependencies in the matrix.
func (m *DepMatrix) Edges() int {
	e := 0
	for _, r := range m.rows {
		e += len(r.ToNums())
	}
	return e
}

// MarshalJSON writes the matrix as n rows of n booleans.
func (m *DepMatrix) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.Grow(m.n * m.n * 6)
	b.WriteByte('[')
	for i, r := range m.rows {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('[')
		set := r.ToNums()
		for j := 0; j < m.n; j++ {
			if j > 0 {
				b.WriteByte(',')
			}
			if len(set) > 0 && set[0] == uint64(j) {
				b.WriteString("true")
				set = set[1:]
			} else {
				b.WriteString("false")
			}
		}
		b.WriteByte(']')
	}
	b.WriteByte(']')
	return b.Bytes(), nil
}

func (m *DepMatrix) UnmarshalJSON(data []byte) error {
	var rows [][]bool
	if err := json.Unmarshal(data, &rows); err != nil {
		return errors.Wrap(err, "decoding dependency matrix")
	}
	*m = *NewDepMatrix(len(rows))
	for i, r := range rows {
		if len(r) != m.n {
			return errors.Errorf("dependency row %d has %d entries, want %d", i, len(r), m.n)
		}
		for j, dep := range r {
			if dep {
				m.set(i, j)
			}
		}
	}
	return nil
}

type ConfigEntry struct {
	E string `json:"e"`
}

// ConfigSet is the set of distinct processor configurations.
type ConfigSet struct {
	Set []ConfigEntry `json:"set"`
}

func NewConfigSet(names []string) ConfigSet {
	s := ConfigSet{Set: make([]ConfigEntry, len(names))}
	for i, n := range names {
		s.Set[i].E = n
	}
	return s
}

// Document is the complete workload handed to a scheduler or simulator.
type Document struct {
	C          ConfigSet    `json:"C"`
	PConfig    []string     `json:"P_config"`
	Deps       *DepMatrix   `json:"deps"`
	Cost       []CostVector `json:"cost"`
	TaskLabels []string     `json:"tasklabels"`
	NTasks     int          `json:"ntasks"`
	NProcs     int          `json:"nprocs"`
}

// Encode writes doc as a single JSON line. The document is marshalled
// completely before anything reaches w.
func Encode(w io.Writer, doc *Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "marshalling workload")
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "writing workload")
	}
	return nil
}

// Decode reads a document written by Encode and checks its shape.
func Decode(r io.Reader) (*Document, error) {
	doc := &Document{}
	if err := json.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrap(err, "decoding workload")
	}
	if err := doc.checkShape(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *Document) checkShape() error {
	if d.Deps == nil || d.Deps.Len() != d.NTasks {
		return errors.Errorf("dependency matrix does not have %d rows", d.NTasks)
	}
	if len(d.TaskLabels) != d.NTasks {
		return errors.Errorf("got %d task labels, want %d", len(d.TaskLabels), d.NTasks)
	}
	if len(d.PConfig) != d.NProcs {
		return errors.Errorf("got %d processor configs, want %d", len(d.PConfig), d.NProcs)
	}
	if len(d.Cost) != d.NTasks {
		return errors.Errorf("got %d cost rows, want %d", len(d.Cost), d.NTasks)
	}
	for i, row := range d.Cost {
		if len(row) != d.NProcs {
			return errors.Errorf("cost row %d has %d entries, want %d", i, len(row), d.NProcs)
		}
	}
	return nil
}
