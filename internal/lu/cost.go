package lu

import (
	"github.com/Vincent-lau/dagbench/internal/configs"
	"github.com/Vincent-lau/dagbench/internal/workload"
)

const (
	diagonalSlot  = 0
	perimeterSlot = 1
	// interior updates may run on any slot from here on
	firstInteriorSlot = 2
)

// CostModel prices a block operation by its role. Diagonal and perimeter work
// is pinned to one dedicated slot each; interior updates spread over the rest.
type CostModel struct {
	platform *configs.Platform
}

func NewCostModel(p *configs.Platform) CostModel {
	return CostModel{platform: p}
}

func (m CostModel) Cost(c Coord) workload.CostVector {
	v := workload.NewCostVector(m.platform.NProcs())
	switch c.Role() {
	case Diagonal:
		v[diagonalSlot] = workload.Some(m.platform.DiagonalCost)
	case Perimeter:
		v[perimeterSlot] = workload.Some(m.platform.PerimeterCost)
	case Interior:
		for s := firstInteriorSlot; s < len(v); s++ {
			v[s] = workload.Some(m.platform.InteriorCost)
		}
	}
	return v
}
