package lu

import (
	"fmt"

	"github.com/pkg/errors"
)

// Coord addresses one block operation: step It of the factorization applied to
// block row I and block column J.
type Coord struct {
	It, I, J int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.It, c.I, c.J)
}

// Role is the part a block operation plays in its factorization step.
type Role int

const (
	// panel factorization of the diagonal block
	Diagonal Role = iota
	// row or column update next to the diagonal block
	Perimeter
	// trailing submatrix update
	Interior
)

func (r Role) String() string {
	switch r {
	case Diagonal:
		return "diagonal"
	case Perimeter:
		return "perimeter"
	case Interior:
		return "interior"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

func (c Coord) Role() Role {
	row, col := c.It == c.I, c.It == c.J
	switch {
	case row && col:
		return Diagonal
	case row || col:
		return Perimeter
	default:
		return Interior
	}
}

// Codec maps the cube [0,blocks)³ of coordinates onto the slots
// [0, blocks³) and back.
type Codec struct {
	blocks int
}

// NewCodec returns a codec for a blocks x blocks x blocks cube; blocks must be at least 1.
func NewCodec(blocks int) (Codec, error) {
	if blocks < 1 {
		return Codec{}, errors.Errorf("blocks must be at least 1, got %d", blocks)
	}
	return Codec{blocks: blocks}, nil
}

func (c Codec) Blocks() int {
	return c.blocks
}

// Slots is the size of the coordinate cube.
func (c Codec) Slots() int {
	return c.blocks * c.blocks * c.blocks
}

// Encode returns the slot of x. It panics if x lies outside the cube.
func (c Codec) Encode(x Coord) int {
	b := c.blocks
	if x.It < 0 || x.It >= b || x.I < 0 || x.I >= b || x.J < 0 || x.J >= b {
		panic(fmt.Sprintf("coordinate %v outside [0,%d)³", x, b))
	}
	return x.J + b*(x.I+b*x.It)
}

// Decode returns the coordinate at slot, the inverse of Encode.
func (c Codec) Decode(slot int) Coord {
	b := c.blocks
	if slot < 0 || slot >= c.Slots() {
		panic(fmt.Sprintf("slot %d outside [0,%d)", slot, c.Slots()))
	}
	return Coord{
		It: slot / (b * b),
		I:  slot / b % b,
		J:  slot % b,
	}
}
