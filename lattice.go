package octaindex

import (
	"fmt"
	"math"

	"github.com/hupe1980/octaindex/internal/curve"
)

// NeighborCount is the number of lattice-adjacent cells of any BCC cell:
// 8 diagonal neighbors at distance sqrt(3) plus 6 axis-aligned neighbors
// at distance 2.
const NeighborCount = curve.NeighborCount

// Offset is one entry of the BCC 14-neighbor offset table.
type Offset struct {
	DX, DY, DZ int32
}

// neighborOffsets mirrors the canonical offset table in internal/curve,
// which is the single source of truth shared with the batch kernels and
// the generated GPU shader. The declaration order (diagonals first,
// axis-aligned second) is the output order of every neighbor derivation,
// on every execution backend. Never mutated after process start.
var neighborOffsets = func() [NeighborCount]Offset {
	var out [NeighborCount]Offset
	for i, off := range curve.NeighborOffsets {
		out[i] = Offset{DX: off[0], DY: off[1], DZ: off[2]}
	}
	return out
}()

// Offsets returns a copy of the BCC 14-neighbor offset table in its
// declared order.
func Offsets() [NeighborCount]Offset {
	return neighborOffsets
}

// Parity classifies a BCC lattice point: cube corners have all-even
// coordinates, cube centers all-odd.
type Parity uint8

const (
	// ParityEven marks lattice points with all coordinates even.
	ParityEven Parity = iota
	// ParityOdd marks lattice points with all coordinates odd.
	ParityOdd
)

func (p Parity) String() string {
	switch p {
	case ParityEven:
		return "even"
	case ParityOdd:
		return "odd"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(p))
	}
}

// Opposite returns the other parity class.
func (p Parity) Opposite() Parity {
	if p == ParityEven {
		return ParityOdd
	}
	return ParityEven
}

// parityOf validates that x, y, z share a single parity and reports it.
func parityOf(x, y, z int32) (Parity, error) {
	xe, ye, ze := x&1 == 0, y&1 == 0, z&1 == 0
	if xe != ye || ye != ze {
		return 0, &ParityError{X: x, Y: y, Z: z}
	}
	if xe {
		return ParityEven, nil
	}
	return ParityOdd, nil
}

// Coordinate is a validated BCC lattice point. The zero value is the
// origin, which is a valid (even) lattice point.
type Coordinate struct {
	x, y, z int32
}

// NewCoordinate validates x, y, z as a BCC lattice point.
func NewCoordinate(x, y, z int32) (Coordinate, error) {
	if _, err := parityOf(x, y, z); err != nil {
		return Coordinate{}, err
	}
	return Coordinate{x: x, y: y, z: z}, nil
}

// X returns the x component.
func (c Coordinate) X() int32 { return c.x }

// Y returns the y component.
func (c Coordinate) Y() int32 { return c.y }

// Z returns the z component.
func (c Coordinate) Z() int32 { return c.z }

// Parity returns the parity class of the point.
func (c Coordinate) Parity() Parity {
	if c.x&1 == 0 {
		return ParityEven
	}
	return ParityOdd
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.x, c.y, c.z)
}

// Distance returns the Euclidean distance to another lattice point.
func (c Coordinate) Distance(o Coordinate) float64 {
	dx := float64(c.x - o.x)
	dy := float64(c.y - o.y)
	dz := float64(c.z - o.z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// ManhattanDistance returns the L1 distance to another lattice point.
func (c Coordinate) ManhattanDistance(o Coordinate) int32 {
	return abs32(c.x-o.x) + abs32(c.y-o.y) + abs32(c.z-o.z)
}

// Neighbors returns the 14 lattice-adjacent points in offset-table order.
// A point within two units of the int32 extremes has candidates that the
// coordinate model cannot represent; those fail the derivation with a
// RangeError rather than wrapping around. Galactic128 admits the full
// int32 range, so this boundary is reachable through decoded identifiers.
func (c Coordinate) Neighbors() ([NeighborCount]Coordinate, error) {
	var out [NeighborCount]Coordinate
	for i, off := range neighborOffsets {
		nx := int64(c.x) + int64(off.DX)
		ny := int64(c.y) + int64(off.DY)
		nz := int64(c.z) + int64(off.DZ)
		if err := checkRange64("x", nx, math.MinInt32, math.MaxInt32); err != nil {
			return out, err
		}
		if err := checkRange64("y", ny, math.MinInt32, math.MaxInt32); err != nil {
			return out, err
		}
		if err := checkRange64("z", nz, math.MinInt32, math.MaxInt32); err != nil {
			return out, err
		}
		out[i] = Coordinate{x: int32(nx), y: int32(ny), z: int32(nz)}
	}
	return out, nil
}

// Snap rounds a physical position to the nearest valid BCC lattice point.
// If plain rounding lands on a mixed-parity triple, the nearest of the six
// unit-adjusted candidates is chosen.
func Snap(fx, fy, fz float64) (Coordinate, error) {
	xi := int32(math.Round(fx))
	yi := int32(math.Round(fy))
	zi := int32(math.Round(fz))

	if c, err := NewCoordinate(xi, yi, zi); err == nil {
		return c, nil
	}

	candidates := [6][3]int32{
		{xi + 1, yi, zi},
		{xi - 1, yi, zi},
		{xi, yi + 1, zi},
		{xi, yi - 1, zi},
		{xi, yi, zi + 1},
		{xi, yi, zi - 1},
	}

	var best Coordinate
	bestDist := math.MaxFloat64
	found := false
	for _, cand := range candidates {
		c, err := NewCoordinate(cand[0], cand[1], cand[2])
		if err != nil {
			continue
		}
		dx, dy, dz := float64(cand[0])-fx, float64(cand[1])-fy, float64(cand[2])-fz
		if d := dx*dx + dy*dy + dz*dz; d < bestDist {
			bestDist = d
			best = c
			found = true
		}
	}
	if !found {
		// Unreachable: at least one unit adjustment always fixes parity.
		return Coordinate{}, &ParityError{X: xi, Y: yi, Z: zi}
	}
	return best, nil
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// checkRange validates that v fits [min, max] for the named axis.
func checkRange(axis string, v, min, max int32) error {
	if v < min || v > max {
		return &RangeError{Axis: axis, Value: int64(v), Min: int64(min), Max: int64(max)}
	}
	return nil
}

// checkRange64 is checkRange over candidate sums that may exceed int32,
// so boundary arithmetic never wraps silently.
func checkRange64(axis string, v, min, max int64) error {
	if v < min || v > max {
		return &RangeError{Axis: axis, Value: v, Min: min, Max: max}
	}
	return nil
}
