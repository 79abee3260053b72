package octaindex

import (
	"fmt"

	"github.com/hupe1980/octaindex/internal/curve"
)

// Route64 coordinate range (signed 20-bit axes).
const (
	RouteCoordMax = curve.RouteCoordMax
	RouteCoordMin = curve.RouteCoordMin
)

// Route64 is a 64-bit local routing key holding raw signed BCC
// coordinates, built for fast neighbor walks without Morton transforms.
//
// Bit layout:
//   - Bits 63..62: Hdr = 01 (identifies Route64)
//   - Bits 61..60: ScaleTier (2 bits)
//   - Bits 59..40: X (20 bits signed)
//   - Bits 39..20: Y (20 bits signed)
//   - Bits 19..0:  Z (20 bits signed)
type Route64 struct {
	value uint64
}

// NewRoute64 encodes a lattice coordinate into a Route64 key.
func NewRoute64(tier uint8, x, y, z int32) (Route64, error) {
	if tier > 3 {
		return Route64{}, &TierError{Tier: tier}
	}
	if _, err := parityOf(x, y, z); err != nil {
		return Route64{}, err
	}
	if err := checkRange("x", x, RouteCoordMin, RouteCoordMax); err != nil {
		return Route64{}, err
	}
	if err := checkRange("y", y, RouteCoordMin, RouteCoordMax); err != nil {
		return Route64{}, err
	}
	if err := checkRange("z", z, RouteCoordMin, RouteCoordMax); err != nil {
		return Route64{}, err
	}
	return Route64{value: curve.PackRoute(tier, x, y, z)}, nil
}

// Route64FromCoordinate encodes a validated coordinate at the given tier.
func Route64FromCoordinate(tier uint8, c Coordinate) (Route64, error) {
	return NewRoute64(tier, c.X(), c.Y(), c.Z())
}

// Route64FromBits reinterprets a raw integer as a Route64. The header tag
// is checked and the carried coordinate is revalidated against the
// lattice parity rule, so hostile or corrupted raw values cannot enter
// the neighbor engine.
func Route64FromBits(raw uint64) (Route64, error) {
	if hdr := uint8(raw >> 62); hdr != curve.HdrRoute {
		return Route64{}, &DecodeError{Kind: "Route64", Want: curve.HdrRoute, Got: hdr}
	}
	_, x, y, z := curve.RouteFields(raw)
	if _, err := parityOf(x, y, z); err != nil {
		return Route64{}, err
	}
	return Route64{value: raw}, nil
}

// Bits returns the raw 64-bit value.
func (r Route64) Bits() uint64 { return r.value }

// Less reports whether r sorts before other by raw value.
func (r Route64) Less(other Route64) bool { return r.value < other.value }

// Tier returns the scale tier field.
func (r Route64) Tier() uint8 {
	return uint8(r.value>>curve.KeyShiftTier) & 0x3
}

// X returns the sign-extended x component.
func (r Route64) X() int32 {
	return curve.SignExtend20(uint32(r.value>>curve.RouteShiftX) & curve.RouteCoordMask)
}

// Y returns the sign-extended y component.
func (r Route64) Y() int32 {
	return curve.SignExtend20(uint32(r.value>>curve.RouteShiftY) & curve.RouteCoordMask)
}

// Z returns the sign-extended z component.
func (r Route64) Z() int32 {
	return curve.SignExtend20(uint32(r.value>>curve.RouteShiftZ) & curve.RouteCoordMask)
}

// Coordinate decodes the key into a validated lattice coordinate.
func (r Route64) Coordinate() (Coordinate, error) {
	return NewCoordinate(r.X(), r.Y(), r.Z())
}

// Neighbors derives the 14 lattice-adjacent keys at the same tier, in
// offset-table order. A candidate outside the 20-bit range has no key in
// that direction: its slot holds the zero Route64 (raw value 0, never a
// valid key), matching the sentinel the batch kernels and the GPU shader
// emit. Parity is revalidated on every candidate and fails the call.
func (r Route64) Neighbors() ([NeighborCount]Route64, error) {
	var out [NeighborCount]Route64
	tier := r.Tier()
	x, y, z := r.X(), r.Y(), r.Z()

	for i, off := range neighborOffsets {
		nx, ny, nz := x+off.DX, y+off.DY, z+off.DZ
		if _, err := parityOf(nx, ny, nz); err != nil {
			return out, err
		}
		if nx < RouteCoordMin || nx > RouteCoordMax ||
			ny < RouteCoordMin || ny > RouteCoordMax ||
			nz < RouteCoordMin || nz > RouteCoordMax {
			continue
		}
		out[i] = Route64{value: curve.PackRoute(tier, nx, ny, nz)}
	}
	return out, nil
}

// Distance returns the Euclidean distance between two route cells.
func (r Route64) Distance(other Route64) float64 {
	a := Coordinate{x: r.X(), y: r.Y(), z: r.Z()}
	b := Coordinate{x: other.X(), y: other.Y(), z: other.Z()}
	return a.Distance(b)
}

// ManhattanDistance returns the L1 distance between two route cells.
func (r Route64) ManhattanDistance(other Route64) int32 {
	return abs32(r.X()-other.X()) + abs32(r.Y()-other.Y()) + abs32(r.Z()-other.Z())
}

func (r Route64) String() string {
	return fmt.Sprintf("R64(t=%d, %d,%d,%d)", r.Tier(), r.X(), r.Y(), r.Z())
}
