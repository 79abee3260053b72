package octaindex

import (
	"fmt"

	"github.com/hupe1980/octaindex/internal/curve"
)

// Hilbert64 is a 64-bit spatial key structurally identical to Index64 but
// with the axes mapped through the Hilbert curve instead of Morton
// interleaving. Adjacent keys stay spatially closer than Morton keys at
// the cost of a more expensive transform.
//
// Bit layout:
//   - Bits 63..62: Hdr = 11 (identifies Hilbert64)
//   - Bits 61..60: ScaleTier (2 bits)
//   - Bits 59..52: FrameID (8 bits)
//   - Bits 51..48: LOD (4 bits)
//   - Bits 47..0:  Hilbert3D (48 bits, signed 16 bits per axis)
type Hilbert64 struct {
	value uint64
}

// NewHilbert64 encodes a lattice coordinate into a Hilbert64 key.
func NewHilbert64(frame FrameID, tier, lod uint8, x, y, z int32) (Hilbert64, error) {
	if err := validateKey64(tier, lod, x, y, z); err != nil {
		return Hilbert64{}, err
	}
	h := curve.HilbertEncode(uint16(x), uint16(y), uint16(z))
	return Hilbert64{value: packKey64(curve.HdrHilbert, frame, tier, lod, h)}, nil
}

// Hilbert64FromCoordinate encodes a validated coordinate at the given LOD.
func Hilbert64FromCoordinate(frame FrameID, tier, lod uint8, c Coordinate) (Hilbert64, error) {
	return NewHilbert64(frame, tier, lod, c.X(), c.Y(), c.Z())
}

// Hilbert64FromBits reinterprets a raw integer as a Hilbert64, rejecting
// values whose header tag belongs to another identifier type.
func Hilbert64FromBits(raw uint64) (Hilbert64, error) {
	if hdr := uint8(raw >> 62); hdr != curve.HdrHilbert {
		return Hilbert64{}, &DecodeError{Kind: "Hilbert64", Want: curve.HdrHilbert, Got: hdr}
	}
	return Hilbert64{value: raw}, nil
}

// Bits returns the raw 64-bit value.
func (id Hilbert64) Bits() uint64 { return id.value }

// Less reports whether id sorts before other by raw value. Hilbert order
// is not monotonic in any single axis but preserves locality.
func (id Hilbert64) Less(other Hilbert64) bool { return id.value < other.value }

// Frame returns the frame ID field.
func (id Hilbert64) Frame() FrameID {
	return FrameID(id.value >> curve.KeyShiftFrame & 0xFF)
}

// Tier returns the scale tier field.
func (id Hilbert64) Tier() uint8 {
	return uint8(id.value>>curve.KeyShiftTier) & 0x3
}

// LOD returns the level-of-detail field.
func (id Hilbert64) LOD() uint8 {
	return uint8(id.value>>curve.KeyShiftLOD) & 0xF
}

// Hilbert returns the 48-bit Hilbert payload.
func (id Hilbert64) Hilbert() uint64 {
	return id.value & curve.KeyPayloadMask
}

func (id Hilbert64) axes() (x, y, z int32) {
	ux, uy, uz := curve.HilbertDecode(id.Hilbert())
	return int32(int16(ux)), int32(int16(uy)), int32(int16(uz))
}

// X returns the sign-extended x component.
func (id Hilbert64) X() int32 { x, _, _ := id.axes(); return x }

// Y returns the sign-extended y component.
func (id Hilbert64) Y() int32 { _, y, _ := id.axes(); return y }

// Z returns the sign-extended z component.
func (id Hilbert64) Z() int32 { _, _, z := id.axes(); return z }

// Coordinate decodes the key into a validated lattice coordinate.
func (id Hilbert64) Coordinate() (Coordinate, error) {
	x, y, z := id.axes()
	return NewCoordinate(x, y, z)
}

// Neighbors derives the 14 lattice-adjacent keys at the same frame, tier
// and LOD, in offset-table order. Semantics match Index64.Neighbors: an
// out-of-range direction leaves the zero Hilbert64 in its slot.
func (id Hilbert64) Neighbors() ([NeighborCount]Hilbert64, error) {
	var out [NeighborCount]Hilbert64
	frame, tier, lod := id.Frame(), id.Tier(), id.LOD()
	x, y, z := id.axes()
	min, max := lodBounds(lod)

	for i, off := range neighborOffsets {
		nx, ny, nz := x+off.DX, y+off.DY, z+off.DZ
		if _, err := parityOf(nx, ny, nz); err != nil {
			return out, err
		}
		if nx < min || nx > max || ny < min || ny > max || nz < min || nz > max {
			continue
		}
		h := curve.HilbertEncode(uint16(nx), uint16(ny), uint16(nz))
		out[i] = Hilbert64{value: packKey64(curve.HdrHilbert, frame, tier, lod, h)}
	}
	return out, nil
}

// Parent returns the enclosing key one LOD coarser.
func (id Hilbert64) Parent() (Hilbert64, error) {
	lod := id.LOD()
	if lod == 0 {
		return Hilbert64{}, ErrNoParent
	}
	x, y, z := id.axes()
	h := curve.HilbertEncode(uint16(x>>1), uint16(y>>1), uint16(z>>1))
	return Hilbert64{value: packKey64(curve.HdrHilbert, id.Frame(), id.Tier(), lod-1, h)}, nil
}

// Children returns the 8 keys one LOD finer tiling this key's cell in the
// doubled grid. As with Index64.Children, the odd-offset children are
// refinement-grid addresses rather than lattice points.
func (id Hilbert64) Children() ([8]Hilbert64, error) {
	var out [8]Hilbert64
	lod := id.LOD()
	if lod >= MaxLOD {
		return out, ErrNoChildren
	}
	x, y, z := id.axes()
	i := 0
	for dx := int32(0); dx <= 1; dx++ {
		for dy := int32(0); dy <= 1; dy++ {
			for dz := int32(0); dz <= 1; dz++ {
				h := curve.HilbertEncode(uint16(2*x+dx), uint16(2*y+dy), uint16(2*z+dz))
				out[i] = Hilbert64{value: packKey64(curve.HdrHilbert, id.Frame(), id.Tier(), lod+1, h)}
				i++
			}
		}
	}
	return out, nil
}

// ToIndex64 re-encodes the same cell as a Morton key.
func (id Hilbert64) ToIndex64() (Index64, error) {
	x, y, z := id.axes()
	return NewIndex64(id.Frame(), id.Tier(), id.LOD(), x, y, z)
}

// ToHilbert64 re-encodes the same cell as a Hilbert key.
func (id Index64) ToHilbert64() (Hilbert64, error) {
	x, y, z := id.axes()
	return NewHilbert64(id.Frame(), id.Tier(), id.LOD(), x, y, z)
}

func (id Hilbert64) String() string {
	x, y, z := id.axes()
	return fmt.Sprintf("H64(f=%d, t=%d, lod=%d, hilbert=%012x, %d,%d,%d)",
		id.Frame(), id.Tier(), id.LOD(), id.Hilbert(), x, y, z)
}
