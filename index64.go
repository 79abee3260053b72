package octaindex

import (
	"fmt"

	"github.com/hupe1980/octaindex/internal/curve"
)

// FrameID names the coordinate reference frame an identifier belongs to.
// Frame semantics (WGS84, ECEF, local frames) live in the frame registry;
// the codec treats the value as opaque.
type FrameID uint8

// MaxLOD is the finest level of detail representable by the 64-bit
// Morton- and Hilbert-keyed identifier types.
const MaxLOD = curve.KeyMaxLOD

// lodBounds returns the inclusive coordinate range of a 64-bit key at the
// given level of detail. Each LOD step doubles the per-axis range (8:1
// volumetric refinement); LOD 15 spans the full signed 16-bit field.
func lodBounds(lod uint8) (min, max int32) {
	return curve.LODBounds(lod)
}

// Index64 is a 64-bit sortable spatial key using Morton (Z-order)
// encoding.
//
// Bit layout:
//   - Bits 63..62: Hdr = 10 (identifies Index64)
//   - Bits 61..60: ScaleTier (2 bits)
//   - Bits 59..52: FrameID (8 bits)
//   - Bits 51..48: LOD (4 bits)
//   - Bits 47..0:  Morton3D (48 bits, signed 16 bits per axis)
type Index64 struct {
	value uint64
}

func packKey64(hdr uint64, frame FrameID, tier, lod uint8, payload uint64) uint64 {
	return curve.PackKey(hdr, uint8(frame), tier, lod, payload)
}

// validateKey64 runs the shared constructor checks of the 64-bit
// Morton/Hilbert key types.
func validateKey64(tier, lod uint8, x, y, z int32) error {
	if tier > 3 {
		return &TierError{Tier: tier}
	}
	if lod > MaxLOD {
		return &LODError{LOD: lod, Max: MaxLOD}
	}
	if _, err := parityOf(x, y, z); err != nil {
		return err
	}
	min, max := lodBounds(lod)
	if err := checkRange("x", x, min, max); err != nil {
		return err
	}
	if err := checkRange("y", y, min, max); err != nil {
		return err
	}
	return checkRange("z", z, min, max)
}

// NewIndex64 encodes a lattice coordinate into an Index64 key.
func NewIndex64(frame FrameID, tier, lod uint8, x, y, z int32) (Index64, error) {
	if err := validateKey64(tier, lod, x, y, z); err != nil {
		return Index64{}, err
	}
	m := curve.MortonEncode(uint16(x), uint16(y), uint16(z))
	return Index64{value: packKey64(curve.HdrIndex, frame, tier, lod, m)}, nil
}

// Index64FromCoordinate encodes a validated coordinate at the given LOD.
func Index64FromCoordinate(frame FrameID, tier, lod uint8, c Coordinate) (Index64, error) {
	return NewIndex64(frame, tier, lod, c.X(), c.Y(), c.Z())
}

// Index64FromBits reinterprets a raw integer as an Index64, rejecting
// values whose header tag belongs to another identifier type.
func Index64FromBits(raw uint64) (Index64, error) {
	if hdr := uint8(raw >> 62); hdr != curve.HdrIndex {
		return Index64{}, &DecodeError{Kind: "Index64", Want: curve.HdrIndex, Got: hdr}
	}
	return Index64{value: raw}, nil
}

// Bits returns the raw 64-bit value. Raw values order identically to
// their keys: same frame/tier/LOD keys sort in Morton order.
func (id Index64) Bits() uint64 { return id.value }

// Less reports whether id sorts before other by raw value.
func (id Index64) Less(other Index64) bool { return id.value < other.value }

// Frame returns the frame ID field.
func (id Index64) Frame() FrameID {
	return FrameID(id.value >> curve.KeyShiftFrame & 0xFF)
}

// Tier returns the scale tier field.
func (id Index64) Tier() uint8 {
	return uint8(id.value>>curve.KeyShiftTier) & 0x3
}

// LOD returns the level-of-detail field.
func (id Index64) LOD() uint8 {
	return uint8(id.value>>curve.KeyShiftLOD) & 0xF
}

// Morton returns the 48-bit Morton payload.
func (id Index64) Morton() uint64 {
	return id.value & curve.KeyPayloadMask
}

func (id Index64) axes() (x, y, z int32) {
	ux, uy, uz := curve.MortonDecode(id.Morton())
	return int32(int16(ux)), int32(int16(uy)), int32(int16(uz))
}

// X returns the sign-extended x component.
func (id Index64) X() int32 { x, _, _ := id.axes(); return x }

// Y returns the sign-extended y component.
func (id Index64) Y() int32 { _, y, _ := id.axes(); return y }

// Z returns the sign-extended z component.
func (id Index64) Z() int32 { _, _, z := id.axes(); return z }

// Coordinate decodes the key into a validated lattice coordinate.
func (id Index64) Coordinate() (Coordinate, error) {
	x, y, z := id.axes()
	return NewCoordinate(x, y, z)
}

// Neighbors derives the 14 lattice-adjacent keys at the same frame, tier
// and LOD, in offset-table order. A candidate coordinate outside the
// LOD-implied range has no key in that direction: its slot holds the
// zero Index64 (header tag 00, never a valid key), and the remaining
// directions are still derived. Callers at the boundary of the keyed
// region treat a zero slot as "no neighbor in that direction".
//
// Parity is revalidated on every candidate even though the offset table
// preserves it by construction; this guards the codec against offset
// table corruption and truncation bugs, and it fails the whole call.
func (id Index64) Neighbors() ([NeighborCount]Index64, error) {
	var out [NeighborCount]Index64
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
		m := curve.MortonEncode(uint16(nx), uint16(ny), uint16(nz))
		out[i] = Index64{value: packKey64(curve.HdrIndex, frame, tier, lod, m)}
	}
	return out, nil
}

// Parent returns the enclosing key one LOD coarser. Axes are halved with
// floor semantics so negative coordinates coarsen toward the cell that
// contains them.
func (id Index64) Parent() (Index64, error) {
	lod := id.LOD()
	if lod == 0 {
		return Index64{}, ErrNoParent
	}
	x, y, z := id.axes()
	m := curve.MortonEncode(uint16(x>>1), uint16(y>>1), uint16(z>>1))
	return Index64{value: packKey64(curve.HdrIndex, id.Frame(), id.Tier(), lod-1, m)}, nil
}

// Children returns the 8 keys one LOD finer that tile this key's cell in
// the doubled Morton grid. Children are addresses in the refinement grid;
// the odd-offset children are not themselves BCC lattice points, so
// Coordinate on them can fail with ParityError.
func (id Index64) Children() ([8]Index64, error) {
	var out [8]Index64
	lod := id.LOD()
	if lod >= MaxLOD {
		return out, ErrNoChildren
	}
	x, y, z := id.axes()
	i := 0
	for dx := int32(0); dx <= 1; dx++ {
		for dy := int32(0); dy <= 1; dy++ {
			for dz := int32(0); dz <= 1; dz++ {
				m := curve.MortonEncode(uint16(2*x+dx), uint16(2*y+dy), uint16(2*z+dz))
				out[i] = Index64{value: packKey64(curve.HdrIndex, id.Frame(), id.Tier(), lod+1, m)}
				i++
			}
		}
	}
	return out, nil
}

func (id Index64) String() string {
	x, y, z := id.axes()
	return fmt.Sprintf("I64(f=%d, t=%d, lod=%d, morton=%012x, %d,%d,%d)",
		id.Frame(), id.Tier(), id.LOD(), id.Morton(), x, y, z)
}
