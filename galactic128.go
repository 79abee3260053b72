package octaindex

import (
	"encoding/binary"
	"fmt"

	"github.com/hupe1980/octaindex/internal/curve"
)

// Galactic128 field geometry within the high 64 bits. The low 64 bits
// carry y and z; x sits in the low half of Hi so all three axes are
// full signed 32-bit fields.
const (
	galacticMaxLOD = 63

	galShiftMant  = 54
	galShiftTier  = 52
	galShiftLOD   = 46
	galShiftFrame = 38
	galShiftVer   = 36
	galShiftAttr  = 32

	galVersion = 1
)

// Galactic128 is a 128-bit globally-namespaced cell ID with frame and
// scale metadata for cross-dataset uniqueness.
//
// Bit layout (MSB to LSB):
//   - Bits 127..126: Hdr = 00 (identifies Galactic128)
//   - Bits 125..118: ScaleMant (8 bits)
//   - Bits 117..116: ScaleTier (2 bits)
//   - Bits 115..110: LOD (6 bits)
//   - Bits 109..102: FrameID (8 bits)
//   - Bits 101..100: Version (2 bits, currently 1)
//   - Bits  99..96:  AttrUsr (4 bits)
//   - Bits  95..64:  X (32 bits signed)
//   - Bits  63..32:  Y (32 bits signed)
//   - Bits  31..0:   Z (32 bits signed)
type Galactic128 struct {
	hi, lo uint64
}

// galacticBounds returns the inclusive coordinate range at the given LOD.
// The range doubles per LOD step and saturates at the full signed 32-bit
// field from LOD 31 upward.
func galacticBounds(lod uint8) (min, max int32) {
	if lod >= 31 {
		return -1 << 31, 1<<31 - 1
	}
	bound := int32(1) << lod
	return -bound, bound - 1
}

// NewGalactic128 encodes a lattice coordinate with full namespace
// metadata.
func NewGalactic128(frame FrameID, scaleMant, scaleTier, lod, attrUsr uint8, x, y, z int32) (Galactic128, error) {
	if scaleTier > 3 {
		return Galactic128{}, &TierError{Tier: scaleTier}
	}
	if lod > galacticMaxLOD {
		return Galactic128{}, &LODError{LOD: lod, Max: galacticMaxLOD}
	}
	if _, err := parityOf(x, y, z); err != nil {
		return Galactic128{}, err
	}
	min, max := galacticBounds(lod)
	if err := checkRange("x", x, min, max); err != nil {
		return Galactic128{}, err
	}
	if err := checkRange("y", y, min, max); err != nil {
		return Galactic128{}, err
	}
	if err := checkRange("z", z, min, max); err != nil {
		return Galactic128{}, err
	}

	hi := uint64(curve.HdrGalactic) << 62
	hi |= uint64(scaleMant) << galShiftMant
	hi |= uint64(scaleTier&0x3) << galShiftTier
	hi |= uint64(lod&0x3F) << galShiftLOD
	hi |= uint64(frame) << galShiftFrame
	hi |= uint64(galVersion) << galShiftVer
	hi |= uint64(attrUsr&0xF) << galShiftAttr
	hi |= uint64(uint32(x))
	lo := uint64(uint32(y))<<32 | uint64(uint32(z))
	return Galactic128{hi: hi, lo: lo}, nil
}

// Galactic128FromCoordinate encodes a validated coordinate.
func Galactic128FromCoordinate(frame FrameID, scaleMant, scaleTier, lod uint8, c Coordinate) (Galactic128, error) {
	return NewGalactic128(frame, scaleMant, scaleTier, lod, 0, c.X(), c.Y(), c.Z())
}

// Galactic128FromBits reinterprets a raw high/low pair as a Galactic128,
// rejecting values with a foreign header tag or an unknown version.
func Galactic128FromBits(hi, lo uint64) (Galactic128, error) {
	if hdr := uint8(hi >> 62); hdr != curve.HdrGalactic {
		return Galactic128{}, &DecodeError{Kind: "Galactic128", Want: curve.HdrGalactic, Got: hdr}
	}
	if ver := uint8(hi>>galShiftVer) & 0x3; ver != galVersion {
		return Galactic128{}, &DecodeError{Kind: "Galactic128 version", Want: galVersion, Got: ver}
	}
	return Galactic128{hi: hi, lo: lo}, nil
}

// Bits returns the raw value as a (hi, lo) pair.
func (g Galactic128) Bits() (hi, lo uint64) { return g.hi, g.lo }

// Less reports whether g sorts before other by raw 128-bit value.
func (g Galactic128) Less(other Galactic128) bool {
	if g.hi != other.hi {
		return g.hi < other.hi
	}
	return g.lo < other.lo
}

// Frame returns the frame ID field.
func (g Galactic128) Frame() FrameID {
	return FrameID(g.hi >> galShiftFrame & 0xFF)
}

// ScaleMant returns the scale mantissa field.
func (g Galactic128) ScaleMant() uint8 {
	return uint8(g.hi >> galShiftMant & 0xFF)
}

// ScaleTier returns the scale tier field.
func (g Galactic128) ScaleTier() uint8 {
	return uint8(g.hi>>galShiftTier) & 0x3
}

// LOD returns the level-of-detail field.
func (g Galactic128) LOD() uint8 {
	return uint8(g.hi>>galShiftLOD) & 0x3F
}

// AttrUsr returns the user attribute nibble.
func (g Galactic128) AttrUsr() uint8 {
	return uint8(g.hi>>galShiftAttr) & 0xF
}

// X returns the x component.
func (g Galactic128) X() int32 { return int32(uint32(g.hi)) }

// Y returns the y component.
func (g Galactic128) Y() int32 { return int32(uint32(g.lo >> 32)) }

// Z returns the z component.
func (g Galactic128) Z() int32 { return int32(uint32(g.lo)) }

// Coordinate decodes the ID into a validated lattice coordinate.
func (g Galactic128) Coordinate() (Coordinate, error) {
	return NewCoordinate(g.X(), g.Y(), g.Z())
}

// Neighbors derives the 14 lattice-adjacent IDs with identical namespace
// metadata, in offset-table order. Semantics match Index64.Neighbors: a
// direction outside the LOD range leaves the zero Galactic128 in its
// slot (version field 0, never a valid ID). At saturated LODs the range
// is the full int32 field, so candidate sums are formed in int64 before
// the range check rather than letting int32 addition wrap.
func (g Galactic128) Neighbors() ([NeighborCount]Galactic128, error) {
	var out [NeighborCount]Galactic128
	x, y, z := int64(g.X()), int64(g.Y()), int64(g.Z())
	min32, max32 := galacticBounds(g.LOD())
	min, max := int64(min32), int64(max32)
	meta := g.hi &^ uint64(0xFFFFFFFF) // everything above the x field

	for i, off := range neighborOffsets {
		nx, ny, nz := x+int64(off.DX), y+int64(off.DY), z+int64(off.DZ)
		if (nx^ny)&1 != 0 || (ny^nz)&1 != 0 {
			return out, &ParityError{X: int32(nx), Y: int32(ny), Z: int32(nz)}
		}
		if nx < min || nx > max || ny < min || ny > max || nz < min || nz > max {
			continue
		}
		out[i] = Galactic128{
			hi: meta | uint64(uint32(int32(nx))),
			lo: uint64(uint32(int32(ny)))<<32 | uint64(uint32(int32(nz))),
		}
	}
	return out, nil
}

// AppendBytes appends the big-endian 16-byte representation.
func (g Galactic128) AppendBytes(dst []byte) []byte {
	dst = binary.BigEndian.AppendUint64(dst, g.hi)
	return binary.BigEndian.AppendUint64(dst, g.lo)
}

// Galactic128FromBytes decodes a big-endian 16-byte representation.
func Galactic128FromBytes(b []byte) (Galactic128, error) {
	if len(b) != 16 {
		return Galactic128{}, &BufferSizeError{Want: 16, Got: len(b)}
	}
	return Galactic128FromBits(binary.BigEndian.Uint64(b[:8]), binary.BigEndian.Uint64(b[8:]))
}

func (g Galactic128) String() string {
	return fmt.Sprintf("G128(f=%d, t=%d:%d, lod=%d, %d,%d,%d)",
		g.Frame(), g.ScaleTier(), g.ScaleMant(), g.LOD(), g.X(), g.Y(), g.Z())
}
