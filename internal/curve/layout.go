package curve

// Header tags occupying the 2 most-significant bits of every identifier.
const (
	HdrGalactic = 0b00
	HdrRoute    = 0b01
	HdrIndex    = 0b10
	HdrHilbert  = 0b11
)

// Route64 field geometry: hdr(2) | tier(2) | x20 | y20 | z20.
const (
	RouteCoordBits = 20
	RouteCoordMax  = 1<<(RouteCoordBits-1) - 1
	RouteCoordMin  = -(1 << (RouteCoordBits - 1))
	RouteCoordMask = 1<<RouteCoordBits - 1

	RouteShiftX = 40
	RouteShiftY = 20
	RouteShiftZ = 0
)

// Morton/Hilbert key field geometry: hdr(2) | tier(2) | frame(8) | lod(4)
// | payload48 with signed 16-bit axes.
const (
	KeyAxisBits    = 16
	KeyPayloadBits = 3 * KeyAxisBits
	KeyPayloadMask = 1<<KeyPayloadBits - 1

	KeyShiftTier  = 60
	KeyShiftFrame = 52
	KeyShiftLOD   = 48

	KeyMaxLOD = 15
)

// NeighborCount is the size of the BCC adjacency set.
const NeighborCount = 14

// NeighborOffsets is the canonical BCC 14-neighbor offset table: 8
// parity-flipping diagonal offsets followed by 6 parity-preserving
// axis-aligned offsets. The order is part of the public contract; the
// batch kernels and the generated GPU shader index into it directly.
var NeighborOffsets = [NeighborCount][3]int32{
	{1, 1, 1},
	{1, 1, -1},
	{1, -1, 1},
	{1, -1, -1},
	{-1, 1, 1},
	{-1, 1, -1},
	{-1, -1, 1},
	{-1, -1, -1},
	{2, 0, 0},
	{-2, 0, 0},
	{0, 2, 0},
	{0, -2, 0},
	{0, 0, 2},
	{0, 0, -2},
}

// LODBounds returns the inclusive coordinate range a level of detail
// admits: [-2^lod, 2^lod-1].
func LODBounds(lod uint8) (min, max int32) {
	bound := int32(1) << lod
	return -bound, bound - 1
}

// PackKey assembles a raw 64-bit curve key from its fields. The payload
// must already fit 48 bits; fields are not validated here.
func PackKey(hdr uint64, frame, tier, lod uint8, payload uint64) uint64 {
	v := hdr << 62
	v |= uint64(tier&0x3) << KeyShiftTier
	v |= uint64(frame) << KeyShiftFrame
	v |= uint64(lod&0xF) << KeyShiftLOD
	v |= payload & KeyPayloadMask
	return v
}

// SignExtend20 widens a raw 20-bit two's-complement field to int32.
func SignExtend20(raw uint32) int32 {
	return int32(raw<<12) >> 12
}

// RouteFields unpacks tier and the three signed axes of a raw Route64.
// The header tag is not checked here; callers own that.
func RouteFields(raw uint64) (tier uint8, x, y, z int32) {
	tier = uint8(raw>>KeyShiftTier) & 0x3
	x = SignExtend20(uint32(raw>>RouteShiftX) & RouteCoordMask)
	y = SignExtend20(uint32(raw>>RouteShiftY) & RouteCoordMask)
	z = SignExtend20(uint32(raw>>RouteShiftZ) & RouteCoordMask)
	return tier, x, y, z
}

// PackRoute packs tier and three in-range signed axes into a raw Route64.
func PackRoute(tier uint8, x, y, z int32) uint64 {
	v := uint64(HdrRoute) << 62
	v |= uint64(tier&0x3) << KeyShiftTier
	v |= (uint64(uint32(x)) & RouteCoordMask) << RouteShiftX
	v |= (uint64(uint32(y)) & RouteCoordMask) << RouteShiftY
	v |= (uint64(uint32(z)) & RouteCoordMask) << RouteShiftZ
	return v
}
