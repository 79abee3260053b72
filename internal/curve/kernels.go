package curve

// Kernel function pointers - set once at init, zero runtime overhead.
// The mask-shift implementations are the default; initCapabilities may
// swap in the LUT path when forced via environment override.
var (
	kernelMortonEncode = mortonEncodeShift
	kernelMortonDecode = mortonDecodeShift
)

// MortonEncode interleaves three 16-bit axes into a 48-bit Z-order value.
func MortonEncode(x, y, z uint16) uint64 {
	return kernelMortonEncode(x, y, z)
}

// MortonDecode de-interleaves a 48-bit Z-order value into 16-bit axes.
func MortonDecode(m uint64) (x, y, z uint16) {
	return kernelMortonDecode(m)
}
