package curve

// Batch kernels used by the vectorized execution strategy. The 4-wide
// unrolling keeps the interleave pipelines of adjacent items independent
// so superscalar cores can overlap them.
//
// SAFETY: All kernels assume the caller validated slice lengths. The
// batch package owns length checks and surfaces BufferSizeError.

// MortonEncodeBatch interleaves n axis triples into out[:n].
func MortonEncodeBatch(xs, ys, zs []uint16, out []uint64) {
	n := len(out)
	i := 0
	for ; i+4 <= n; i += 4 {
		out[i] = kernelMortonEncode(xs[i], ys[i], zs[i])
		out[i+1] = kernelMortonEncode(xs[i+1], ys[i+1], zs[i+1])
		out[i+2] = kernelMortonEncode(xs[i+2], ys[i+2], zs[i+2])
		out[i+3] = kernelMortonEncode(xs[i+3], ys[i+3], zs[i+3])
	}
	for ; i < n; i++ {
		out[i] = kernelMortonEncode(xs[i], ys[i], zs[i])
	}
}

// MortonDecodeBatch de-interleaves n Morton values into the axis slices.
func MortonDecodeBatch(in []uint64, xs, ys, zs []uint16) {
	n := len(in)
	i := 0
	for ; i+4 <= n; i += 4 {
		xs[i], ys[i], zs[i] = kernelMortonDecode(in[i])
		xs[i+1], ys[i+1], zs[i+1] = kernelMortonDecode(in[i+1])
		xs[i+2], ys[i+2], zs[i+2] = kernelMortonDecode(in[i+2])
		xs[i+3], ys[i+3], zs[i+3] = kernelMortonDecode(in[i+3])
	}
	for ; i < n; i++ {
		xs[i], ys[i], zs[i] = kernelMortonDecode(in[i])
	}
}

// HilbertEncodeBatch transforms n axis triples into out[:n].
func HilbertEncodeBatch(xs, ys, zs []uint16, out []uint64) {
	for i := range out {
		out[i] = HilbertEncode(xs[i], ys[i], zs[i])
	}
}

// HilbertDecodeBatch transforms n Hilbert distances into the axis slices.
func HilbertDecodeBatch(in []uint64, xs, ys, zs []uint16) {
	for i := range in {
		xs[i], ys[i], zs[i] = HilbertDecode(in[i])
	}
}

// RouteNeighborsBatch derives the 14 neighbors of each raw Route64 in
// input order, writing 14 consecutive slots of out per input. A candidate
// coordinate outside the 20-bit range is written as the sentinel value 0
// (never a valid Route64: its header tag is 0b00), meaning no neighbor
// exists in that direction. The GPU shader emits the same sentinel, so
// every backend produces bit-identical output at range boundaries.
func RouteNeighborsBatch(in, out []uint64) {
	for i, raw := range in {
		tier, x, y, z := RouteFields(raw)
		base := i * NeighborCount
		for k, off := range NeighborOffsets {
			nx, ny, nz := x+off[0], y+off[1], z+off[2]
			if nx < RouteCoordMin || nx > RouteCoordMax ||
				ny < RouteCoordMin || ny > RouteCoordMax ||
				nz < RouteCoordMin || nz > RouteCoordMax {
				out[base+k] = 0
				continue
			}
			out[base+k] = PackRoute(tier, nx, ny, nz)
		}
	}
}
