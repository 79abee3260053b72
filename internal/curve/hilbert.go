package curve

// Hilbert transform after Skilling ("Programming the Hilbert curve",
// 2004): axes are converted to/from the transposed Hilbert representation
// in place, then the transpose is interleaved into a single distance.
// Bijective over the full 16-bit-per-axis cube at order 16.

const hilbertOrder = KeyAxisBits

func axesToTranspose(X *[3]uint32) {
	M := uint32(1) << (hilbertOrder - 1)

	// Inverse undo
	for Q := M; Q > 1; Q >>= 1 {
		P := Q - 1
		for i := 0; i < 3; i++ {
			if X[i]&Q != 0 {
				X[0] ^= P
			} else {
				t := (X[0] ^ X[i]) & P
				X[0] ^= t
				X[i] ^= t
			}
		}
	}

	// Gray encode
	for i := 1; i < 3; i++ {
		X[i] ^= X[i-1]
	}
	var t uint32
	for Q := M; Q > 1; Q >>= 1 {
		if X[2]&Q != 0 {
			t ^= Q - 1
		}
	}
	for i := 0; i < 3; i++ {
		X[i] ^= t
	}
}

func transposeToAxes(X *[3]uint32) {
	N := uint32(2) << (hilbertOrder - 1)

	// Gray decode by H ^ (H/2)
	t := X[2] >> 1
	for i := 2; i > 0; i-- {
		X[i] ^= X[i-1]
	}
	X[0] ^= t

	// Undo excess work
	for Q := uint32(2); Q != N; Q <<= 1 {
		P := Q - 1
		for i := 2; i >= 0; i-- {
			if X[i]&Q != 0 {
				X[0] ^= P
			} else {
				t := (X[0] ^ X[i]) & P
				X[0] ^= t
				X[i] ^= t
			}
		}
	}
}

// HilbertEncode maps 16-bit axes to a 48-bit Hilbert distance. Bit k of
// transposed axis i lands at distance bit 3k+(2-i), so X[0] contributes
// the most significant bit of each 3-bit group.
func HilbertEncode(x, y, z uint16) uint64 {
	X := [3]uint32{uint32(x), uint32(y), uint32(z)}
	axesToTranspose(&X)

	var h uint64
	for k := hilbertOrder - 1; k >= 0; k-- {
		for i := 0; i < 3; i++ {
			h = h<<1 | uint64((X[i]>>uint(k))&1)
		}
	}
	return h
}

// HilbertDecode is the exact inverse of HilbertEncode.
func HilbertDecode(h uint64) (x, y, z uint16) {
	var X [3]uint32
	for k := hilbertOrder - 1; k >= 0; k-- {
		for i := 0; i < 3; i++ {
			X[i] |= uint32((h>>uint(3*k+(2-i)))&1) << uint(k)
		}
	}
	transposeToAxes(&X)
	return uint16(X[0]), uint16(X[1]), uint16(X[2])
}
