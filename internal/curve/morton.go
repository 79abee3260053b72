package curve

// Bit-parallel Morton kernels. spread16 places the 16 bits of an axis at
// every third bit position using the standard mask-shift sequence;
// compact16 is the exact inverse. The constants are the classic 3-D
// Morton magic masks, wide enough for 21-bit axes so 16-bit inputs pass
// through losslessly.

func spread16(v uint64) uint64 {
	v &= 0xFFFF
	v = (v | v<<32) & 0x001F00000000FFFF
	v = (v | v<<16) & 0x001F0000FF0000FF
	v = (v | v<<8) & 0x100F00F00F00F00F
	v = (v | v<<4) & 0x10C30C30C30C30C3
	v = (v | v<<2) & 0x1249249249249249
	return v
}

func compact16(v uint64) uint64 {
	v &= 0x1249249249249249
	v = (v ^ v>>2) & 0x10C30C30C30C30C3
	v = (v ^ v>>4) & 0x100F00F00F00F00F
	v = (v ^ v>>8) & 0x001F0000FF0000FF
	v = (v ^ v>>16) & 0x001F00000000FFFF
	v = (v ^ v>>32) & 0x00000000001FFFFF
	return v
}

// mortonEncodeShift interleaves x, y, z LSB-first: x occupies bits
// 0,3,6,..., y bits 1,4,7,..., z bits 2,5,8,... of the 48-bit result.
func mortonEncodeShift(x, y, z uint16) uint64 {
	return spread16(uint64(x)) | spread16(uint64(y))<<1 | spread16(uint64(z))<<2
}

func mortonDecodeShift(m uint64) (x, y, z uint16) {
	x = uint16(compact16(m))
	y = uint16(compact16(m >> 1))
	z = uint16(compact16(m >> 2))
	return x, y, z
}

// mortonLUT spreads one byte across every third bit position. Built once
// at process start and never mutated.
var mortonLUT = func() [256]uint64 {
	var t [256]uint64
	for i := 0; i < 256; i++ {
		var r uint64
		for j := 0; j < 8; j++ {
			if i&(1<<j) != 0 {
				r |= 1 << (3 * j)
			}
		}
		t[i] = r
	}
	return t
}()

// mortonEncodeLUT processes one byte of each axis at a time. The per-byte
// shift is 3x the byte offset because each source byte expands to 24
// output bits; the axis selects the +0/+1/+2 lane.
func mortonEncodeLUT(x, y, z uint16) uint64 {
	var m uint64
	for i := 0; i < 2; i++ {
		shift := uint(i * 8)
		xb := uint64(mortonLUT[(x>>shift)&0xFF])
		yb := uint64(mortonLUT[(y>>shift)&0xFF])
		zb := uint64(mortonLUT[(z>>shift)&0xFF])
		m |= xb << (shift * 3)
		m |= yb << (shift*3 + 1)
		m |= zb << (shift*3 + 2)
	}
	return m
}

func extractEveryThird(bits uint64, offset uint) uint8 {
	var r uint8
	for i := uint(0); i < 8; i++ {
		r |= uint8((bits>>(offset+i*3))&1) << i
	}
	return r
}

func mortonDecodeLUT(m uint64) (x, y, z uint16) {
	for i := uint(0); i < 2; i++ {
		group := (m >> (i * 24)) & 0xFFFFFF
		x |= uint16(extractEveryThird(group, 0)) << (i * 8)
		y |= uint16(extractEveryThird(group, 1)) << (i * 8)
		z |= uint16(extractEveryThird(group, 2)) << (i * 8)
	}
	return x, y, z
}
