// Package octaindex provides compact spatial identifiers on the
// body-centered cubic (BCC) lattice.
//
// OctaIndex encodes 3D lattice coordinates into fixed-width keys with
// locality-preserving payloads, and derives the 14 nearest lattice
// neighbors of any cell without decoding round-trips through floating
// point. Every valid coordinate has uniform parity: all three axes
// even, or all three odd.
//
// # Identifier Types
//
// Four key types cover different range/precision trade-offs, each
// carrying a 2-bit header tag in its top bits:
//
//	Index64     // Morton (Z-order) payload, signed 16-bit axes, LOD 0..15
//	Hilbert64   // Hilbert-curve payload, same field layout as Index64
//	Route64     // raw signed 20-bit axes, fast field access, no curve
//	Galactic128 // 128-bit wide-range key with scale mantissa and frame
//
// # Quick Start
//
//	c, _ := octaindex.NewCoordinate(2, 4, -6)
//	id, _ := octaindex.Index64FromCoordinate(octaindex.FrameID(0), 0, 10, c)
//	neighbors, _ := id.Neighbors() // fixed table order; zero slot = no neighbor
//
//	s, _ := id.EncodeText() // "i3d1..."
//	id2, _ := octaindex.DecodeIndex64Text(s)
//
// # Batch Processing
//
// The batch package dispatches large workloads across scalar, unrolled
// vector, multi-core, and GPU backends. All backends produce
// bit-identical output:
//
//	p := batch.NewProcessor(batch.WithStrategy(batch.StrategyAuto))
//	out := make([]octaindex.Route64, len(in)*octaindex.NeighborCount)
//	err := p.NeighborsRoute64(ctx, in, out)
//
// # Key Features
//
//   - 14-neighbor derivation in pure integer arithmetic
//   - Morton encode/decode with mask-shift and LUT kernels
//   - Hilbert encode/decode (Skilling transpose, order 16)
//   - Bech32m text form with per-type prefixes (i3d1, r3d1, h3d1, g3d1)
//   - LOD hierarchy (Parent/Children) on curve-backed keys
//   - Roaring-bitmap cell sets for sparse region membership
//   - Optional WebGPU compute backend for bulk neighbor derivation
package octaindex
