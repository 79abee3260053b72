// Package curve implements the space-filling-curve kernels behind the
// spatial identifier types: Morton (Z-order) interleaving, the Hilbert
// transpose transform, and their batch variants.
//
// Two Morton implementations exist: a bit-parallel mask-shift path and a
// byte-wise lookup-table path. Both produce bit-identical output; the
// active kernel is selected once at init and can be forced with the
// OCTAINDEX_KERNEL environment variable ("shift" or "lut").
//
// The package also owns the canonical BCC neighbor offset table and the
// identifier bit-layout constants. Every consumer, including the generated
// GPU shader, derives from these definitions so the dialects cannot drift.
package curve
