// Package batch dispatches bulk encode, decode, and neighbor-derivation
// workloads across execution backends.
//
// A Processor routes each call to one of four strategies: a scalar loop,
// an unrolled vector-kernel path, a multi-core path built on errgroup, or
// a GPU compute backend. Strategy selection is deterministic for a given
// batch size and hardware capability, and every backend produces
// bit-identical output. A batch fails as a whole: on the first invalid
// input the call returns that input's error and the output slice contents
// are unspecified. Neighbor derivations at a range boundary are not
// errors; the affected output slots hold the zero key, meaning no
// neighbor exists in that direction.
package batch
