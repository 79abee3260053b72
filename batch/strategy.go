package batch

// Strategy selects an execution backend for a batch operation.
type Strategy int

const (
	// StrategyAuto picks a backend from the batch size and the probed
	// hardware capability. This is the default.
	StrategyAuto Strategy = iota
	// StrategyScalar runs a plain single-threaded loop.
	StrategyScalar
	// StrategyVector runs the unrolled vector-lane kernels on one core.
	StrategyVector
	// StrategyParallel splits the batch across worker goroutines.
	StrategyParallel
	// StrategyGPU offloads to a configured GPU compute backend.
	StrategyGPU
)

func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategyScalar:
		return "scalar"
	case StrategyVector:
		return "vector"
	case StrategyParallel:
		return "parallel"
	case StrategyGPU:
		return "gpu"
	default:
		return "unknown"
	}
}

// Capability describes the execution resources available to Select.
type Capability struct {
	// Vector reports whether the unrolled kernel path is enabled.
	Vector bool
	// Workers is the goroutine budget for the parallel backend.
	Workers int
	// GPU reports whether a GPU backend is configured, available, and
	// supports the operation being dispatched.
	GPU bool
	// GPUMinBatch is the backend's minimum worthwhile batch size.
	GPUMinBatch int
	// ParallelThreshold is the batch size at which fan-out pays off.
	ParallelThreshold int
	// GPUThreshold is the batch size at which GPU offload pays off.
	GPUThreshold int
}

// Select resolves StrategyAuto for a batch of n items. It is a pure
// function: the same inputs always yield the same strategy.
func Select(n int, caps Capability) Strategy {
	if caps.GPU && n >= caps.GPUThreshold && n >= caps.GPUMinBatch {
		return StrategyGPU
	}
	if caps.Workers > 1 && n >= caps.ParallelThreshold {
		return StrategyParallel
	}
	if caps.Vector {
		return StrategyVector
	}
	return StrategyScalar
}
