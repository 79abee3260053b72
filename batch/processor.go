package batch

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/octaindex"
	"github.com/hupe1980/octaindex/internal/curve"
)

const (
	defaultParallelThreshold = 4096
	defaultGPUThreshold      = 1 << 16

	// vecLanes bounds the scratch buffers of the vector path so large
	// batches stay cache-resident.
	vecLanes = 256
)

// GPUBackend is the contract a GPU compute implementation satisfies.
// The gpu package provides a WebGPU implementation.
type GPUBackend interface {
	// Name identifies the adapter for logs.
	Name() string
	// Available reports whether the device initialized successfully.
	Available() bool
	// MinBatch is the smallest batch worth the transfer overhead.
	MinBatch() int
	// NeighborsRoute64 derives 14 neighbors per input key, writing 14
	// consecutive output slots per input. A direction with no neighbor
	// (candidate outside the coordinate range) is written as the
	// sentinel 0, which is never a valid key.
	NeighborsRoute64(ctx context.Context, in, out []uint64) error
}

type processorOptions struct {
	strategy          Strategy
	parallelThreshold int
	gpuThreshold      int
	workers           int
	logger            *octaindex.Logger
	gpu               GPUBackend
}

// Option configures a Processor.
type Option func(*processorOptions)

// WithStrategy pins the execution strategy. Pinning a strategy the
// hardware cannot provide makes every call fail with
// ErrBackendUnavailable rather than silently degrading.
func WithStrategy(s Strategy) Option {
	return func(o *processorOptions) {
		o.strategy = s
	}
}

// WithParallelThreshold sets the batch size at which StrategyAuto
// switches to the parallel backend.
func WithParallelThreshold(n int) Option {
	return func(o *processorOptions) {
		if n > 0 {
			o.parallelThreshold = n
		}
	}
}

// WithGPUThreshold sets the batch size at which StrategyAuto considers
// GPU offload.
func WithGPUThreshold(n int) Option {
	return func(o *processorOptions) {
		if n > 0 {
			o.gpuThreshold = n
		}
	}
}

// WithWorkers caps the goroutine budget of the parallel backend.
// Defaults to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *processorOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *octaindex.Logger) Option {
	return func(o *processorOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithGPU attaches a GPU compute backend. Without one, StrategyGPU is
// unavailable and StrategyAuto never selects it.
func WithGPU(backend GPUBackend) Option {
	return func(o *processorOptions) {
		o.gpu = backend
	}
}

// Processor executes batch operations under a dispatch policy. It is
// immutable after construction and safe for concurrent use.
type Processor struct {
	opts processorOptions
}

// NewProcessor creates a Processor. The zero configuration uses
// StrategyAuto with GOMAXPROCS workers and no GPU backend.
func NewProcessor(optFns ...Option) *Processor {
	opts := processorOptions{
		strategy:          StrategyAuto,
		parallelThreshold: defaultParallelThreshold,
		gpuThreshold:      defaultGPUThreshold,
		workers:           runtime.GOMAXPROCS(0),
		logger:            octaindex.NoopLogger(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Processor{opts: opts}
}

func (p *Processor) gpuReady() bool {
	return p.opts.gpu != nil && p.opts.gpu.Available()
}

// logFor scopes the logger to one dispatch decision.
func (p *Processor) logFor(s Strategy, n int) *octaindex.Logger {
	return p.opts.logger.WithStrategy(s.String()).WithCount(n)
}

// resolve maps the configured strategy to a concrete one for a batch of
// n items. gpuOp reports whether the operation has a GPU kernel.
func (p *Processor) resolve(n int, gpuOp bool) (Strategy, error) {
	switch p.opts.strategy {
	case StrategyScalar:
		return StrategyScalar, nil
	case StrategyVector:
		if !curve.HasVectorUnit() {
			return 0, fmt.Errorf("vector kernels not enabled on this CPU: %w", octaindex.ErrBackendUnavailable)
		}
		return StrategyVector, nil
	case StrategyParallel:
		return StrategyParallel, nil
	case StrategyGPU:
		if !gpuOp {
			return 0, fmt.Errorf("operation has no GPU kernel: %w", octaindex.ErrBackendUnavailable)
		}
		if !p.gpuReady() {
			return 0, fmt.Errorf("no GPU backend configured: %w", octaindex.ErrBackendUnavailable)
		}
		return StrategyGPU, nil
	default:
		gpuMin := 0
		if p.opts.gpu != nil {
			gpuMin = p.opts.gpu.MinBatch()
		}
		return Select(n, Capability{
			Vector:            curve.HasVectorUnit(),
			Workers:           p.opts.workers,
			GPU:               gpuOp && p.gpuReady(),
			GPUMinBatch:       gpuMin,
			ParallelThreshold: p.opts.parallelThreshold,
			GPUThreshold:      p.opts.gpuThreshold,
		}), nil
	}
}

// runChunked fans a range body out across workers. Errors are collected
// per chunk and the lowest-index failure is reported, so the error a
// caller sees does not depend on goroutine scheduling.
func (p *Processor) runChunked(ctx context.Context, n int, body func(lo, hi int) error) error {
	workers := p.opts.workers
	if workers < 1 {
		workers = 1
	}
	chunk := (n + workers - 1) / workers
	if chunk < 1 {
		chunk = 1
	}

	errs := make([]error, (n+chunk-1)/chunk)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for idx, lo := 0, 0; lo < n; idx, lo = idx+1, lo+chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			errs[idx] = body(lo, hi)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// dispatch runs a CPU-side operation under the resolved strategy.
// scalar and vector must be interchangeable element-wise bodies.
func (p *Processor) dispatch(ctx context.Context, op string, n int, strategy Strategy, scalar, vector func(lo, hi int) error) error {
	var err error

	switch strategy {
	case StrategyScalar:
		err = scalar(0, n)
	case StrategyVector:
		err = vector(0, n)
	case StrategyParallel:
		body := scalar
		if curve.HasVectorUnit() {
			body = vector
		}
		err = p.runChunked(ctx, n, body)
	default:
		err = fmt.Errorf("strategy %s not dispatchable on CPU: %w", strategy, octaindex.ErrBackendUnavailable)
	}

	p.logFor(strategy, n).LogBatch(ctx, op, err)

	return err
}
