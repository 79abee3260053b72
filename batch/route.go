package batch

import (
	"context"
	"fmt"

	"github.com/hupe1980/octaindex"
	"github.com/hupe1980/octaindex/internal/curve"
)

// NeighborsRoute64 derives the 14 neighbors of every input key, writing
// 14 consecutive output slots per input in offset-table order. out must
// have len(in)*NeighborCount slots. A direction whose candidate leaves
// the coordinate range holds the zero Route64 in its slot, on every
// backend.
//
// This is the one operation with a GPU kernel. Under StrategyAuto a GPU
// backend failure falls back to the parallel path; a pinned StrategyGPU
// surfaces the failure instead.
func (p *Processor) NeighborsRoute64(ctx context.Context, in []octaindex.Route64, out []octaindex.Route64) error {
	if err := checkBuffers(len(in), len(out), octaindex.NeighborCount); err != nil {
		return err
	}

	strategy, err := p.resolve(len(in), true)
	if err != nil {
		return err
	}

	if strategy == StrategyGPU {
		backendErr := p.gpuNeighborsRoute64(ctx, in, out)
		switch {
		case backendErr == nil:
			p.logFor(strategy, len(in)).LogBatch(ctx, "neighbors_route64", nil)
			return nil
		case p.opts.strategy == StrategyGPU:
			err := fmt.Errorf("gpu backend %s: %w", p.opts.gpu.Name(), backendErr)
			p.logFor(strategy, len(in)).LogBatch(ctx, "neighbors_route64", err)
			return err
		default:
			p.opts.logger.LogFallback(ctx, StrategyGPU.String(), StrategyParallel.String(), backendErr)
			strategy = StrategyParallel
		}
	}

	scalar := func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			nb, err := in[i].Neighbors()
			if err != nil {
				return err
			}
			copy(out[i*octaindex.NeighborCount:(i+1)*octaindex.NeighborCount], nb[:])
		}
		return nil
	}

	vector := func(lo, hi int) error {
		var raw [vecLanes]uint64
		var rawOut [vecLanes * octaindex.NeighborCount]uint64
		for base := lo; base < hi; base += vecLanes {
			n := min(vecLanes, hi-base)
			for i := 0; i < n; i++ {
				raw[i] = in[base+i].Bits()
			}
			curve.RouteNeighborsBatch(raw[:n], rawOut[:n*octaindex.NeighborCount])
			for i := 0; i < n*octaindex.NeighborCount; i++ {
				if rawOut[i] == 0 {
					out[base*octaindex.NeighborCount+i] = octaindex.Route64{}
					continue
				}
				r, err := octaindex.Route64FromBits(rawOut[i])
				if err != nil {
					return err
				}
				out[base*octaindex.NeighborCount+i] = r
			}
		}
		return nil
	}

	return p.dispatch(ctx, "neighbors_route64", len(in), strategy, scalar, vector)
}

// gpuNeighborsRoute64 offloads a derivation to the GPU backend. The
// kernel's zero sentinel maps straight to the zero Route64, so device
// output matches the CPU paths slot for slot. A non-nil return means the
// device could not run the kernel at all.
func (p *Processor) gpuNeighborsRoute64(ctx context.Context, in []octaindex.Route64, out []octaindex.Route64) error {
	raw := make([]uint64, len(in))
	for i := range in {
		raw[i] = in[i].Bits()
	}
	rawOut := make([]uint64, len(out))

	if err := p.opts.gpu.NeighborsRoute64(ctx, raw, rawOut); err != nil {
		return err
	}

	for i, v := range rawOut {
		if v == 0 {
			out[i] = octaindex.Route64{}
			continue
		}
		r, err := octaindex.Route64FromBits(v)
		if err != nil {
			return fmt.Errorf("gpu backend %s returned malformed key: %w", p.opts.gpu.Name(), err)
		}
		out[i] = r
	}
	return nil
}
