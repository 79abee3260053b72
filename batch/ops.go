package batch

import (
	"context"

	"github.com/hupe1980/octaindex"
	"github.com/hupe1980/octaindex/internal/curve"
)

func checkBuffers(inLen, outLen, perInput int) error {
	if outLen != inLen*perInput {
		return &octaindex.BufferSizeError{Want: inLen * perInput, Got: outLen}
	}
	return nil
}

func checkTierLOD(tier, lod uint8) error {
	if tier > 3 {
		return &octaindex.TierError{Tier: tier}
	}
	if lod > octaindex.MaxLOD {
		return &octaindex.LODError{LOD: lod, Max: octaindex.MaxLOD}
	}
	return nil
}

func axisRangeError(axis string, v, min, max int32) error {
	return &octaindex.RangeError{Axis: axis, Value: int64(v), Min: int64(min), Max: int64(max)}
}

// EncodeIndex64 encodes coordinates into Index64 keys sharing one frame,
// tier, and LOD. out must have len(coords) slots.
func (p *Processor) EncodeIndex64(ctx context.Context, frame octaindex.FrameID, tier, lod uint8, coords []octaindex.Coordinate, out []octaindex.Index64) error {
	if err := checkBuffers(len(coords), len(out), 1); err != nil {
		return err
	}
	if err := checkTierLOD(tier, lod); err != nil {
		return err
	}

	strategy, err := p.resolve(len(coords), false)
	if err != nil {
		return err
	}

	scalar := func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			id, err := octaindex.Index64FromCoordinate(frame, tier, lod, coords[i])
			if err != nil {
				return err
			}
			out[i] = id
		}
		return nil
	}

	vector := func(lo, hi int) error {
		minC, maxC := curve.LODBounds(lod)
		var xs, ys, zs [vecLanes]uint16
		var keys [vecLanes]uint64
		for base := lo; base < hi; base += vecLanes {
			n := min(vecLanes, hi-base)
			for i := 0; i < n; i++ {
				c := coords[base+i]
				x, y, z := c.X(), c.Y(), c.Z()
				if x < minC || x > maxC {
					return axisRangeError("x", x, minC, maxC)
				}
				if y < minC || y > maxC {
					return axisRangeError("y", y, minC, maxC)
				}
				if z < minC || z > maxC {
					return axisRangeError("z", z, minC, maxC)
				}
				xs[i], ys[i], zs[i] = uint16(x), uint16(y), uint16(z)
			}
			curve.MortonEncodeBatch(xs[:n], ys[:n], zs[:n], keys[:n])
			for i := 0; i < n; i++ {
				id, err := octaindex.Index64FromBits(curve.PackKey(curve.HdrIndex, uint8(frame), tier, lod, keys[i]))
				if err != nil {
					return err
				}
				out[base+i] = id
			}
		}
		return nil
	}

	return p.dispatch(ctx, "encode_index64", len(coords), strategy, scalar, vector)
}

// DecodeIndex64 decodes keys back into lattice coordinates. out must
// have len(in) slots.
func (p *Processor) DecodeIndex64(ctx context.Context, in []octaindex.Index64, out []octaindex.Coordinate) error {
	if err := checkBuffers(len(in), len(out), 1); err != nil {
		return err
	}

	strategy, err := p.resolve(len(in), false)
	if err != nil {
		return err
	}

	scalar := func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			c, err := in[i].Coordinate()
			if err != nil {
				return err
			}
			out[i] = c
		}
		return nil
	}

	vector := func(lo, hi int) error {
		var keys [vecLanes]uint64
		var xs, ys, zs [vecLanes]uint16
		for base := lo; base < hi; base += vecLanes {
			n := min(vecLanes, hi-base)
			for i := 0; i < n; i++ {
				keys[i] = in[base+i].Morton()
			}
			curve.MortonDecodeBatch(keys[:n], xs[:n], ys[:n], zs[:n])
			for i := 0; i < n; i++ {
				c, err := octaindex.NewCoordinate(int32(int16(xs[i])), int32(int16(ys[i])), int32(int16(zs[i])))
				if err != nil {
					return err
				}
				out[base+i] = c
			}
		}
		return nil
	}

	return p.dispatch(ctx, "decode_index64", len(in), strategy, scalar, vector)
}

// NeighborsIndex64 derives the 14 neighbors of every input key, writing
// 14 consecutive output slots per input in offset-table order. out must
// have len(in)*NeighborCount slots.
func (p *Processor) NeighborsIndex64(ctx context.Context, in []octaindex.Index64, out []octaindex.Index64) error {
	if err := checkBuffers(len(in), len(out), octaindex.NeighborCount); err != nil {
		return err
	}

	strategy, err := p.resolve(len(in), false)
	if err != nil {
		return err
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

	// Morton neighbor derivation is decode-dominated and has no unrolled
	// kernel; the vector strategy shares the scalar body.
	return p.dispatch(ctx, "neighbors_index64", len(in), strategy, scalar, scalar)
}

// EncodeHilbert64 encodes coordinates into Hilbert64 keys sharing one
// frame, tier, and LOD. out must have len(coords) slots.
func (p *Processor) EncodeHilbert64(ctx context.Context, frame octaindex.FrameID, tier, lod uint8, coords []octaindex.Coordinate, out []octaindex.Hilbert64) error {
	if err := checkBuffers(len(coords), len(out), 1); err != nil {
		return err
	}
	if err := checkTierLOD(tier, lod); err != nil {
		return err
	}

	strategy, err := p.resolve(len(coords), false)
	if err != nil {
		return err
	}

	scalar := func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			id, err := octaindex.Hilbert64FromCoordinate(frame, tier, lod, coords[i])
			if err != nil {
				return err
			}
			out[i] = id
		}
		return nil
	}

	vector := func(lo, hi int) error {
		minC, maxC := curve.LODBounds(lod)
		var xs, ys, zs [vecLanes]uint16
		var keys [vecLanes]uint64
		for base := lo; base < hi; base += vecLanes {
			n := min(vecLanes, hi-base)
			for i := 0; i < n; i++ {
				c := coords[base+i]
				x, y, z := c.X(), c.Y(), c.Z()
				if x < minC || x > maxC {
					return axisRangeError("x", x, minC, maxC)
				}
				if y < minC || y > maxC {
					return axisRangeError("y", y, minC, maxC)
				}
				if z < minC || z > maxC {
					return axisRangeError("z", z, minC, maxC)
				}
				xs[i], ys[i], zs[i] = uint16(x), uint16(y), uint16(z)
			}
			curve.HilbertEncodeBatch(xs[:n], ys[:n], zs[:n], keys[:n])
			for i := 0; i < n; i++ {
				id, err := octaindex.Hilbert64FromBits(curve.PackKey(curve.HdrHilbert, uint8(frame), tier, lod, keys[i]))
				if err != nil {
					return err
				}
				out[base+i] = id
			}
		}
		return nil
	}

	return p.dispatch(ctx, "encode_hilbert64", len(coords), strategy, scalar, vector)
}

// DecodeHilbert64 decodes keys back into lattice coordinates. out must
// have len(in) slots.
func (p *Processor) DecodeHilbert64(ctx context.Context, in []octaindex.Hilbert64, out []octaindex.Coordinate) error {
	if err := checkBuffers(len(in), len(out), 1); err != nil {
		return err
	}

	strategy, err := p.resolve(len(in), false)
	if err != nil {
		return err
	}

	scalar := func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			c, err := in[i].Coordinate()
			if err != nil {
				return err
			}
			out[i] = c
		}
		return nil
	}

	vector := func(lo, hi int) error {
		var keys [vecLanes]uint64
		var xs, ys, zs [vecLanes]uint16
		for base := lo; base < hi; base += vecLanes {
			n := min(vecLanes, hi-base)
			for i := 0; i < n; i++ {
				keys[i] = in[base+i].Hilbert()
			}
			curve.HilbertDecodeBatch(keys[:n], xs[:n], ys[:n], zs[:n])
			for i := 0; i < n; i++ {
				c, err := octaindex.NewCoordinate(int32(int16(xs[i])), int32(int16(ys[i])), int32(int16(zs[i])))
				if err != nil {
					return err
				}
				out[base+i] = c
			}
		}
		return nil
	}

	return p.dispatch(ctx, "decode_hilbert64", len(in), strategy, scalar, vector)
}
