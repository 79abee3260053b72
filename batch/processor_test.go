package batch

import (
	"bytes"
	"context"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/octaindex"
	"github.com/hupe1980/octaindex/internal/curve"
)

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "auto", StrategyAuto.String())
	assert.Equal(t, "scalar", StrategyScalar.String())
	assert.Equal(t, "vector", StrategyVector.String())
	assert.Equal(t, "parallel", StrategyParallel.String())
	assert.Equal(t, "gpu", StrategyGPU.String())
}

func TestSelect(t *testing.T) {
	caps := Capability{
		Vector:            true,
		Workers:           8,
		GPU:               true,
		GPUMinBatch:       2000,
		ParallelThreshold: 4096,
		GPUThreshold:      1 << 16,
	}

	tests := []struct {
		name     string
		n        int
		caps     Capability
		expected Strategy
	}{
		{"tiny batch goes vector", 10, caps, StrategyVector},
		{"mid batch goes parallel", 10000, caps, StrategyParallel},
		{"huge batch goes gpu", 1 << 20, caps, StrategyGPU},
		{"gpu threshold boundary", 1 << 16, caps, StrategyGPU},
		{"below gpu threshold", 1<<16 - 1, caps, StrategyParallel},
		{"no gpu falls to parallel", 1 << 20, Capability{Vector: true, Workers: 8, ParallelThreshold: 4096}, StrategyParallel},
		{"no vector unit goes scalar", 10, Capability{Workers: 8, ParallelThreshold: 4096}, StrategyScalar},
		{"single core small batch", 10, Capability{Workers: 1, ParallelThreshold: 4096}, StrategyScalar},
		{"gpu min batch respected", 1 << 16, Capability{GPU: true, GPUMinBatch: 1 << 17, GPUThreshold: 1 << 16, Workers: 1}, StrategyScalar},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Select(tc.n, tc.caps))
		})
	}
}

func TestSelectIsPure(t *testing.T) {
	caps := Capability{Vector: true, Workers: 4, ParallelThreshold: 100}
	first := Select(500, caps)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Select(500, caps))
	}
}

func randomCoordinates(t *testing.T, rng *rand.Rand, n int, bound int32) []octaindex.Coordinate {
	t.Helper()
	coords := make([]octaindex.Coordinate, n)
	for i := range coords {
		x := (rng.Int31n(bound) - bound/2) &^ 1
		y := (rng.Int31n(bound) - bound/2) &^ 1
		z := (rng.Int31n(bound) - bound/2) &^ 1
		c, err := octaindex.NewCoordinate(x, y, z)
		require.NoError(t, err)
		coords[i] = c
	}
	return coords
}

// cpuStrategies returns the pinnable CPU strategies usable on this host.
func cpuStrategies() []Strategy {
	s := []Strategy{StrategyScalar, StrategyParallel}
	if curve.HasVectorUnit() {
		s = append(s, StrategyVector)
	}
	return s
}

func TestEncodeDecodeIndex64Equivalence(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(3))
	coords := randomCoordinates(t, rng, 1000, 1024)

	reference := make([]octaindex.Index64, len(coords))
	require.NoError(t, NewProcessor(WithStrategy(StrategyScalar)).EncodeIndex64(ctx, 1, 0, 10, coords, reference))

	for _, strategy := range cpuStrategies() {
		p := NewProcessor(WithStrategy(strategy), WithParallelThreshold(1))
		out := make([]octaindex.Index64, len(coords))
		require.NoError(t, p.EncodeIndex64(ctx, 1, 0, 10, coords, out), "strategy %s", strategy)
		assert.Equal(t, reference, out, "strategy %s", strategy)

		decoded := make([]octaindex.Coordinate, len(coords))
		require.NoError(t, p.DecodeIndex64(ctx, out, decoded), "strategy %s", strategy)
		assert.Equal(t, coords, decoded, "strategy %s", strategy)
	}
}

func TestEncodeDecodeHilbert64Equivalence(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(4))
	coords := randomCoordinates(t, rng, 777, 1024)

	reference := make([]octaindex.Hilbert64, len(coords))
	require.NoError(t, NewProcessor(WithStrategy(StrategyScalar)).EncodeHilbert64(ctx, 2, 1, 10, coords, reference))

	for _, strategy := range cpuStrategies() {
		p := NewProcessor(WithStrategy(strategy), WithParallelThreshold(1))
		out := make([]octaindex.Hilbert64, len(coords))
		require.NoError(t, p.EncodeHilbert64(ctx, 2, 1, 10, coords, out), "strategy %s", strategy)
		assert.Equal(t, reference, out, "strategy %s", strategy)

		decoded := make([]octaindex.Coordinate, len(coords))
		require.NoError(t, p.DecodeHilbert64(ctx, out, decoded), "strategy %s", strategy)
		assert.Equal(t, coords, decoded, "strategy %s", strategy)
	}
}

func TestNeighborsIndex64Equivalence(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(6))
	coords := randomCoordinates(t, rng, 300, 512)

	in := make([]octaindex.Index64, len(coords))
	require.NoError(t, NewProcessor().EncodeIndex64(ctx, 0, 0, 12, coords, in))

	reference := make([]octaindex.Index64, len(in)*octaindex.NeighborCount)
	require.NoError(t, NewProcessor(WithStrategy(StrategyScalar)).NeighborsIndex64(ctx, in, reference))

	for _, strategy := range cpuStrategies() {
		p := NewProcessor(WithStrategy(strategy), WithParallelThreshold(1))
		out := make([]octaindex.Index64, len(in)*octaindex.NeighborCount)
		require.NoError(t, p.NeighborsIndex64(ctx, in, out), "strategy %s", strategy)
		assert.Equal(t, reference, out, "strategy %s", strategy)
	}
}

func TestBatchFailsWholeOnBadInput(t *testing.T) {
	ctx := context.Background()

	good, err := octaindex.NewCoordinate(2, 4, -6)
	require.NoError(t, err)
	edge, err := octaindex.NewCoordinate(15, 15, 15) // fits lod 4, but not lod 3
	require.NoError(t, err)

	coords := []octaindex.Coordinate{good, good, edge, good}
	out := make([]octaindex.Index64, len(coords))

	for _, strategy := range cpuStrategies() {
		p := NewProcessor(WithStrategy(strategy), WithParallelThreshold(1))
		err := p.EncodeIndex64(ctx, 0, 0, 3, coords, out)
		var rerr *octaindex.RangeError
		assert.ErrorAs(t, err, &rerr, "strategy %s", strategy)
	}
}

func TestBatchBufferSizeChecked(t *testing.T) {
	ctx := context.Background()
	p := NewProcessor()

	coords := randomCoordinates(t, rand.New(rand.NewSource(8)), 4, 64)
	var berr *octaindex.BufferSizeError

	err := p.EncodeIndex64(ctx, 0, 0, 10, coords, make([]octaindex.Index64, 3))
	assert.ErrorAs(t, err, &berr)

	in := make([]octaindex.Index64, 4)
	require.NoError(t, p.EncodeIndex64(ctx, 0, 0, 10, coords, in))
	err = p.NeighborsIndex64(ctx, in, make([]octaindex.Index64, 4*octaindex.NeighborCount-1))
	assert.ErrorAs(t, err, &berr)
}

func TestPinnedVectorUnavailable(t *testing.T) {
	if curve.HasVectorUnit() {
		t.Skip("vector unit present on this host")
	}
	p := NewProcessor(WithStrategy(StrategyVector))
	err := p.DecodeIndex64(context.Background(), nil, nil)
	assert.ErrorIs(t, err, octaindex.ErrBackendUnavailable)
}

func TestPinnedGPUWithoutBackend(t *testing.T) {
	p := NewProcessor(WithStrategy(StrategyGPU))

	err := p.NeighborsRoute64(context.Background(), nil, nil)
	assert.ErrorIs(t, err, octaindex.ErrBackendUnavailable)

	// Ops without a GPU kernel reject the pin even with a backend.
	p = NewProcessor(WithStrategy(StrategyGPU), WithGPU(&fakeGPU{}))
	err = p.DecodeIndex64(context.Background(), nil, nil)
	assert.ErrorIs(t, err, octaindex.ErrBackendUnavailable)
}

func TestProcessorLogsStrategyAndCount(t *testing.T) {
	var buf bytes.Buffer
	logger := octaindex.NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	coords := randomCoordinates(t, rand.New(rand.NewSource(11)), 8, 64)
	out := make([]octaindex.Index64, len(coords))

	p := NewProcessor(WithStrategy(StrategyScalar), WithLogger(logger))
	require.NoError(t, p.EncodeIndex64(context.Background(), 0, 0, 10, coords, out))

	logged := buf.String()
	assert.Contains(t, logged, `"strategy":"scalar"`)
	assert.Contains(t, logged, `"count":8`)
	assert.Contains(t, logged, `"op":"encode_index64"`)
}

func TestProcessorContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rng := rand.New(rand.NewSource(9))
	coords := randomCoordinates(t, rng, 10000, 1024)
	out := make([]octaindex.Index64, len(coords))

	p := NewProcessor(WithStrategy(StrategyParallel), WithParallelThreshold(1))
	err := p.EncodeIndex64(ctx, 0, 0, 10, coords, out)
	assert.ErrorIs(t, err, context.Canceled)
}
