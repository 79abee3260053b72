package gpu

import (
	"context"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/hupe1980/octaindex"
	"github.com/hupe1980/octaindex/internal/curve"
)

// defaultMinBatch gates offload: below this size the transfer overhead
// beats the kernel. Measured against the parallel CPU path.
const defaultMinBatch = 2000

type options struct {
	powerPreference wgpu.PowerPreference
	minBatch        int
	logger          *octaindex.Logger
}

// Option configures the WebGPU backend.
type Option func(*options)

// WithPowerPreference selects the adapter class (discrete vs integrated).
func WithPowerPreference(p wgpu.PowerPreference) Option {
	return func(o *options) {
		o.powerPreference = p
	}
}

// WithMinBatch overrides the minimum worthwhile batch size.
func WithMinBatch(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.minBatch = n
		}
	}
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *octaindex.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WebGPU derives Route64 neighbors on a GPU compute queue. It satisfies
// the batch package's GPUBackend contract. Safe for concurrent use: wgpu
// queues serialize submissions.
type WebGPU struct {
	opts     options
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	shader   *wgpu.ShaderModule
	pipeline *wgpu.ComputePipeline
	name     string
}

// New initializes the WebGPU backend: adapter, device, and the compiled
// neighbor kernel. Errors wrap ErrBackendUnavailable so callers can
// treat "no GPU on this host" uniformly. The outcome is logged through
// the configured logger either way.
func New(optFns ...Option) (*WebGPU, error) {
	opts := options{
		powerPreference: wgpu.PowerPreferenceHighPerformance,
		minBatch:        defaultMinBatch,
		logger:          octaindex.NoopLogger(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	g, err := initBackend(opts)
	opts.logger.LogGPUInit(context.Background(), g.Name(), err)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func initBackend(opts options) (*WebGPU, error) {
	g := &WebGPU{opts: opts}

	g.instance = wgpu.CreateInstance(nil)

	adapter, err := g.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: opts.powerPreference,
	})
	if err != nil {
		g.Close()
		return g, fmt.Errorf("request adapter: %v: %w", err, octaindex.ErrBackendUnavailable)
	}
	g.adapter = adapter
	g.name = adapter.GetInfo().Name

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		g.Close()
		return g, fmt.Errorf("request device: %v: %w", err, octaindex.ErrBackendUnavailable)
	}
	g.device = device
	g.queue = device.GetQueue()

	shader, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "route64-neighbors",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: buildNeighborShader()},
	})
	if err != nil {
		g.Close()
		return g, fmt.Errorf("compile shader: %w", err)
	}
	g.shader = shader

	pipeline, err := device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label: "route64-neighbors",
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     shader,
			EntryPoint: "batch_neighbors",
		},
	})
	if err != nil {
		g.Close()
		return g, fmt.Errorf("create pipeline: %w", err)
	}
	g.pipeline = pipeline

	return g, nil
}

// Name identifies the adapter for logs.
func (g *WebGPU) Name() string {
	return g.name
}

// Available reports whether the device and pipeline initialized.
func (g *WebGPU) Available() bool {
	return g != nil && g.device != nil && g.pipeline != nil
}

// MinBatch is the smallest batch worth the transfer overhead.
func (g *WebGPU) MinBatch() int {
	return g.opts.minBatch
}

// NeighborsRoute64 runs the neighbor kernel over raw Route64 keys,
// writing 14 consecutive slots per input into out. Out-of-range
// candidates come back as the sentinel 0. All GPU resources created here
// are released before return on every path.
func (g *WebGPU) NeighborsRoute64(ctx context.Context, in, out []uint64) error {
	if len(out) != len(in)*curve.NeighborCount {
		return &octaindex.BufferSizeError{Want: len(in) * curve.NeighborCount, Got: len(out)}
	}
	if !g.Available() {
		return octaindex.ErrBackendUnavailable
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	outBytes := uint64(len(out)) * 8

	inputBuf, err := g.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "neighbors-input",
		Contents: wgpu.ToBytes(in),
		Usage:    wgpu.BufferUsageStorage,
	})
	if err != nil {
		return fmt.Errorf("create input buffer: %w", err)
	}
	defer inputBuf.Release()

	outputBuf, err := g.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "neighbors-output",
		Size:  outBytes,
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create output buffer: %w", err)
	}
	defer outputBuf.Release()

	stagingBuf, err := g.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "neighbors-staging",
		Size:  outBytes,
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer stagingBuf.Release()

	layout := g.pipeline.GetBindGroupLayout(0)
	defer layout.Release()

	bindGroup, err := g.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "neighbors-bindgroup",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: inputBuf, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: outputBuf, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	defer bindGroup.Release()

	encoder, err := g.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(g.pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.DispatchWorkgroups(uint32((len(in)+workgroupSize-1)/workgroupSize), 1, 1)
	pass.End()
	pass.Release()

	encoder.CopyBufferToBuffer(outputBuf, 0, stagingBuf, 0, outBytes)

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	defer cmd.Release()

	g.queue.Submit(cmd)

	var mapStatus wgpu.BufferMapAsyncStatus
	if err := stagingBuf.MapAsync(wgpu.MapModeRead, 0, outBytes, func(status wgpu.BufferMapAsyncStatus) {
		mapStatus = status
	}); err != nil {
		return fmt.Errorf("map staging buffer: %w", err)
	}
	g.device.Poll(true, nil)
	if mapStatus != wgpu.BufferMapAsyncStatusSuccess {
		return fmt.Errorf("map staging buffer: status %v", mapStatus)
	}

	copy(out, wgpu.FromBytes[uint64](stagingBuf.GetMappedRange(0, uint(outBytes))))
	stagingBuf.Unmap()

	return nil
}

// Close releases the device, adapter, and pipeline. The backend is
// unusable afterwards.
func (g *WebGPU) Close() error {
	if g.pipeline != nil {
		g.pipeline.Release()
		g.pipeline = nil
	}
	if g.shader != nil {
		g.shader.Release()
		g.shader = nil
	}
	if g.queue != nil {
		g.queue.Release()
		g.queue = nil
	}
	if g.device != nil {
		g.device.Release()
		g.device = nil
	}
	if g.adapter != nil {
		g.adapter.Release()
		g.adapter = nil
	}
	if g.instance != nil {
		g.instance.Release()
		g.instance = nil
	}
	return nil
}
