// Package gpu provides a WebGPU compute backend for bulk neighbor
// derivation on Route64 keys.
//
// The backend runs on wgpu-native (Vulkan, Metal, DX12) via
// cogentcore/webgpu. WGSL has no 64-bit integers, so keys cross the bus
// as vec2<u32> pairs and the kernel does the field math on split words.
// The shader source is assembled at startup from the same offset table
// and bit-layout constants the CPU kernels use, so the backends cannot
// drift apart.
//
// The kernel writes 14 consecutive output slots per input key. A
// neighbor candidate outside the signed 20-bit coordinate range is
// written as the sentinel 0, which is never a valid key and means no
// neighbor exists in that direction; the CPU paths emit the same
// sentinel, so output is bit-identical across backends.
package gpu
