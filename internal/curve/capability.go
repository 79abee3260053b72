package curve

import (
	"os"
	"strings"
)

// Kernel identifies a Morton kernel implementation.
type Kernel uint8

const (
	// KernelShift is the bit-parallel mask-shift implementation, the
	// default on 64-bit hardware.
	KernelShift Kernel = iota
	// KernelLUT is the byte-wise lookup-table implementation kept for
	// hardware without fast 64-bit barrel shifts.
	KernelLUT
)

func (k Kernel) String() string {
	switch k {
	case KernelShift:
		return "shift"
	case KernelLUT:
		return "lut"
	default:
		return "unknown"
	}
}

// ParseKernel parses a string into a Kernel value.
func ParseKernel(s string) (Kernel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shift":
		return KernelShift, true
	case "lut":
		return KernelLUT, true
	default:
		return KernelShift, false
	}
}

// Package-level state - initialized once at package init.
// No mutex needed: Go guarantees init() runs before any other code.
var (
	activeKernel Kernel
	hasOverride  bool

	// CPU vector capability flags (set by platform-specific init).
	hasAVX2 bool // x86-64 AVX2
	hasNEON bool // ARM64 ASIMD
)

// initCapabilities is called from platform-specific init functions after
// CPU features are detected.
func initCapabilities() {
	if override := os.Getenv("OCTAINDEX_KERNEL"); override != "" {
		if k, ok := ParseKernel(override); ok {
			hasOverride = true
			setKernel(k)
			return
		}
	}
	setKernel(KernelShift)
}

func setKernel(k Kernel) {
	activeKernel = k
	switch k {
	case KernelLUT:
		kernelMortonEncode = mortonEncodeLUT
		kernelMortonDecode = mortonDecodeLUT
	default:
		kernelMortonEncode = mortonEncodeShift
		kernelMortonDecode = mortonDecodeShift
	}
}

// ActiveKernel returns the currently active Morton kernel.
func ActiveKernel() Kernel {
	return activeKernel
}

// IsOverridden returns true if OCTAINDEX_KERNEL was set.
func IsOverridden() bool {
	return hasOverride
}

// HasVectorUnit reports whether the CPU exposes the wide vector unit the
// unrolled batch kernels are tuned for (AVX2 on x86-64, NEON on ARM64).
func HasVectorUnit() bool {
	return hasAVX2 || hasNEON
}
