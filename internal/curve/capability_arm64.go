//go:build arm64

package curve

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

func init() {
	// golang.org/x/sys/cpu does not populate feature flags on darwin;
	// ASIMD is architecturally guaranteed on arm64 there.
	hasNEON = cpu.ARM64.HasASIMD || runtime.GOOS == "darwin"
	initCapabilities()
}
