package gpu

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/octaindex/internal/curve"
)

func TestNeighborShaderCarriesOffsetTable(t *testing.T) {
	src := buildNeighborShader()

	// Every offset from the canonical table must appear verbatim; the
	// shader is generated, never hand-edited, so a missing entry means
	// the generator drifted.
	for _, off := range curve.NeighborOffsets {
		needle := fmt.Sprintf("vec3<i32>(%d, %d, %d)", off[0], off[1], off[2])
		assert.Contains(t, src, needle)
	}

	assert.Equal(t, 1, strings.Count(src, "@compute"))
	assert.Contains(t, src, fmt.Sprintf("@workgroup_size(%d)", workgroupSize))
	assert.Contains(t, src, "fn batch_neighbors")
}

func TestNeighborShaderCarriesRouteBounds(t *testing.T) {
	src := buildNeighborShader()

	assert.Contains(t, src, fmt.Sprintf("const COORD_MIN: i32 = %d;", curve.RouteCoordMin))
	assert.Contains(t, src, fmt.Sprintf("const COORD_MAX: i32 = %d;", curve.RouteCoordMax))

	// Field math constants for the split-word layout.
	assert.Contains(t, src, "(hi >> 28u) & 0x3u", "tier extraction")
	assert.Contains(t, src, "(hi >> 8u) & 0xFFFFFu", "x extraction")
	assert.Contains(t, src, "(1u << 30u)", "Route64 header tag in the high word")
}

func TestNeighborShaderSentinel(t *testing.T) {
	src := buildNeighborShader()
	assert.Contains(t, src, "vec2<u32>(0u, 0u)", "out-of-range candidates must zero the slot")
}
