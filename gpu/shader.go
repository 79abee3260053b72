package gpu

import (
	"fmt"
	"strings"

	"github.com/hupe1980/octaindex/internal/curve"
)

// workgroupSize is the thread count per dispatch group. 256 is the
// portable sweet spot across Vulkan, Metal, and DX12 limits.
const workgroupSize = 256

// buildNeighborShader renders the WGSL compute kernel from the canonical
// offset table and bit-layout constants. Keys are split into (lo, hi)
// u32 words; little-endian buffer order puts the low word in .x.
func buildNeighborShader() string {
	var b strings.Builder

	fmt.Fprintf(&b, `@group(0) @binding(0) var<storage, read> input: array<vec2<u32>>;
@group(0) @binding(1) var<storage, read_write> output: array<vec2<u32>>;

const COORD_MIN: i32 = %d;
const COORD_MAX: i32 = %d;

fn sext20(v: u32) -> i32 {
    return i32(v << 12u) >> 12u;
}

@compute @workgroup_size(%d)
fn batch_neighbors(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = gid.x;
    if (i >= arrayLength(&input)) {
        return;
    }

`, curve.RouteCoordMin, curve.RouteCoordMax, workgroupSize)

	b.WriteString(`    var offsets = array<vec3<i32>, `)
	fmt.Fprintf(&b, "%du>(\n", curve.NeighborCount)
	for i, off := range curve.NeighborOffsets {
		sep := ","
		if i == curve.NeighborCount-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "        vec3<i32>(%d, %d, %d)%s\n", off[0], off[1], off[2], sep)
	}
	b.WriteString("    );\n")

	// Field extraction on split words: tier sits above the 32-bit
	// boundary, x fully in hi, y straddles, z fully in lo.
	fmt.Fprintf(&b, `
    let lo = input[i].x;
    let hi = input[i].y;
    let tier = (hi >> %du) & 0x3u;
    let x = sext20((hi >> %du) & 0xFFFFFu);
    let y = sext20(((hi & 0xFFu) << 12u) | (lo >> 20u));
    let z = sext20(lo & 0xFFFFFu);

    for (var k = 0u; k < %du; k = k + 1u) {
        let nx = x + offsets[k].x;
        let ny = y + offsets[k].y;
        let nz = z + offsets[k].z;

        var result = vec2<u32>(0u, 0u);
        if (nx >= COORD_MIN && nx <= COORD_MAX &&
            ny >= COORD_MIN && ny <= COORD_MAX &&
            nz >= COORD_MIN && nz <= COORD_MAX) {
            let ux = u32(nx) & 0xFFFFFu;
            let uy = u32(ny) & 0xFFFFFu;
            let uz = u32(nz) & 0xFFFFFu;
            let oh = (1u << 30u) | (tier << %du) | (ux << %du) | (uy >> 12u);
            let ol = ((uy & 0xFFFu) << 20u) | uz;
            result = vec2<u32>(ol, oh);
        }
        output[i * %du + k] = result;
    }
}
`,
		curve.KeyShiftTier-32,
		curve.RouteShiftX-32,
		curve.NeighborCount,
		curve.KeyShiftTier-32,
		curve.RouteShiftX-32,
		curve.NeighborCount,
	)

	return b.String()
}
