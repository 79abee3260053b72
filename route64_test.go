package octaindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoute64RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		tier    uint8
		x, y, z int32
	}{
		{"origin", 0, 0, 0, 0},
		{"even point", 0, 2, 4, -6},
		{"odd point", 1, 3, 5, -5},
		{"coordinate min", 2, RouteCoordMin, RouteCoordMin, RouteCoordMin},
		{"coordinate max", 3, RouteCoordMax, RouteCoordMax, RouteCoordMax},
		{"mixed extremes", 1, RouteCoordMax, RouteCoordMin + 1, RouteCoordMax},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewRoute64(tc.tier, tc.x, tc.y, tc.z)
			require.NoError(t, err)

			assert.Equal(t, tc.tier, r.Tier())
			assert.Equal(t, tc.x, r.X())
			assert.Equal(t, tc.y, r.Y())
			assert.Equal(t, tc.z, r.Z())

			back, err := Route64FromBits(r.Bits())
			require.NoError(t, err)
			assert.Equal(t, r, back)
		})
	}
}

func TestRoute64Validation(t *testing.T) {
	_, err := NewRoute64(4, 0, 0, 0)
	var terr *TierError
	assert.ErrorAs(t, err, &terr)

	_, err = NewRoute64(0, 1, 2, 2)
	var perr *ParityError
	assert.ErrorAs(t, err, &perr)

	_, err = NewRoute64(0, RouteCoordMax+1, 0, 0)
	var rerr *RangeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "x", rerr.Axis)

	_, err = NewRoute64(0, 0, 0, RouteCoordMin-2)
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "z", rerr.Axis)
}

func TestRoute64FromBitsRevalidates(t *testing.T) {
	// Header tag of another type.
	idx, err := NewIndex64(0, 0, 10, 2, 4, -6)
	require.NoError(t, err)
	_, err = Route64FromBits(idx.Bits())
	var derr *DecodeError
	assert.ErrorAs(t, err, &derr)

	// Correct tag, mixed-parity payload: x=1, y=0, z=0.
	raw := uint64(1)<<62 | uint64(1)<<40
	_, err = Route64FromBits(raw)
	var perr *ParityError
	assert.ErrorAs(t, err, &perr)
}

func TestRoute64Neighbors(t *testing.T) {
	r, err := NewRoute64(2, 2, 4, -6)
	require.NoError(t, err)

	neighbors, err := r.Neighbors()
	require.NoError(t, err)

	seen := make(map[uint64]bool)
	for i, n := range neighbors {
		assert.Equal(t, r.Tier(), n.Tier(), "neighbor %d", i)
		assert.False(t, seen[n.Bits()], "duplicate neighbor at %d", i)
		seen[n.Bits()] = true

		off := Offsets()[i]
		assert.Equal(t, r.X()+off.DX, n.X())
		assert.Equal(t, r.Y()+off.DY, n.Y())
		assert.Equal(t, r.Z()+off.DZ, n.Z())
	}
}

func TestRoute64NeighborsAtRangeBoundary(t *testing.T) {
	// Only the +2 x step leaves the 20-bit range; the other 13
	// directions still derive. The missing slot holds the zero key.
	r, err := NewRoute64(0, RouteCoordMax-1, 0, 0)
	require.NoError(t, err)

	neighbors, err := r.Neighbors()
	require.NoError(t, err)

	assert.Equal(t, Route64{}, neighbors[8])
	assert.Zero(t, neighbors[8].Bits())
	for i, n := range neighbors {
		if i == 8 {
			continue
		}
		require.NotZero(t, n.Bits(), "direction %d", i)
		off := Offsets()[i]
		assert.Equal(t, r.X()+off.DX, n.X(), "direction %d", i)
	}
}

func TestRoute64Distance(t *testing.T) {
	a, err := NewRoute64(0, 0, 0, 0)
	require.NoError(t, err)
	b, err := NewRoute64(0, 2, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 2.0, a.Distance(b))
	assert.Equal(t, int32(2), a.ManhattanDistance(b))
}

func TestRoute64ZeroIsNeverValid(t *testing.T) {
	// The batch kernels use 0 as an out-of-range sentinel; a raw zero
	// must never decode as a Route64.
	_, err := Route64FromBits(0)
	assert.Error(t, err)
}
