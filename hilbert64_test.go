package octaindex

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHilbert64RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(21))

	for i := 0; i < 500; i++ {
		x := int32(rng.Intn(2048)-1024) &^ 1
		y := int32(rng.Intn(2048)-1024) &^ 1
		z := int32(rng.Intn(2048)-1024) &^ 1

		id, err := NewHilbert64(1, 0, 11, x, y, z)
		require.NoError(t, err)

		assert.Equal(t, x, id.X())
		assert.Equal(t, y, id.Y())
		assert.Equal(t, z, id.Z())
		assert.Equal(t, uint8(11), id.LOD())

		back, err := Hilbert64FromBits(id.Bits())
		require.NoError(t, err)
		assert.Equal(t, id, back)
	}
}

func TestHilbert64FromBitsRejectsForeignTags(t *testing.T) {
	idx, err := NewIndex64(0, 0, 10, 2, 4, -6)
	require.NoError(t, err)

	_, err = Hilbert64FromBits(idx.Bits())
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "Hilbert64", derr.Kind)
}

func TestHilbert64Neighbors(t *testing.T) {
	id, err := NewHilbert64(0, 0, 10, 2, 4, -6)
	require.NoError(t, err)

	neighbors, err := id.Neighbors()
	require.NoError(t, err)

	// Same cells as the Morton-keyed derivation, reordered only by the
	// payload encoding.
	idx, err := id.ToIndex64()
	require.NoError(t, err)
	mortonNeighbors, err := idx.Neighbors()
	require.NoError(t, err)

	for i := range neighbors {
		assert.Equal(t, mortonNeighbors[i].X(), neighbors[i].X(), "neighbor %d", i)
		assert.Equal(t, mortonNeighbors[i].Y(), neighbors[i].Y(), "neighbor %d", i)
		assert.Equal(t, mortonNeighbors[i].Z(), neighbors[i].Z(), "neighbor %d", i)
	}
}

func TestHilbert64NeighborsAtRangeBoundary(t *testing.T) {
	id, err := NewHilbert64(0, 0, 4, 14, 0, 0)
	require.NoError(t, err)

	neighbors, err := id.Neighbors()
	require.NoError(t, err)

	assert.Equal(t, Hilbert64{}, neighbors[8], "the +2 x step has no neighbor")
	for i, n := range neighbors {
		if i == 8 {
			continue
		}
		require.NotEqual(t, Hilbert64{}, n, "direction %d", i)
	}
}

func TestHilbert64ParentChildren(t *testing.T) {
	id, err := NewHilbert64(0, 0, 6, 4, 4, 4)
	require.NoError(t, err)

	parent, err := id.Parent()
	require.NoError(t, err)
	assert.Equal(t, uint8(5), parent.LOD())
	assert.Equal(t, [3]int32{2, 2, 2}, [3]int32{parent.X(), parent.Y(), parent.Z()})

	children, err := id.Children()
	require.NoError(t, err)
	for i, ch := range children {
		back, err := ch.Parent()
		require.NoError(t, err)
		assert.Equal(t, id, back, "child %d", i)
	}
}

func TestHilbert64PayloadDiffersFromMorton(t *testing.T) {
	// Same cell, different space-filling curve: payloads must disagree
	// somewhere or one of the codecs is wired to the wrong kernel.
	differs := false
	for _, c := range [][3]int32{{2, 4, -6}, {10, 10, 10}, {-8, 6, -2}, {3, 5, -5}} {
		idx, err := NewIndex64(0, 0, 10, c[0], c[1], c[2])
		require.NoError(t, err)
		h, err := NewHilbert64(0, 0, 10, c[0], c[1], c[2])
		require.NoError(t, err)
		if idx.Morton() != h.Hilbert() {
			differs = true
		}
	}
	assert.True(t, differs)
}
