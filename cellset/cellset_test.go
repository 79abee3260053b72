package cellset

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/octaindex"
)

func mustIndex(t *testing.T, x, y, z int32) octaindex.Index64 {
	t.Helper()
	id, err := octaindex.NewIndex64(0, 0, 10, x, y, z)
	require.NoError(t, err)
	return id
}

func TestSetBasics(t *testing.T) {
	s := New()
	assert.True(t, s.IsEmpty())

	a := mustIndex(t, 2, 4, -6)
	b := mustIndex(t, 0, 0, 0)

	s.Add(a)
	s.Add(b)
	s.Add(a) // idempotent

	assert.False(t, s.IsEmpty())
	assert.Equal(t, uint64(2), s.Cardinality())
	assert.True(t, s.Contains(a))
	assert.True(t, s.Contains(b))

	s.Remove(b)
	assert.False(t, s.Contains(b))
	assert.Equal(t, uint64(1), s.Cardinality())

	s.Clear()
	assert.True(t, s.IsEmpty())
}

func TestSetIteratorOrder(t *testing.T) {
	ids := []octaindex.Index64{
		mustIndex(t, 6, 6, 6),
		mustIndex(t, 0, 0, 0),
		mustIndex(t, 2, 4, -6),
		mustIndex(t, -2, -2, -2),
	}

	s := Of(ids...)

	var prev uint64
	count := 0
	for id := range s.Iterator() {
		if count > 0 {
			assert.Greater(t, id.Bits(), prev)
		}
		prev = id.Bits()
		count++
	}
	assert.Equal(t, len(ids), count)
}

func TestSetAddNeighbors(t *testing.T) {
	s := New()
	id := mustIndex(t, 2, 4, -6)

	require.NoError(t, s.AddNeighbors(id))
	assert.Equal(t, uint64(octaindex.NeighborCount), s.Cardinality())
	assert.False(t, s.Contains(id), "the cell itself is not its own neighbor")

	nb, err := id.Neighbors()
	require.NoError(t, err)
	for _, n := range nb {
		assert.True(t, s.Contains(n))
	}
}

func TestSetAddNeighborsAtBoundarySkipsMissing(t *testing.T) {
	// x=14 at LOD 4: the +2 step has no neighbor, the other 13 insert.
	edge, err := octaindex.NewIndex64(0, 0, 4, 14, 0, 0)
	require.NoError(t, err)

	s := New()
	require.NoError(t, s.AddNeighbors(edge))
	assert.Equal(t, uint64(octaindex.NeighborCount-1), s.Cardinality())

	nb, err := edge.Neighbors()
	require.NoError(t, err)
	for i, n := range nb {
		if n == (octaindex.Index64{}) {
			continue
		}
		assert.True(t, s.Contains(n), "direction %d", i)
	}
}

func TestSetAlgebra(t *testing.T) {
	a := mustIndex(t, 0, 0, 0)
	b := mustIndex(t, 2, 2, 2)
	c := mustIndex(t, 4, 4, 4)

	left := Of(a, b)
	right := Of(b, c)

	union := left.Clone()
	union.Or(right)
	assert.Equal(t, uint64(3), union.Cardinality())

	inter := left.Clone()
	inter.And(right)
	assert.Equal(t, uint64(1), inter.Cardinality())
	assert.True(t, inter.Contains(b))

	diff := left.Clone()
	diff.AndNot(right)
	assert.Equal(t, uint64(1), diff.Cardinality())
	assert.True(t, diff.Contains(a))

	// Clone isolation: mutations must not leak back.
	assert.Equal(t, uint64(2), left.Cardinality())
}

func TestSetSerializationRoundTrip(t *testing.T) {
	s := Of(
		mustIndex(t, 0, 0, 0),
		mustIndex(t, 2, 4, -6),
		mustIndex(t, 100, -100, 0),
	)

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)

	restored := New()
	_, err = restored.ReadFrom(&buf)
	require.NoError(t, err)

	assert.Equal(t, s.Cardinality(), restored.Cardinality())
	for id := range s.Iterator() {
		assert.True(t, restored.Contains(id))
	}
}
