// Package cellset provides compressed sets of lattice cells.
//
// A Set holds Index64 keys as raw 64-bit values in a roaring bitmap, so
// sparse regions with locality (which Morton keys have by construction)
// compress well. Iteration yields keys in raw-value order, which for
// keys sharing a frame, tier, and LOD is Morton order.
package cellset

import (
	"io"
	"iter"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/octaindex"
)

// Set is a compressed set of Index64 cells. It wraps a 64-bit roaring
// bitmap. Not safe for concurrent mutation.
type Set struct {
	rb *roaring64.Bitmap
}

// New creates an empty cell set.
func New() *Set {
	return &Set{
		rb: roaring64.New(),
	}
}

// Of creates a cell set holding the given cells.
func Of(ids ...octaindex.Index64) *Set {
	s := New()
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts a cell.
func (s *Set) Add(id octaindex.Index64) {
	s.rb.Add(id.Bits())
}

// AddNeighbors inserts the neighbors of a cell. Directions falling
// outside the cell's LOD range have no neighbor key and are skipped, so
// a boundary cell contributes fewer than 14 entries.
func (s *Set) AddNeighbors(id octaindex.Index64) error {
	nb, err := id.Neighbors()
	if err != nil {
		return err
	}
	for _, n := range nb {
		if n == (octaindex.Index64{}) {
			continue
		}
		s.rb.Add(n.Bits())
	}
	return nil
}

// Remove deletes a cell.
func (s *Set) Remove(id octaindex.Index64) {
	s.rb.Remove(id.Bits())
}

// Contains checks whether a cell is in the set.
func (s *Set) Contains(id octaindex.Index64) bool {
	return s.rb.Contains(id.Bits())
}

// IsEmpty returns true if the set is empty.
func (s *Set) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Cardinality returns the number of cells in the set.
func (s *Set) Cardinality() uint64 {
	return s.rb.GetCardinality()
}

// Clear removes all cells from the set.
func (s *Set) Clear() {
	s.rb.Clear()
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	return &Set{
		rb: s.rb.Clone(),
	}
}

// And computes the intersection with another set, in place.
func (s *Set) And(other *Set) {
	s.rb.And(other.rb)
}

// Or computes the union with another set, in place.
func (s *Set) Or(other *Set) {
	s.rb.Or(other.rb)
}

// AndNot removes the cells of another set, in place.
func (s *Set) AndNot(other *Set) {
	s.rb.AndNot(other.rb)
}

// Iterator yields cells in ascending raw-key order.
func (s *Set) Iterator() iter.Seq[octaindex.Index64] {
	return func(yield func(octaindex.Index64) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			id, err := octaindex.Index64FromBits(it.Next())
			if err != nil {
				// A foreign header tag cannot enter through Add, which
				// only accepts Index64 values.
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}

// WriteTo serializes the set in the portable roaring64 format.
func (s *Set) WriteTo(w io.Writer) (int64, error) {
	return s.rb.WriteTo(w)
}

// ReadFrom replaces the set's contents from serialized form.
func (s *Set) ReadFrom(r io.Reader) (int64, error) {
	return s.rb.ReadFrom(r)
}
