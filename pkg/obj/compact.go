package obj

import "sort"

// IndexMap renumbers a set of original 1-based indices into 1..Len(),
// preserving their relative order.
type IndexMap struct {
	originals []int       // ascending; originals[n-1] maps to n
	index     map[int]int // original -> new
}

// Compact builds the dense renumbering of set.
func Compact(set IndexSet) IndexMap {
	originals := make([]int, 0, len(set))
	for i := range set {
		originals = append(originals, i)
	}
	sort.Ints(originals)

	index := make(map[int]int, len(originals))
	for rank, orig := range originals {
		index[orig] = rank + 1
	}
	return IndexMap{originals: originals, index: index}
}

// Lookup returns the new index for an original index.
func (m IndexMap) Lookup(orig int) (int, bool) {
	n, ok := m.index[orig]
	return n, ok
}

// Len returns the number of mapped indices.
func (m IndexMap) Len() int {
	return len(m.originals)
}

// Originals returns the original indices ordered by their new index.
// The returned slice must not be modified.
func (m IndexMap) Originals() []int {
	return m.originals
}
