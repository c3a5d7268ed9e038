package obj

// IndexSet holds 1-based original vertex indices.
type IndexSet map[int]struct{}

// Add inserts an index.
func (s IndexSet) Add(i int) {
	s[i] = struct{}{}
}

// Contains reports whether i is in the set.
func (s IndexSet) Contains(i int) bool {
	_, ok := s[i]
	return ok
}

// Selection is the result of resolving a list of face indices.
type Selection struct {
	Faces     []Face // in the order requested
	Positions IndexSet
	Textures  IndexSet
}

// Resolve selects faces by 0-based index and collects the vertex and texture
// indices they reference. Duplicate indices select the face again.
func (d *Document) Resolve(indices []int) (*Selection, error) {
	sel := &Selection{
		Faces:     make([]Face, 0, len(indices)),
		Positions: make(IndexSet),
		Textures:  make(IndexSet),
	}

	for _, idx := range indices {
		if idx < 0 || idx >= len(d.Faces) {
			return nil, &IndexOutOfRangeError{Index: idx, Count: len(d.Faces)}
		}
		face := d.Faces[idx]

		for _, e := range face.Elements {
			if e.Position > len(d.Positions) {
				return nil, &ReferenceError{Face: idx, Kind: KindPosition, Index: e.Position, Count: len(d.Positions)}
			}
			sel.Positions.Add(e.Position)

			if !e.HasTexture() {
				continue
			}
			if e.Texture > len(d.Textures) {
				return nil, &ReferenceError{Face: idx, Kind: KindTexture, Index: e.Texture, Count: len(d.Textures)}
			}
			sel.Textures.Add(e.Texture)
		}
		sel.Faces = append(sel.Faces, face)
	}

	return sel, nil
}
