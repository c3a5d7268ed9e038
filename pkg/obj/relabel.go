package obj

// Relabel rewrites face references into the compacted index ranges.
// A texture reference missing from textures is dropped for that element only.
func Relabel(faces []Face, positions, textures IndexMap) []Face {
	out := make([]Face, len(faces))
	for i, face := range faces {
		elems := make([]FaceElement, len(face.Elements))
		for j, e := range face.Elements {
			// Present by construction: Resolve added every position it saw.
			pos, _ := positions.Lookup(e.Position)
			elems[j] = FaceElement{Position: pos}

			if e.HasTexture() {
				if tex, ok := textures.Lookup(e.Texture); ok {
					elems[j].Texture = tex
				}
			}
		}
		out[i] = Face{Elements: elems}
	}
	return out
}
