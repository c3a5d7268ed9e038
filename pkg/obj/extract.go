package obj

import (
	"bytes"
	"io"
)

// Extract parses text, keeps only the faces at faceIndices (in that order)
// and returns a document containing just the geometry they reference, with
// vertex and texture indices renumbered densely from 1.
func Extract(text string, faceIndices []int) (string, error) {
	doc, err := ParseString(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := ExtractDocument(doc, faceIndices, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ExtractDocument writes the extraction of doc to w. Selection errors are
// reported before anything is written.
func ExtractDocument(doc *Document, faceIndices []int, w io.Writer) error {
	sel, err := doc.Resolve(faceIndices)
	if err != nil {
		return err
	}

	positions := Compact(sel.Positions)
	textures := Compact(sel.Textures)
	faces := Relabel(sel.Faces, positions, textures)

	return WriteExtract(w, doc, positions, textures, faces)
}
