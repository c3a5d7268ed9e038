// Package obj parses face-indexed Wavefront OBJ text and extracts face subsets
// into new, self-contained documents.
package obj

import (
	"fmt"
	"strconv"
	"strings"
)

// RecordKind classifies a parsed line.
type RecordKind uint8

// Record kinds.
const (
	KindVerbatim RecordKind = iota // Passed through unchanged (mtllib, usemtl, comments, vn, ...)
	KindPosition                   // "v x y z"
	KindTexture                    // "vt u v"
	KindFace                       // "f a b c ..."
)

// String returns a human-readable record kind name.
func (k RecordKind) String() string {
	switch k {
	case KindVerbatim:
		return "Verbatim"
	case KindPosition:
		return "Position"
	case KindTexture:
		return "Texture"
	case KindFace:
		return "Face"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Record points at one line of the source document.
// Index is the 0-based offset into the Document slice selected by Kind.
type Record struct {
	Kind  RecordKind
	Index int
}

// PositionVertex is a "v" line kept in its original text form.
type PositionVertex struct {
	Text string
}

// Coords parses the numeric fields following the "v" token.
func (v PositionVertex) Coords() ([]float64, error) {
	return parseCoords(v.Text)
}

// TextureVertex is a "vt" line kept in its original text form.
type TextureVertex struct {
	Text string
}

// Coords parses the numeric fields following the "vt" token.
func (t TextureVertex) Coords() ([]float64, error) {
	return parseCoords(t.Text)
}

// FaceElement references a position vertex and, optionally, a texture vertex.
// Both indices are 1-based; Texture is 0 when the element has no texture reference.
type FaceElement struct {
	Position int
	Texture  int
}

// HasTexture reports whether the element carries a texture reference.
func (e FaceElement) HasTexture() bool {
	return e.Texture > 0
}

// String formats the element as "p" or "p/t".
func (e FaceElement) String() string {
	if e.HasTexture() {
		return strconv.Itoa(e.Position) + "/" + strconv.Itoa(e.Texture)
	}
	return strconv.Itoa(e.Position)
}

// Face is a polygon of three or more elements.
type Face struct {
	Elements []FaceElement
}

// String formats the face as an "f" line without a trailing newline.
func (f Face) String() string {
	var sb strings.Builder
	sb.WriteString("f")
	for _, e := range f.Elements {
		sb.WriteByte(' ')
		sb.WriteString(e.String())
	}
	return sb.String()
}

// Document is a parsed mesh. Records preserves the original line order;
// the remaining slices hold each record kind in parse order.
type Document struct {
	Records   []Record
	Positions []PositionVertex
	Textures  []TextureVertex
	Faces     []Face
	Verbatim  []string
}

// AddVerbatim appends a passthrough line.
func (d *Document) AddVerbatim(line string) {
	d.Records = append(d.Records, Record{Kind: KindVerbatim, Index: len(d.Verbatim)})
	d.Verbatim = append(d.Verbatim, line)
}

// AddPosition appends a position vertex and returns its 1-based index.
func (d *Document) AddPosition(v PositionVertex) int {
	d.Records = append(d.Records, Record{Kind: KindPosition, Index: len(d.Positions)})
	d.Positions = append(d.Positions, v)
	return len(d.Positions)
}

// AddTexture appends a texture vertex and returns its 1-based index.
func (d *Document) AddTexture(t TextureVertex) int {
	d.Records = append(d.Records, Record{Kind: KindTexture, Index: len(d.Textures)})
	d.Textures = append(d.Textures, t)
	return len(d.Textures)
}

// AddFace appends a face and returns its 0-based face index.
func (d *Document) AddFace(f Face) int {
	d.Records = append(d.Records, Record{Kind: KindFace, Index: len(d.Faces)})
	d.Faces = append(d.Faces, f)
	return len(d.Faces) - 1
}

// Line returns the text of a record as it would be written.
func (d *Document) Line(r Record) string {
	switch r.Kind {
	case KindPosition:
		return d.Positions[r.Index].Text
	case KindTexture:
		return d.Textures[r.Index].Text
	case KindFace:
		return d.Faces[r.Index].String()
	default:
		return d.Verbatim[r.Index]
	}
}

func parseCoords(text string) ([]float64, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return nil, fmt.Errorf("no coordinates in %q", text)
	}
	coords := make([]float64, 0, len(fields)-1)
	for _, f := range fields[1:] {
		c, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing coordinate %q: %w", f, err)
		}
		coords = append(coords, c)
	}
	return coords, nil
}
