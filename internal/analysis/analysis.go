// Package analysis measures mesh documents and converts them to triangle
// meshes for export.
package analysis

import (
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"

	"github.com/Faultbox/meshcut/pkg/obj"
)

// Stats summarizes a document.
type Stats struct {
	Positions int
	Textures  int
	Faces     int
	Triangles int
	Verbatim  int

	Min model3d.Coord3D
	Max model3d.Coord3D

	// Texture coordinate bounds, zero when the mesh has no "vt" records.
	TexMin model3d.Coord2D
	TexMax model3d.Coord2D

	Area float64

	// Manifold is set when every edge is shared by exactly two triangles.
	// Volume is only computed for manifold meshes.
	Manifold bool
	Volume   float64
}

// Size returns the extent of the bounding box.
func (s *Stats) Size() model3d.Coord3D {
	return s.Max.Sub(s.Min)
}

// Coords parses every position vertex of doc.
func Coords(doc *obj.Document) ([]model3d.Coord3D, error) {
	coords := make([]model3d.Coord3D, len(doc.Positions))
	for i, v := range doc.Positions {
		c, err := v.Coords()
		if err != nil {
			return nil, errors.Wrapf(err, "vertex %d", i+1)
		}
		if len(c) < 3 {
			return nil, errors.Errorf("vertex %d: expected 3 coordinates, got %d", i+1, len(c))
		}
		coords[i] = model3d.XYZ(c[0], c[1], c[2])
	}
	return coords, nil
}

// Triangles fan-triangulates every face of doc.
func Triangles(doc *obj.Document) ([]*model3d.Triangle, error) {
	coords, err := Coords(doc)
	if err != nil {
		return nil, err
	}

	var tris []*model3d.Triangle
	for fi, face := range doc.Faces {
		corner := func(e obj.FaceElement) (model3d.Coord3D, error) {
			if e.Position > len(coords) {
				return model3d.Coord3D{}, errors.Errorf("face %d: vertex %d out of range", fi, e.Position)
			}
			return coords[e.Position-1], nil
		}

		first, err := corner(face.Elements[0])
		if err != nil {
			return nil, err
		}
		for i := 1; i+1 < len(face.Elements); i++ {
			b, err := corner(face.Elements[i])
			if err != nil {
				return nil, err
			}
			c, err := corner(face.Elements[i+1])
			if err != nil {
				return nil, err
			}
			tris = append(tris, &model3d.Triangle{first, b, c})
		}
	}
	return tris, nil
}

// ToMesh converts doc into a model3d mesh.
func ToMesh(doc *obj.Document) (*model3d.Mesh, error) {
	tris, err := Triangles(doc)
	if err != nil {
		return nil, errors.Wrap(err, "convert to mesh")
	}
	return model3d.NewMeshTriangles(tris), nil
}

// Analyze computes statistics for doc.
func Analyze(doc *obj.Document) (*Stats, error) {
	stats := &Stats{
		Positions: len(doc.Positions),
		Textures:  len(doc.Textures),
		Faces:     len(doc.Faces),
		Verbatim:  len(doc.Verbatim),
	}

	coords, err := Coords(doc)
	if err != nil {
		return nil, errors.Wrap(err, "analyze")
	}
	if len(coords) > 0 {
		stats.Min, stats.Max = coords[0], coords[0]
		for _, c := range coords[1:] {
			stats.Min = stats.Min.Min(c)
			stats.Max = stats.Max.Max(c)
		}
	}

	for i, t := range doc.Textures {
		c, err := t.Coords()
		if err != nil {
			return nil, errors.Wrapf(err, "analyze: texture vertex %d", i+1)
		}
		if len(c) < 2 {
			return nil, errors.Errorf("analyze: texture vertex %d: expected 2 coordinates, got %d", i+1, len(c))
		}
		uv := model2d.XY(c[0], c[1])
		if i == 0 {
			stats.TexMin, stats.TexMax = uv, uv
			continue
		}
		stats.TexMin = stats.TexMin.Min(uv)
		stats.TexMax = stats.TexMax.Max(uv)
	}

	tris, err := Triangles(doc)
	if err != nil {
		return nil, errors.Wrap(err, "analyze")
	}
	stats.Triangles = len(tris)
	if len(tris) == 0 {
		return stats, nil
	}

	var signedVolume float64
	for _, t := range tris {
		stats.Area += t.Area()
		signedVolume += t[0].Dot(t[1].Cross(t[2])) / 6
	}

	mesh := model3d.NewMeshTriangles(tris)
	stats.Manifold = !mesh.NeedsRepair()
	if stats.Manifold {
		stats.Volume = math.Abs(signedVolume)
	}

	return stats, nil
}

// WriteSTL writes doc as a binary STL file.
func WriteSTL(w io.Writer, doc *obj.Document) error {
	tris, err := Triangles(doc)
	if err != nil {
		return errors.Wrap(err, "write stl")
	}
	return errors.Wrap(model3d.WriteSTL(w, tris), "write stl")
}
