// Package cone generates regular n-gon cone meshes.
//
// The base ring lies in the XZ plane at unit distance before scaling, the
// apex sits at (0, 1, 0). Texture coordinates are the unscaled ring
// projected onto XZ plus (0, 0) for the apex.
//
// Coordinates are rounded to Decimals places. A value that rounds to zero is
// always written as "0.0", never "-0.0", so ring points such as cos(3π/2) on
// a four-sided cone differ by that sign from a naive float formatter.
package cone

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/meshcut/pkg/obj"
)

// Parameter errors.
var (
	ErrTooFewSides  = errors.New("cone needs at least 3 sides")
	ErrInvalidAngle = errors.New("cone half-angle must be in (0, pi/2)")
)

// Decimals is the rounding precision applied to generated coordinates.
const Decimals = 4

// Params describes a cone.
type Params struct {
	Sides    int     // Number of base vertices
	Theta    float64 // Half-angle at the apex, in radians
	MtlLib   string  // Emitted as "mtllib <MtlLib>" when non-empty
	Material string  // Emitted as "usemtl <Material>" before the faces when non-empty
}

// DefaultParams returns a decagonal cone with a 60 degree half-angle.
func DefaultParams() Params {
	return Params{
		Sides:    10,
		Theta:    math.Pi / 3,
		MtlLib:   "UV.mtl",
		Material: "ABC",
	}
}

// Validate checks that the parameters describe a finite cone.
func (p Params) Validate() error {
	if p.Sides < 3 {
		return fmt.Errorf("%w: got %d", ErrTooFewSides, p.Sides)
	}
	if !(p.Theta > 0 && p.Theta < math.Pi/2) {
		return fmt.Errorf("%w: got %g", ErrInvalidAngle, p.Theta)
	}
	return nil
}

// Ring returns the n points of a regular polygon of unit radius in the XZ
// plane, starting at +X and winding towards +Z.
func Ring(n int) []mgl64.Vec3 {
	step := 2 * math.Pi / float64(n)
	start := mgl64.Vec3{1, 0, 0}

	ring := make([]mgl64.Vec3, n)
	for i := range ring {
		// Rotate3DY turns +X towards -Z; negate to wind towards +Z.
		ring[i] = roundVec(mgl64.Rotate3DY(-float64(i) * step).Mul3x1(start))
	}
	return ring
}

// Generate builds the cone document: mtllib, base and apex positions,
// texture coordinates, usemtl, then one triangle per side.
func Generate(p Params) (*obj.Document, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := p.Sides
	ring := Ring(n)
	scale := math.Tan(p.Theta)

	doc := &obj.Document{}
	if p.MtlLib != "" {
		doc.AddVerbatim("mtllib " + p.MtlLib)
	}

	for _, v := range ring {
		s := roundVec(v.Mul(scale))
		doc.AddPosition(obj.PositionVertex{Text: "v " + formatCoords(s[0], s[1], s[2])})
	}
	doc.AddPosition(obj.PositionVertex{Text: "v 0 1 0"})

	for _, v := range ring {
		doc.AddTexture(obj.TextureVertex{Text: "vt " + formatCoords(v[0], v[2])})
	}
	doc.AddTexture(obj.TextureVertex{Text: "vt 0 0"})

	if p.Material != "" {
		doc.AddVerbatim("usemtl " + p.Material)
	}

	apex := n + 1
	for i := 1; i <= n; i++ {
		next := i%n + 1
		doc.AddFace(obj.Face{Elements: []obj.FaceElement{
			{Position: i, Texture: i},
			{Position: apex, Texture: apex},
			{Position: next, Texture: next},
		}})
	}

	return doc, nil
}

func roundVec(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{round(v[0]), round(v[1]), round(v[2])}
}

func round(x float64) float64 {
	p := math.Pow(10, Decimals)
	r := math.Round(x*p) / p
	if r == 0 {
		return 0 // drop the sign of -0
	}
	return r
}

// formatCoords writes each float in shortest round-trip form, always with a
// decimal point ("1.0", "-0.5878").
func formatCoords(coords ...float64) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		s := strconv.FormatFloat(c, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		parts[i] = s
	}
	return strings.Join(parts, " ")
}
