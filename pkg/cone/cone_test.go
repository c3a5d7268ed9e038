package cone

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/Faultbox/meshcut/pkg/obj"
)

func TestGenerate_Square(t *testing.T) {
	p := DefaultParams()
	p.Sides = 4
	p.Theta = math.Pi / 4

	doc, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	want := `mtllib UV.mtl
v 1.0 0.0 0.0
v 0.0 0.0 1.0
v -1.0 0.0 0.0
v 0.0 0.0 -1.0
v 0 1 0
vt 1.0 0.0
vt 0.0 1.0
vt -1.0 0.0
vt 0.0 -1.0
vt 0 0
usemtl ABC
f 1/1 5/5 2/2
f 2/2 5/5 3/3
f 3/3 5/5 4/4
f 4/4 5/5 1/1
`
	if buf.String() != want {
		t.Errorf("unexpected cone:\n%s", buf.String())
	}
}

func TestGenerate_Decagon(t *testing.T) {
	doc, err := Generate(DefaultParams())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(doc.Positions) != 11 {
		t.Errorf("expected 11 positions, got %d", len(doc.Positions))
	}
	if len(doc.Textures) != 11 {
		t.Errorf("expected 11 texture vertices, got %d", len(doc.Textures))
	}
	if len(doc.Faces) != 10 {
		t.Errorf("expected 10 faces, got %d", len(doc.Faces))
	}

	if got := doc.Positions[0].Text; got != "v 1.7321 0.0 0.0" {
		t.Errorf("unexpected first vertex %q", got)
	}
	if got := doc.Positions[1].Text; got != "v 1.4012 0.0 1.0181" {
		t.Errorf("unexpected second vertex %q", got)
	}
	if got := doc.Textures[1].Text; got != "vt 0.809 0.5878" {
		t.Errorf("unexpected second texture vertex %q", got)
	}
	if got := doc.Faces[9].String(); got != "f 10/10 11/11 1/1" {
		t.Errorf("unexpected closing face %q", got)
	}
}

func TestGenerate_NoMaterial(t *testing.T) {
	p := DefaultParams()
	p.MtlLib = ""
	p.Material = ""

	doc, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(doc.Verbatim) != 0 {
		t.Errorf("expected no verbatim lines, got %q", doc.Verbatim)
	}
}

func TestGenerate_ExtractsCleanly(t *testing.T) {
	doc, err := Generate(DefaultParams())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	out, err := obj.Extract(buf.String(), []int{9, 0})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	// Faces 9 and 0 share vertex 1 and the apex: 1, 2, 10, 11 survive.
	extracted, err := obj.ParseString(out)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	if len(extracted.Positions) != 4 || len(extracted.Textures) != 4 {
		t.Errorf("expected 4 positions and 4 textures, got %d and %d",
			len(extracted.Positions), len(extracted.Textures))
	}
	if !strings.HasSuffix(out, "f 3/3 4/4 1/1\nf 1/1 4/4 2/2\n") {
		t.Errorf("unexpected faces:\n%s", out)
	}
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name  string
		sides int
		theta float64
		want  error
	}{
		{"ok", 3, 0.5, nil},
		{"too few sides", 2, 0.5, ErrTooFewSides},
		{"zero angle", 8, 0, ErrInvalidAngle},
		{"right angle", 8, math.Pi / 2, ErrInvalidAngle},
		{"nan", 8, math.NaN(), ErrInvalidAngle},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Params{Sides: tc.sides, Theta: tc.theta}.Validate()
			if tc.want == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRing(t *testing.T) {
	ring := Ring(6)
	if len(ring) != 6 {
		t.Fatalf("expected 6 points, got %d", len(ring))
	}
	for i, v := range ring {
		if v[1] != 0 {
			t.Errorf("point %d: expected y = 0, got %f", i, v[1])
		}
		if r := math.Hypot(v[0], v[2]); math.Abs(r-1) > 1e-3 {
			t.Errorf("point %d: expected unit radius, got %f", i, r)
		}
	}
	if ring[1][2] <= 0 {
		t.Errorf("expected ring to wind towards +Z, got %v", ring[1])
	}
}

func TestGenerate_NoNegativeZero(t *testing.T) {
	for n := 3; n <= 24; n++ {
		doc, err := Generate(Params{Sides: n, Theta: math.Pi / 4})
		if err != nil {
			t.Fatalf("Generate(%d) failed: %v", n, err)
		}
		var buf bytes.Buffer
		if _, err := doc.WriteTo(&buf); err != nil {
			t.Fatalf("WriteTo failed: %v", err)
		}
		for _, field := range strings.Fields(buf.String()) {
			if field == "-0.0" || field == "-0" {
				t.Errorf("n=%d: negative zero in output", n)
				break
			}
		}
	}
}
