package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/unixpickle/essentials"

	"github.com/Faultbox/meshcut/internal/analysis"
	"github.com/Faultbox/meshcut/internal/config"
	"github.com/Faultbox/meshcut/pkg/obj"
)

const tetrahedron = `v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
f 1 2 3
f 1 3 4
f 1 4 2
f 2 4 3
`

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tet.obj")
	essentials.Must(os.WriteFile(path, []byte(tetrahedron), 0644))
	return path
}

func TestCmdExtract(t *testing.T) {
	in := writeInput(t)
	out := filepath.Join(filepath.Dir(in), "face.obj")

	if err := cmdExtract(config.Default(), []string{"-faces", "2", in, out}); err != nil {
		t.Fatalf("cmdExtract failed: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	want := "v 0 0 0\nv 1 0 0\nv 0 0 1\nf 1 3 2\n"
	if string(got) != want {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestCmdExtract_FacesFromConfig(t *testing.T) {
	in := writeInput(t)
	out := filepath.Join(filepath.Dir(in), "faces.obj")

	cfg := config.Default()
	cfg.Extract.Faces = "3,1"
	if err := cmdExtract(cfg, []string{in, out}); err != nil {
		t.Fatalf("cmdExtract failed: %v", err)
	}

	doc, err := obj.ParseFile(out)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(doc.Faces) != 2 {
		t.Errorf("expected 2 faces, got %d", len(doc.Faces))
	}
}

func TestCmdExtract_OutOfRangeWritesNothing(t *testing.T) {
	in := writeInput(t)
	out := filepath.Join(filepath.Dir(in), "bad.obj")

	if err := cmdExtract(config.Default(), []string{"-faces", "4", in, out}); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("expected no output file")
	}
}

func TestCmdExtract_Usage(t *testing.T) {
	if err := cmdExtract(config.Default(), []string{"only-one.obj"}); err == nil {
		t.Error("expected usage error")
	}
}

func TestCommands_FlagErrors(t *testing.T) {
	cfg := config.Default()
	commands := map[string]func([]string) error{
		"extract": func(args []string) error { return cmdExtract(cfg, args) },
		"split":   func(args []string) error { return cmdSplit(context.Background(), cfg, args) },
		"cone":    func(args []string) error { return cmdCone(cfg, args) },
		"info":    func(args []string) error { return cmdInfo(cfg, args) },
		"stl":     func(args []string) error { return cmdSTL(cfg, args) },
		"config":  func(args []string) error { return cmdConfig(cfg, args) },
	}

	for name, run := range commands {
		t.Run(name, func(t *testing.T) {
			if err := run([]string{"-no-such-flag"}); err == nil {
				t.Error("expected error for unknown flag")
			}
			if err := run([]string{"-h"}); !errors.Is(err, flag.ErrHelp) {
				t.Errorf("expected flag.ErrHelp, got %v", err)
			}
		})
	}
}

func TestCmdCone_BadFlagValue(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cone.obj")
	if err := cmdCone(config.Default(), []string{"-n", "ten", out}); err == nil {
		t.Fatal("expected error for non-numeric -n")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("expected no output file")
	}
}

func TestCmdSplit(t *testing.T) {
	in := writeInput(t)
	outDir := filepath.Join(filepath.Dir(in), "parts")

	cfg := config.Default()
	cfg.Split.Parts = []config.PartConfig{{Name: "a", Faces: "0-1"}}

	args := []string{"-out", outDir, "-workers", "2", "-part", "b=3", in}
	if err := cmdSplit(context.Background(), cfg, args); err != nil {
		t.Fatalf("cmdSplit failed: %v", err)
	}
	for _, name := range []string{"a.obj", "b.obj"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}

func TestCmdSplit_NoParts(t *testing.T) {
	if err := cmdSplit(context.Background(), config.Default(), []string{writeInput(t)}); err == nil {
		t.Error("expected error without parts")
	}
}

func TestCmdCone(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cone.obj")
	if err := cmdCone(config.Default(), []string{"-n", "6", "-deg", "30", out}); err != nil {
		t.Fatalf("cmdCone failed: %v", err)
	}

	doc, err := obj.ParseFile(out)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(doc.Faces) != 6 || len(doc.Positions) != 7 {
		t.Errorf("unexpected cone: %d faces, %d positions", len(doc.Faces), len(doc.Positions))
	}
}

func TestCmdCone_Invalid(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cone.obj")
	if err := cmdCone(config.Default(), []string{"-n", "2", out}); err == nil {
		t.Error("expected error for 2 sides")
	}
}

func TestCmdSTL(t *testing.T) {
	in := writeInput(t)
	out := filepath.Join(filepath.Dir(in), "tet.stl")
	if err := cmdSTL(config.Default(), []string{in, out}); err != nil {
		t.Fatalf("cmdSTL failed: %v", err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() != 84+4*50 {
		t.Errorf("unexpected STL size %d", info.Size())
	}
}

func TestCmdConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshcut.yaml")
	if err := cmdConfig(config.Default(), []string{path}); err != nil {
		t.Fatalf("cmdConfig failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	if !strings.Contains(string(data), "sides: 10") {
		t.Errorf("unexpected config:\n%s", data)
	}
}

func TestPrintStats(t *testing.T) {
	doc, err := obj.ParseString(tetrahedron)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	stats, err := analysis.Analyze(doc)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	var buf bytes.Buffer
	printStats(&buf, "tet.obj", stats)
	out := buf.String()

	for _, want := range []string{"Vertices:  4", "Faces:     4 (4 triangles)", "Manifold:  yes", "Volume:    0.166667"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestPartFlags(t *testing.T) {
	var p partFlags
	if err := p.Set("horn=42-44"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := p.Set(" tail =191,192"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := p.Set("missing-equals"); err == nil {
		t.Error("expected error without '='")
	}

	if len(p) != 2 || p[1].Name != "tail" || p[1].Faces != "191,192" {
		t.Errorf("unexpected parts: %+v", p)
	}
	if p.String() != "horn=42-44 tail=191,192" {
		t.Errorf("unexpected String(): %q", p.String())
	}
}

func TestReadDocument_Encoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.obj")
	data := append([]byte("usemtl "), 0xB3, 0xAA, 0xB9, 0xAB, '\n')
	essentials.Must(os.WriteFile(path, data, 0644))

	doc, err := readDocument(path, "euc-kr")
	if err != nil {
		t.Fatalf("readDocument failed: %v", err)
	}
	if doc.Verbatim[0] != "usemtl 나무" {
		t.Errorf("unexpected verbatim line %q", doc.Verbatim[0])
	}
}

func TestCmdCone_EncodedOutput(t *testing.T) {
	cfg := config.Default()
	cfg.Input.Encoding = "euc-kr"
	cfg.Cone.Material = "나무"
	out := filepath.Join(t.TempDir(), "cone.obj")

	if err := cmdCone(cfg, []string{"-n", "3", out}); err != nil {
		t.Fatalf("cmdCone failed: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	want := append([]byte("usemtl "), 0xB3, 0xAA, 0xB9, 0xAB, '\n')
	if !bytes.Contains(data, want) {
		t.Errorf("expected EUC-KR material line in output:\n%q", data)
	}
}

func TestCmdCone_UnrepresentableOutput(t *testing.T) {
	cfg := config.Default()
	cfg.Input.Encoding = "latin1"
	cfg.Cone.Material = "나무"
	out := filepath.Join(t.TempDir(), "cone.obj")

	if err := cmdCone(cfg, []string{out}); err == nil {
		t.Fatal("expected encoding error")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("expected no output file")
	}
}
