package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meshcut/internal/analysis"
	"github.com/Faultbox/meshcut/internal/batch"
	"github.com/Faultbox/meshcut/internal/config"
	"github.com/Faultbox/meshcut/internal/logger"
	"github.com/Faultbox/meshcut/pkg/cone"
	"github.com/Faultbox/meshcut/pkg/obj"
)

func cmdExtract(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	faces := fs.String("faces", cfg.Extract.Faces, "Faces to keep, e.g. 3,1,2 or 42-44,191-193")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 2 {
		return errors.New("usage: meshcut extract [-faces list] <in.obj> <out.obj>")
	}
	inPath, outPath := fs.Arg(0), fs.Arg(1)

	start := time.Now()
	doc, err := readDocument(inPath, cfg.Input.Encoding)
	if err != nil {
		return err
	}

	indices, err := obj.ParseSelection(*faces, len(doc.Faces))
	if err != nil {
		return err
	}

	n, err := writeOutput(outPath, cfg.Input.Encoding, func(w io.Writer) error {
		return obj.ExtractDocument(doc, indices, w)
	})
	if err != nil {
		return err
	}

	logger.Info("extracted faces",
		zap.String("input", inPath),
		zap.String("output", outPath),
		zap.Int("faces", len(indices)),
		zap.Int("of", len(doc.Faces)),
		zap.Int("bytes", n),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// partFlags collects repeated -part name=list flags.
type partFlags []batch.Part

func (p *partFlags) String() string {
	names := make([]string, len(*p))
	for i, part := range *p {
		names[i] = part.Name + "=" + part.Faces
	}
	return strings.Join(names, " ")
}

func (p *partFlags) Set(value string) error {
	name, faces, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("expected name=list, got %q", value)
	}
	*p = append(*p, batch.Part{Name: strings.TrimSpace(name), Faces: faces})
	return nil
}

func cmdSplit(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("split", flag.ContinueOnError)
	outDir := fs.String("out", cfg.Split.OutputDir, "Output directory")
	workers := fs.Int("workers", cfg.Split.EffectiveWorkers(), "Parallel extractions")
	var extra partFlags
	fs.Var(&extra, "part", "Extra part as name=list (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return errors.New("usage: meshcut split [-out dir] [-part name=list] <in.obj>")
	}

	parts := append(cfg.Split.BatchParts(), extra...)
	if len(parts) == 0 {
		return errors.New("no parts: add split.parts to the config or pass -part name=list")
	}

	doc, err := readDocument(fs.Arg(0), cfg.Input.Encoding)
	if err != nil {
		return err
	}

	report, err := batch.Run(ctx, doc, parts, *outDir, batch.Options{
		Workers:  *workers,
		Encoding: cfg.Input.Encoding,
		Logger:   logger.Named("split"),
	})
	if report != nil {
		for _, res := range report.Results {
			if res.Err == nil {
				fmt.Printf("Wrote: %s (%d faces, %d bytes)\n", res.Path, res.Faces, res.Bytes)
			}
		}
	}
	return err
}

func cmdCone(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("cone", flag.ContinueOnError)
	sides := fs.Int("n", cfg.Cone.Sides, "Number of sides")
	theta := fs.Float64("theta", cfg.Cone.Theta, "Half-angle at the apex in radians")
	degrees := fs.Float64("deg", 0, "Half-angle in degrees (overrides -theta)")
	mtllib := fs.String("mtllib", cfg.Cone.MtlLib, "Material library (empty to omit)")
	material := fs.String("material", cfg.Cone.Material, "Material name (empty to omit)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return errors.New("usage: meshcut cone [-n sides] [-theta rad] <out.obj>")
	}

	params := cone.Params{Sides: *sides, Theta: *theta, MtlLib: *mtllib, Material: *material}
	if *degrees != 0 {
		params.Theta = *degrees * math.Pi / 180
	}

	doc, err := cone.Generate(params)
	if err != nil {
		return err
	}

	n, err := writeOutput(fs.Arg(0), cfg.Input.Encoding, func(w io.Writer) error {
		_, err := doc.WriteTo(w)
		return err
	})
	if err != nil {
		return err
	}

	logger.Info("generated cone",
		zap.String("output", fs.Arg(0)),
		zap.Int("sides", params.Sides),
		zap.Float64("theta", params.Theta),
		zap.Int("bytes", n),
	)
	return nil
}

func cmdInfo(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return errors.New("usage: meshcut info <in.obj>")
	}

	doc, err := readDocument(fs.Arg(0), cfg.Input.Encoding)
	if err != nil {
		return err
	}
	stats, err := analysis.Analyze(doc)
	if err != nil {
		return err
	}

	printStats(os.Stdout, fs.Arg(0), stats)
	return nil
}

func printStats(w io.Writer, path string, s *analysis.Stats) {
	fmt.Fprintf(w, "Mesh:      %s\n", path)
	fmt.Fprintf(w, "Vertices:  %d\n", s.Positions)
	fmt.Fprintf(w, "Texcoords: %d\n", s.Textures)
	fmt.Fprintf(w, "Faces:     %d (%d triangles)\n", s.Faces, s.Triangles)
	fmt.Fprintf(w, "Other:     %d lines\n", s.Verbatim)
	if s.Triangles == 0 {
		return
	}

	size := s.Size()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Bounds:    (%.4f, %.4f, %.4f) - (%.4f, %.4f, %.4f)\n",
		s.Min.X, s.Min.Y, s.Min.Z, s.Max.X, s.Max.Y, s.Max.Z)
	fmt.Fprintf(w, "Size:      %.4f x %.4f x %.4f\n", size.X, size.Y, size.Z)
	fmt.Fprintf(w, "Area:      %.6f\n", s.Area)
	if s.Textures > 0 {
		fmt.Fprintf(w, "UV bounds: (%.4f, %.4f) - (%.4f, %.4f)\n",
			s.TexMin.X, s.TexMin.Y, s.TexMax.X, s.TexMax.Y)
	}
	if s.Manifold {
		fmt.Fprintf(w, "Volume:    %.6f\n", s.Volume)
		fmt.Fprintln(w, "Manifold:  yes")
	} else {
		fmt.Fprintln(w, "Manifold:  no (open or non-manifold edges)")
	}
}

func cmdSTL(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("stl", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 2 {
		return errors.New("usage: meshcut stl <in.obj> <out.stl>")
	}

	doc, err := readDocument(fs.Arg(0), cfg.Input.Encoding)
	if err != nil {
		return err
	}

	n, err := writeBinary(fs.Arg(1), func(w io.Writer) error {
		return analysis.WriteSTL(w, doc)
	})
	if err != nil {
		return err
	}

	logger.Info("wrote stl", zap.String("output", fs.Arg(1)), zap.Int("bytes", n))
	return nil
}

func cmdConfig(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() > 0 {
		if err := cfg.SaveTo(fs.Arg(0)); err != nil {
			return err
		}
		fmt.Printf("Wrote: %s\n", fs.Arg(0))
		return nil
	}

	path, err := cfg.Save()
	if err != nil {
		return err
	}
	fmt.Printf("Wrote: %s\n", path)
	return nil
}
