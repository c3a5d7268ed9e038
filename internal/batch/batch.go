// Package batch extracts several named face selections from one mesh into
// separate files.
package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/meshcut/pkg/encoding"
	"github.com/Faultbox/meshcut/pkg/obj"
)

// ErrInvalidPart is returned for parts that cannot be written.
var ErrInvalidPart = errors.New("invalid part")

// Part is one output file of a split.
type Part struct {
	Name  string // Output file is <Name>.obj
	Faces string // Selection expression, see obj.ParseSelection
}

// Options controls a split.
type Options struct {
	Workers  int    // Parallel extractions; 0 = one per CPU
	Encoding string // Output text encoding; empty = utf-8
	Logger   *zap.Logger
}

// Result describes one part.
type Result struct {
	Part  string
	Path  string
	Faces int
	Bytes int
	Err   error
}

// Report lists the results in part order.
type Report struct {
	Results []Result
}

// Written returns the number of parts written successfully.
func (r *Report) Written() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Validate checks part names before any work starts.
func Validate(parts []Part) error {
	seen := make(map[string]bool, len(parts))
	for i, p := range parts {
		if p.Name == "" {
			return fmt.Errorf("%w: part %d: name is required", ErrInvalidPart, i)
		}
		if filepath.Base(p.Name) != p.Name || p.Name == "." || p.Name == ".." {
			return fmt.Errorf("%w: name %q must be a plain file name", ErrInvalidPart, p.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidPart, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// Run extracts every part from doc into outDir. doc is only read. A failing
// part does not stop the others; all failures are combined in the returned
// error and the report still lists every part.
func Run(ctx context.Context, doc *obj.Document, parts []Part, outDir string, opts Options) (*Report, error) {
	if err := Validate(parts); err != nil {
		return nil, err
	}
	if _, err := encoding.Lookup(opts.Encoding); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	report := &Report{Results: make([]Result, len(parts))}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, part := range parts {
		i, part := i, part
		g.Go(func() error {
			res := &report.Results[i]
			res.Part = part.Name
			if err := ctx.Err(); err != nil {
				res.Err = err
				return nil
			}

			start := time.Now()
			res.Path = filepath.Join(outDir, part.Name+".obj")
			res.Faces, res.Bytes, res.Err = writePart(doc, part, res.Path, opts.Encoding)
			if res.Err != nil {
				log.Warn("part failed", zap.String("part", part.Name), zap.Error(res.Err))
				return nil
			}
			log.Debug("part written",
				zap.String("part", part.Name),
				zap.String("path", res.Path),
				zap.Int("faces", res.Faces),
				zap.Int("bytes", res.Bytes),
				zap.Duration("took", time.Since(start)),
			)
			return nil
		})
	}
	_ = g.Wait()

	var err error
	for _, res := range report.Results {
		if res.Err != nil {
			err = multierr.Append(err, fmt.Errorf("part %s: %w", res.Part, res.Err))
		}
	}
	log.Info("split finished",
		zap.Int("parts", len(parts)),
		zap.Int("written", report.Written()),
		zap.Int("workers", workers),
	)
	return report, err
}

func writePart(doc *obj.Document, part Part, path, enc string) (int, int, error) {
	indices, err := obj.ParseSelection(part.Faces, len(doc.Faces))
	if err != nil {
		return 0, 0, err
	}

	var buf bytes.Buffer
	w, err := encoding.NewWriter(&buf, enc)
	if err != nil {
		return 0, 0, err
	}
	if err := obj.ExtractDocument(doc, indices, w); err != nil {
		return 0, 0, err
	}
	if err := w.Close(); err != nil {
		return 0, 0, fmt.Errorf("encoding %s: %w", enc, err)
	}
	if err := WriteFile(path, buf.Bytes()); err != nil {
		return 0, 0, err
	}
	return len(indices), buf.Len(), nil
}

// WriteFile writes data to path through a temporary file in the same
// directory, so readers never observe a partially written mesh.
func WriteFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
