package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/meshcut/internal/batch"
	"github.com/Faultbox/meshcut/pkg/encoding"
	"github.com/Faultbox/meshcut/pkg/obj"
)

// stdioPath selects stdin or stdout instead of a file.
const stdioPath = "-"

// readDocument parses a mesh file, transcoding it from enc to UTF-8.
func readDocument(path, enc string) (*obj.Document, error) {
	var r io.Reader = os.Stdin
	if path != stdioPath {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	r, err := encoding.NewReader(r, enc)
	if err != nil {
		return nil, err
	}

	doc, err := obj.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// writeOutput renders fully in memory before touching path, so a failed
// render never leaves a partial file behind.
func writeOutput(path, enc string, render func(w io.Writer) error) (int, error) {
	var buf bytes.Buffer
	if err := renderEncoded(&buf, enc, render); err != nil {
		return 0, err
	}

	data := buf.Bytes()

	if path == stdioPath {
		_, err := os.Stdout.Write(data)
		return len(data), err
	}
	if err := batch.WriteFile(path, data); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return len(data), nil
}

// renderEncoded runs render through an encoder for enc.
func renderEncoded(w io.Writer, enc string, render func(w io.Writer) error) error {
	ew, err := encoding.NewWriter(w, enc)
	if err != nil {
		return err
	}
	if err := render(ew); err != nil {
		return err
	}
	if err := ew.Close(); err != nil {
		return fmt.Errorf("encoding %s: %w", enc, err)
	}
	return nil
}

// writeBinary writes non-text output, such as STL.
func writeBinary(path string, render func(w io.Writer) error) (int, error) {
	return writeOutput(path, "", render)
}
