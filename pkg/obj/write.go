package obj

import (
	"bufio"
	"io"
)

// WriteExtract writes an extracted document: verbatim lines, surviving
// positions, surviving textures, then the relabeled faces.
func WriteExtract(w io.Writer, doc *Document, positions, textures IndexMap, faces []Face) error {
	lw := newLineWriter(w)

	for _, line := range doc.Verbatim {
		lw.line(line)
	}
	for _, orig := range positions.Originals() {
		lw.line(doc.Positions[orig-1].Text)
	}
	for _, orig := range textures.Originals() {
		lw.line(doc.Textures[orig-1].Text)
	}
	for _, face := range faces {
		lw.line(face.String())
	}

	return lw.flush()
}

// WriteTo writes the document in its original record order.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	lw := newLineWriter(w)
	for _, r := range d.Records {
		lw.line(d.Line(r))
	}
	err := lw.flush()
	return lw.n, err
}

// lineWriter buffers newline-terminated output and keeps the first error.
type lineWriter struct {
	bw  *bufio.Writer
	n   int64
	err error
}

func newLineWriter(w io.Writer) *lineWriter {
	return &lineWriter{bw: bufio.NewWriter(w)}
}

func (lw *lineWriter) line(s string) {
	if lw.err != nil {
		return
	}
	n, err := lw.bw.WriteString(s)
	lw.n += int64(n)
	if err != nil {
		lw.err = err
		return
	}
	if err := lw.bw.WriteByte('\n'); err != nil {
		lw.err = err
		return
	}
	lw.n++
}

func (lw *lineWriter) flush() error {
	if lw.err != nil {
		return lw.err
	}
	return lw.bw.Flush()
}
