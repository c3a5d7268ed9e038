package obj

import (
	"errors"
	"fmt"
)

// Extraction errors.
var (
	ErrFormat            = errors.New("malformed mesh record")
	ErrIndexOutOfRange   = errors.New("face index out of range")
	ErrDanglingReference = errors.New("face references a missing vertex")
	ErrSelectionSyntax   = errors.New("invalid face selection")
)

// FormatError reports a record that could not be parsed.
type FormatError struct {
	Line   int // 1-based line number
	Text   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Unwrap returns ErrFormat.
func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// IndexOutOfRangeError reports a selected face index outside [0, Count).
type IndexOutOfRangeError struct {
	Index int
	Count int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("face index %d out of range [0, %d)", e.Index, e.Count)
}

// Unwrap returns ErrIndexOutOfRange.
func (e *IndexOutOfRangeError) Unwrap() error {
	return ErrIndexOutOfRange
}

// ReferenceError reports a face element pointing past the vertex tables.
type ReferenceError struct {
	Face  int        // 0-based face index
	Kind  RecordKind // KindPosition or KindTexture
	Index int        // 1-based referenced index
	Count int        // number of records of Kind in the document
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("face %d: %s reference %d exceeds %d records", e.Face, e.Kind, e.Index, e.Count)
}

// Unwrap returns ErrDanglingReference.
func (e *ReferenceError) Unwrap() error {
	return ErrDanglingReference
}
