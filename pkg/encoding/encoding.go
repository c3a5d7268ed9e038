// Package encoding converts legacy-encoded mesh text to and from UTF-8.
//
// Exporters from older modelling tools often write material and group names
// in a local code page. Numeric records are ASCII in every supported
// encoding, so transcoding never changes geometry.
package encoding

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding is returned for an unsupported encoding name.
var ErrUnknownEncoding = errors.New("unknown text encoding")

var encodings = map[string]encoding.Encoding{
	"":             encoding.Nop,
	"utf-8":        encoding.Nop,
	"utf8":         encoding.Nop,
	"euc-kr":       korean.EUCKR,
	"cp949":        korean.EUCKR,
	"shift-jis":    japanese.ShiftJIS,
	"sjis":         japanese.ShiftJIS,
	"gbk":          simplifiedchinese.GBK,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
}

// Names returns the accepted encoding names, excluding the empty default.
func Names() []string {
	return []string{"utf-8", "euc-kr", "shift-jis", "gbk", "latin1", "windows-1252"}
}

// Lookup resolves an encoding name, case-insensitively.
// The empty name and "utf-8" map to a no-op encoding.
func Lookup(name string) (encoding.Encoding, error) {
	enc, ok := encodings[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// NewReader wraps r so that it yields UTF-8.
func NewReader(r io.Reader, name string) (io.Reader, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if enc == encoding.Nop {
		return r, nil
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// NewWriter wraps w so that UTF-8 written to it is stored in the named
// encoding. The caller must Close the returned writer to flush it.
func NewWriter(w io.Writer, name string) (io.WriteCloser, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if enc == encoding.Nop {
		return nopCloser{w}, nil
	}
	return transform.NewWriter(w, enc.NewEncoder()), nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
