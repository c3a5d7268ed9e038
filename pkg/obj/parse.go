package obj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// MaxLineLength is the longest line the parser accepts.
const MaxLineLength = 1 << 20

// Parse reads a mesh document. Parsing stops at the first malformed face
// and no partial document is returned.
func Parse(r io.Reader) (*Document, error) {
	doc := &Document{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		if err := doc.parseLine(raw, lineNo); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading line %d: %w", lineNo+1, err)
	}

	return doc, nil
}

// ParseString parses a mesh document held in memory.
func ParseString(text string) (*Document, error) {
	return Parse(strings.NewReader(text))
}

// ParseFile parses a mesh document from disk.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mesh file: %w", err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

func (d *Document) parseLine(raw string, lineNo int) error {
	line := strings.TrimSpace(raw)

	switch keyword(line) {
	case "v":
		d.AddPosition(PositionVertex{Text: line})
	case "vt":
		d.AddTexture(TextureVertex{Text: line})
	case "f":
		face, err := parseFace(line)
		if err != nil {
			err.Line = lineNo
			return err
		}
		d.AddFace(face)
	default:
		d.AddVerbatim(raw)
	}
	return nil
}

// keyword returns the leading token of a line, or "" when the token is not
// followed by whitespace.
func keyword(line string) string {
	i := strings.IndexAny(line, " \t")
	if i <= 0 {
		return ""
	}
	return line[:i]
}

func parseFace(line string) (Face, *FormatError) {
	fields := strings.Fields(line)[1:]
	if len(fields) < 3 {
		return Face{}, &FormatError{Text: line, Reason: fmt.Sprintf("face has %d elements, need at least 3", len(fields))}
	}

	face := Face{Elements: make([]FaceElement, 0, len(fields))}
	for _, field := range fields {
		elem, reason := parseElement(field)
		if reason != "" {
			return Face{}, &FormatError{Text: line, Reason: fmt.Sprintf("element %q: %s", field, reason)}
		}
		face.Elements = append(face.Elements, elem)
	}
	return face, nil
}

// parseElement accepts p, p/t, p/, p//n and p/t/n. The normal index is
// dropped, and a texture segment that is not a positive integer reads as no
// texture reference.
func parseElement(field string) (FaceElement, string) {
	parts := strings.Split(field, "/")
	if len(parts) > 3 {
		return FaceElement{}, "too many components"
	}

	pos, err := strconv.Atoi(parts[0])
	if err != nil {
		return FaceElement{}, "invalid position index"
	}
	if pos < 1 {
		return FaceElement{}, "position index must be positive"
	}

	elem := FaceElement{Position: pos}
	if len(parts) > 1 {
		if tex, err := strconv.Atoi(parts[1]); err == nil && tex > 0 {
			elem.Texture = tex
		}
	}
	return elem, ""
}
