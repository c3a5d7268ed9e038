package obj

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseSelection parses a face list such as "3,1,2" or "42-44,191-193" for a
// mesh with count faces. Ranges are inclusive and order is preserved.
// Whitespace around items is ignored; an empty expression selects nothing.
// An index or range end of count or more fails with *IndexOutOfRangeError
// before any range is expanded.
func ParseSelection(expr string, count int) ([]int, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return []int{}, nil
	}

	var indices []int
	for _, item := range strings.Split(expr, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			return nil, fmt.Errorf("%w: empty item in %q", ErrSelectionSyntax, expr)
		}

		lo, hi, isRange := strings.Cut(item, "-")
		start, err := parseFaceIndex(lo)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrSelectionSyntax, item, err)
		}
		if start >= count {
			return nil, &IndexOutOfRangeError{Index: start, Count: count}
		}
		if !isRange {
			indices = append(indices, start)
			continue
		}

		end, err := parseFaceIndex(hi)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrSelectionSyntax, item, err)
		}
		if end < start {
			return nil, fmt.Errorf("%w: range %q is descending", ErrSelectionSyntax, item)
		}
		if end >= count {
			return nil, &IndexOutOfRangeError{Index: end, Count: count}
		}
		for i := start; i <= end; i++ {
			indices = append(indices, i)
		}
	}
	return indices, nil
}

func parseFaceIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New("not a number")
	}
	if n < 0 {
		return 0, errors.New("negative index")
	}
	return n, nil
}
