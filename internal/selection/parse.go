// Package selection turns user-entered well selections and named
// spatial patterns into ordered lists of well labels.
package selection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/platebench/platebench/internal/wellplate"
)

var (
	// ErrBadWellFormat marks a token that is not a well label or range.
	ErrBadWellFormat = errors.New("invalid well format")
	// ErrOutOfBounds marks an address beyond the plate dimensions.
	ErrOutOfBounds = errors.New("well out of bounds")
)

// Parse expands a free-text selection ("A1", "A1-D4", comma lists)
// into well labels. Input is uppercased and stripped of whitespace
// first. Ranges expand over their rectangular span in row-major order.
// The result preserves first-seen order with duplicates dropped; order
// matters downstream, where sequential designs fill wells positionally.
func Parse(input string, rows, cols int) ([]string, error) {
	input = strings.ToUpper(strings.Join(strings.Fields(input), ""))

	var selected []string
	seen := make(map[string]bool)

	for _, part := range strings.Split(input, ",") {
		var span []wellplate.Address
		var err error
		if strings.Contains(part, "-") {
			span, err = expandRange(part, "-", rows, cols)
		} else {
			span, err = singleWell(part, rows, cols)
		}
		if err != nil {
			return nil, err
		}
		for _, addr := range span {
			id := addr.Label()
			if !seen[id] {
				seen[id] = true
				selected = append(selected, id)
			}
		}
	}
	return selected, nil
}

// ParseRange expands one rectangular range written either "A1:D4" or
// "A1-D4". Semantics match Parse on a single range token.
func ParseRange(input string, rows, cols int) ([]string, error) {
	input = strings.ToUpper(strings.Join(strings.Fields(input), ""))

	sep := "-"
	if strings.Contains(input, ":") {
		sep = ":"
	}
	span, err := expandRange(input, sep, rows, cols)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(span))
	for i, addr := range span {
		ids[i] = addr.Label()
	}
	return ids, nil
}

func singleWell(part string, rows, cols int) ([]wellplate.Address, error) {
	addr, err := wellplate.ParseLabel(part)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadWellFormat, part)
	}
	if err := checkBounds(addr, part, rows, cols); err != nil {
		return nil, err
	}
	return []wellplate.Address{addr}, nil
}

func expandRange(part, sep string, rows, cols int) ([]wellplate.Address, error) {
	ends := strings.SplitN(part, sep, 2)
	if len(ends) != 2 {
		return nil, fmt.Errorf("%w: %q", ErrBadWellFormat, part)
	}
	start, err := wellplate.ParseLabel(ends[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadWellFormat, part)
	}
	end, err := wellplate.ParseLabel(ends[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadWellFormat, part)
	}
	if err := checkBounds(start, part, rows, cols); err != nil {
		return nil, err
	}
	if err := checkBounds(end, part, rows, cols); err != nil {
		return nil, err
	}

	r0, r1 := minMax(start.Row, end.Row)
	c0, c1 := minMax(start.Col, end.Col)

	span := make([]wellplate.Address, 0, (r1-r0+1)*(c1-c0+1))
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			span = append(span, wellplate.Address{Row: r, Col: c})
		}
	}
	return span, nil
}

func checkBounds(addr wellplate.Address, part string, rows, cols int) error {
	if addr.Row >= rows {
		return fmt.Errorf("%w: row in %q exceeds %d rows", ErrOutOfBounds, part, rows)
	}
	if addr.Col >= cols {
		return fmt.Errorf("%w: column in %q exceeds %d columns", ErrOutOfBounds, part, cols)
	}
	return nil
}

func minMax(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
