package selection

import (
	"fmt"

	"github.com/platebench/platebench/internal/wellplate"
)

// Pattern generators return well labels in row-major order unless
// stated otherwise. They are pure functions of the plate dimensions.

func collect(rows, cols int, keep func(r, c int) bool) []string {
	var ids []string
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if keep(r, c) {
				ids = append(ids, wellplate.Address{Row: r, Col: c}.Label())
			}
		}
	}
	return ids
}

// All returns every well on the plate.
func All(rows, cols int) []string {
	return collect(rows, cols, func(r, c int) bool { return true })
}

// Checkerboard selects wells where row+col is even, starting at A1.
func Checkerboard(rows, cols int) []string {
	return EveryNth(rows, cols, 2)
}

// EveryNth selects wells where (row+col) % n == 0. n below 1 falls
// back to the checkerboard spacing of 2.
func EveryNth(rows, cols, n int) []string {
	if n < 1 {
		n = 2
	}
	return collect(rows, cols, func(r, c int) bool { return (r+c)%n == 0 })
}

// Border selects the plate perimeter.
func Border(rows, cols int) []string {
	return collect(rows, cols, func(r, c int) bool {
		return r == 0 || r == rows-1 || c == 0 || c == cols-1
	})
}

// Center selects the interior; empty for plates thinner than 3 wells.
func Center(rows, cols int) []string {
	return collect(rows, cols, func(r, c int) bool {
		return r > 0 && r < rows-1 && c > 0 && c < cols-1
	})
}

// Diagonal selects the main diagonal down to the shorter dimension.
func Diagonal(rows, cols int) []string {
	return collect(rows, cols, func(r, c int) bool { return r == c })
}

// EveryOtherRow selects all wells of rows 0, 2, 4, ...
func EveryOtherRow(rows, cols int) []string {
	return collect(rows, cols, func(r, c int) bool { return r%2 == 0 })
}

// EveryOtherColumn selects all wells of columns 0, 2, 4, ...
func EveryOtherColumn(rows, cols int) []string {
	return collect(rows, cols, func(r, c int) bool { return c%2 == 0 })
}

// FirstHalf selects columns left of the floor midpoint; with an odd
// column count the extra column belongs to the second half.
func FirstHalf(rows, cols int) []string {
	mid := cols / 2
	return collect(rows, cols, func(r, c int) bool { return c < mid })
}

// SecondHalf selects the remaining columns.
func SecondHalf(rows, cols int) []string {
	mid := cols / 2
	return collect(rows, cols, func(r, c int) bool { return c >= mid })
}

// RowWells selects one full row.
func RowWells(row, cols int) []string {
	ids := make([]string, cols)
	for c := 0; c < cols; c++ {
		ids[c] = wellplate.Address{Row: row, Col: c}.Label()
	}
	return ids
}

// ColumnWells selects one full column.
func ColumnWells(col, rows int) []string {
	ids := make([]string, rows)
	for r := 0; r < rows; r++ {
		ids[r] = wellplate.Address{Row: r, Col: col}.Label()
	}
	return ids
}

// Invert returns the complement of the given set over the full plate,
// in row-major order.
func Invert(rows, cols int, selected []string) []string {
	in := make(map[string]bool, len(selected))
	for _, id := range selected {
		in[id] = true
	}
	return collect(rows, cols, func(r, c int) bool {
		return !in[wellplate.Address{Row: r, Col: c}.Label()]
	})
}

// Expand grows a selection by its Moore neighborhood: the union of the
// set and all 8-neighbors of each member, clipped to the plate. The
// result is in row-major order.
func Expand(rows, cols int, selected []string) ([]string, error) {
	member := make(map[string]bool, len(selected)*9)
	for _, id := range selected {
		addr, err := wellplate.ParseLabel(id)
		if err != nil {
			return nil, err
		}
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				r, c := addr.Row+dr, addr.Col+dc
				if r >= 0 && r < rows && c >= 0 && c < cols {
					member[wellplate.Address{Row: r, Col: c}.Label()] = true
				}
			}
		}
	}
	return collect(rows, cols, func(r, c int) bool {
		return member[wellplate.Address{Row: r, Col: c}.Label()]
	}), nil
}

// EmptyWells selects the plate's unassigned wells, row-major.
func EmptyWells(p *wellplate.Plate) []string {
	return p.AvailableWells()
}

// FilledWells selects the plate's assigned wells, row-major.
func FilledWells(p *wellplate.Plate) []string {
	var ids []string
	for _, id := range p.Addresses() {
		if p.Well(id).Assigned() {
			ids = append(ids, id)
		}
	}
	return ids
}

// StripeOrientation selects which axis a stripe coloring follows.
type StripeOrientation int

const (
	StripeHorizontal StripeOrientation = iota
	StripeVertical
)

// StripeIndex maps a well to its stripe bucket: row % k for horizontal
// stripes, col % k for vertical. It is a coloring function over a
// caller-supplied well set, not an address generator.
func StripeIndex(id string, orientation StripeOrientation, k int) (int, error) {
	if k < 1 {
		return 0, fmt.Errorf("stripe count must be positive, got %d", k)
	}
	addr, err := wellplate.ParseLabel(id)
	if err != nil {
		return 0, err
	}
	if orientation == StripeVertical {
		return addr.Col % k, nil
	}
	return addr.Row % k, nil
}
