// Package wellplate holds the plate data model: well addressing,
// plate and well state, experimental groups, and layout summaries.
package wellplate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrBadLabel is returned when a well label does not match the
// letter-block + column-number form (e.g. "A1", "AB12").
var ErrBadLabel = errors.New("invalid well label")

var labelPattern = regexp.MustCompile(`^([A-Z]+)([0-9]+)$`)

// Address identifies one well by zero-based grid coordinates.
type Address struct {
	Row int
	Col int
}

// Label returns the canonical human-readable form of the address:
// row letters followed by the 1-based column number. Rows 0-25 map to
// A-Z; rows beyond that continue Excel-style (AA, AB, ...).
func (a Address) Label() string {
	return RowLetters(a.Row) + strconv.Itoa(a.Col+1)
}

// RowLetters converts a zero-based row index to its letter block.
func RowLetters(row int) string {
	// Bijective base-26: 0 -> A, 25 -> Z, 26 -> AA.
	letters := make([]byte, 0, 2)
	n := row
	for {
		letters = append(letters, byte('A'+n%26))
		n = n/26 - 1
		if n < 0 {
			break
		}
	}
	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}
	return string(letters)
}

// rowIndex is the inverse of RowLetters.
func rowIndex(letters string) int {
	n := 0
	for i := 0; i < len(letters); i++ {
		n = n*26 + int(letters[i]-'A') + 1
	}
	return n - 1
}

// ParseLabel parses a canonical well label back to grid coordinates.
func ParseLabel(label string) (Address, error) {
	m := labelPattern.FindStringSubmatch(label)
	if m == nil {
		return Address{}, fmt.Errorf("%w: %q", ErrBadLabel, label)
	}
	col, err := strconv.Atoi(m[2])
	if err != nil || col < 1 {
		return Address{}, fmt.Errorf("%w: %q", ErrBadLabel, label)
	}
	return Address{Row: rowIndex(m[1]), Col: col - 1}, nil
}
