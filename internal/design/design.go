// Package design generates ordered treatment sequences for common
// experiment layouts (serial dilutions, dose-response curves, time
// courses, factorial combinations) and writes them onto selected
// wells. Unlike strategy assignment, a design that cannot fit its
// selection reports an error and leaves the plate untouched.
package design

import (
	"errors"
	"fmt"

	"github.com/platebench/platebench/internal/wellplate"
)

var (
	// ErrInsufficientWells reports a selection smaller than the design
	// requires. The message carries the needed count.
	ErrInsufficientWells = errors.New("insufficient wells selected")

	// ErrInvalidDesign reports parameters the generator cannot work
	// with, such as too few factors or a non-positive log-scale
	// minimum.
	ErrInvalidDesign = errors.New("invalid design")
)

func needWells(needed, have int) error {
	return fmt.Errorf("%w: need %d, have %d", ErrInsufficientWells, needed, have)
}

// checkWells rejects target ids the plate does not have. Generators
// call this before their first write so a bad id fails the whole
// design with the plate untouched.
func checkWells(p *wellplate.Plate, wells []string) error {
	for _, id := range wells {
		if p.Well(id) == nil {
			return fmt.Errorf("%w: well %s is not on the plate", ErrInvalidDesign, id)
		}
	}
	return nil
}
