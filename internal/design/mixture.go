package design

import (
	"fmt"

	"github.com/platebench/platebench/internal/palette"
	"github.com/platebench/platebench/internal/wellplate"
)

// ApplyMixture writes an ordered compound mixture onto every selected
// well. Component order is identity-significant: it drives the label.
func ApplyMixture(p *wellplate.Plate, wells []string, components []wellplate.MixtureComponent) error {
	if len(components) == 0 {
		return fmt.Errorf("%w: mixture needs at least one component", ErrInvalidDesign)
	}
	if len(wells) == 0 {
		return needWells(1, 0)
	}
	if err := checkWells(p, wells); err != nil {
		return err
	}

	label := wellplate.MixtureLabel(components)
	for _, id := range wells {
		w := p.Well(id)
		treatment := "Mixture"
		compound := label
		rep := 1
		w.Treatment = &treatment
		w.Compound = &compound
		w.Mixture = append([]wellplate.MixtureComponent(nil), components...)
		w.Replicate = &rep
		w.Color = palette.MixtureColor
	}
	return nil
}
