package design

import (
	"fmt"

	"github.com/platebench/platebench/internal/palette"
	"github.com/platebench/platebench/internal/wellplate"
)

// SerialDilution lays a geometric concentration series over the first
// Steps selected wells, in selection order.
type SerialDilution struct {
	Compound  string
	Start     float64
	Factor    float64
	Steps     int
	Unit      string
	BaseColor string
}

// Concentrations returns the series start/factor^i for i in [0,Steps).
func (d SerialDilution) Concentrations() []float64 {
	conc := make([]float64, d.Steps)
	for i := range conc {
		c := d.Start
		for j := 0; j < i; j++ {
			c /= d.Factor
		}
		conc[i] = c
	}
	return conc
}

// Apply writes the dilution series onto the plate. The selection must
// hold at least Steps wells; on error the plate is unchanged.
func (d SerialDilution) Apply(p *wellplate.Plate, wells []string) error {
	if d.Compound == "" || d.Steps < 1 {
		return fmt.Errorf("%w: dilution needs a compound and at least one step", ErrInvalidDesign)
	}
	if d.Factor <= 1 {
		return fmt.Errorf("%w: dilution factor must exceed 1", ErrInvalidDesign)
	}
	if len(wells) < d.Steps {
		return needWells(d.Steps, len(wells))
	}
	if err := checkWells(p, wells); err != nil {
		return err
	}

	base := d.BaseColor
	if base == "" {
		base = palette.DefaultAssignColor
	}
	colors, err := palette.DilutionGradient(base, d.Steps)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDesign, err)
	}

	for i, conc := range d.Concentrations() {
		w := p.Well(wells[i])
		treatment := "Serial Dilution"
		compound := d.Compound
		label := fmt.Sprintf("%.2f %s", conc, d.Unit)
		rep := 1
		w.Treatment = &treatment
		w.Compound = &compound
		w.Concentration = &label
		w.Replicate = &rep
		w.Color = colors[i]
	}
	return nil
}
