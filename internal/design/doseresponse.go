package design

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/platebench/platebench/internal/palette"
	"github.com/platebench/platebench/internal/wellplate"
)

// DoseScale selects how dose values are spaced between min and max.
type DoseScale int

const (
	ScaleLogarithmic DoseScale = iota
	ScaleLinear
)

// doseGradientBase colors dose series red, darkest at the lowest dose.
const doseGradientBase = "#DC2626"

// DoseResponse spreads a dose series over the selection in dose-major
// order: every replicate of a dose before the next dose.
type DoseResponse struct {
	Compound    string
	Scale       DoseScale
	MinDose     float64
	MaxDose     float64
	Doses       int
	Replicates  int
	Unit        string
	IncludeZero bool
}

// Labels computes the dose labels, including the optional leading zero
// dose. Log spacing requires a positive minimum.
func (d DoseResponse) Labels() ([]string, error) {
	if d.Doses < 2 {
		return nil, fmt.Errorf("%w: need at least 2 doses", ErrInvalidDesign)
	}
	values := make([]float64, d.Doses)
	switch d.Scale {
	case ScaleLinear:
		floats.Span(values, d.MinDose, d.MaxDose)
	default:
		if d.MinDose <= 0 {
			return nil, fmt.Errorf("%w: min dose must be > 0 for logarithmic scale", ErrInvalidDesign)
		}
		floats.LogSpan(values, d.MinDose, d.MaxDose)
	}

	labels := make([]string, 0, d.Doses+1)
	if d.IncludeZero {
		labels = append(labels, fmt.Sprintf("0 %s", d.Unit))
	}
	for _, v := range values {
		labels = append(labels, fmt.Sprintf("%.3g %s", v, d.Unit))
	}
	return labels, nil
}

// Apply writes the dose series onto the plate. The selection must hold
// doses*replicates wells; on error the plate is unchanged.
func (d DoseResponse) Apply(p *wellplate.Plate, wells []string) error {
	if d.Compound == "" {
		return fmt.Errorf("%w: dose response needs a compound", ErrInvalidDesign)
	}
	if d.Replicates < 1 {
		return fmt.Errorf("%w: need at least 1 replicate per dose", ErrInvalidDesign)
	}
	labels, err := d.Labels()
	if err != nil {
		return err
	}
	needed := len(labels) * d.Replicates
	if len(wells) < needed {
		return needWells(needed, len(wells))
	}
	if err := checkWells(p, wells); err != nil {
		return err
	}

	colors, err := palette.DilutionGradient(doseGradientBase, len(labels))
	if err != nil {
		return err
	}

	idx := 0
	for doseIdx, dose := range labels {
		for rep := 1; rep <= d.Replicates; rep++ {
			w := p.Well(wells[idx])
			idx++
			treatment := d.Compound
			compound := fmt.Sprintf("%s %s", d.Compound, dose)
			conc := dose
			r := rep
			w.Treatment = &treatment
			w.Compound = &compound
			w.Concentration = &conc
			w.Replicate = &r
			w.Color = colors[doseIdx]
		}
	}
	return nil
}
