package design

import (
	"fmt"

	"github.com/platebench/platebench/internal/palette"
	"github.com/platebench/platebench/internal/wellplate"
)

// TimeCourse spreads sampling time points over the selection in
// time-major order, all replicates of one time point before the next.
// Every well of a time point shares one gradient color.
type TimeCourse struct {
	Treatment         string
	Times             []string
	ReplicatesPerTime int
	Gradient          string
}

// Apply writes the time course onto the plate. The selection must hold
// len(Times)*ReplicatesPerTime wells; on error the plate is unchanged.
func (d TimeCourse) Apply(p *wellplate.Plate, wells []string) error {
	if d.Treatment == "" || len(d.Times) == 0 {
		return fmt.Errorf("%w: time course needs a treatment and time points", ErrInvalidDesign)
	}
	if d.ReplicatesPerTime < 1 {
		return fmt.Errorf("%w: need at least 1 replicate per time point", ErrInvalidDesign)
	}
	needed := len(d.Times) * d.ReplicatesPerTime
	if len(wells) < needed {
		return needWells(needed, len(wells))
	}
	if err := checkWells(p, wells); err != nil {
		return err
	}

	colors := palette.GradientColors(len(d.Times), d.Gradient)

	idx := 0
	for timeIdx, tp := range d.Times {
		for rep := 1; rep <= d.ReplicatesPerTime; rep++ {
			w := p.Well(wells[idx])
			idx++
			treatment := d.Treatment
			compound := fmt.Sprintf("%s @ %s", d.Treatment, tp)
			point := tp
			r := rep
			w.Treatment = &treatment
			w.Compound = &compound
			w.TimePoint = &point
			w.Replicate = &r
			w.Color = colors[timeIdx]
		}
	}
	return nil
}
