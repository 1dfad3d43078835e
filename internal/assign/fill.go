package assign

import (
	"github.com/platebench/platebench/internal/palette"
	"github.com/platebench/platebench/internal/wellplate"
)

// FillMode selects how a single group's items spread over a chosen
// well list during direct (non-strategy) assignment.
type FillMode int

const (
	// FillSequential cycles items in order; the replicate number
	// increments each time the item list wraps.
	FillSequential FillMode = iota
	// FillRandomItems draws an item uniformly per well, replicate 1.
	FillRandomItems
	// FillReplicateBlocks gives each item a contiguous run of
	// len(wells)/len(items) wells, numbering replicates within the run.
	FillReplicateBlocks
)

// FillGroup writes one group over exactly the given wells, in the
// given order, ignoring well availability: direct fill is the manual
// override path, unlike strategy assignment. Unknown ids are skipped.
func (e *Engine) FillGroup(p *wellplate.Plate, wells []string, g wellplate.Group, mode FillMode) {
	color := g.Color
	if color == "" {
		color = palette.DefaultAssignColor
	}

	set := func(id, item string, rep int) {
		w := p.Well(id)
		if w == nil {
			return
		}
		w.Treatment = &g.Name
		w.Compound = &item
		w.Replicate = &rep
		w.Color = color
	}

	if len(g.Items) == 0 {
		for _, id := range wells {
			set(id, g.Name, 1)
		}
		return
	}

	switch mode {
	case FillRandomItems:
		for _, id := range wells {
			set(id, g.Items[e.rng.Intn(len(g.Items))], 1)
		}
	case FillReplicateBlocks:
		repsPerItem := len(wells) / len(g.Items)
		if repsPerItem < 1 {
			repsPerItem = 1
		}
		idx := 0
		for _, item := range g.Items {
			for rep := 1; rep <= repsPerItem && idx < len(wells); rep++ {
				set(wells[idx], item, rep)
				idx++
			}
		}
	default:
		for i, id := range wells {
			set(id, g.Items[i%len(g.Items)], i/len(g.Items)+1)
		}
	}
}
