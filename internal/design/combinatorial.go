package design

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/platebench/platebench/internal/palette"
	"github.com/platebench/platebench/internal/wellplate"
)

// Factor is one axis of a factorial design: a name and its ordered
// levels.
type Factor struct {
	Name   string
	Levels []string
}

// Combinatorial lays the full Cartesian product of its factors over
// the selection. The first factor varies slowest. When the selection
// exceeds the product size the combinations cycle, and the replicate
// number increments on each wrap. Randomize shuffles the destination
// wells only, never the combination order.
type Combinatorial struct {
	Factors   []Factor
	Randomize bool
}

// Combinations expands the factor levels in declaration order. Each
// combination holds one level per factor.
func (d Combinatorial) Combinations() [][]string {
	combos := [][]string{nil}
	for _, f := range d.Factors {
		next := make([][]string, 0, len(combos)*len(f.Levels))
		for _, c := range combos {
			for _, level := range f.Levels {
				row := make([]string, len(c), len(c)+1)
				copy(row, c)
				next = append(next, append(row, level))
			}
		}
		combos = next
	}
	return combos
}

func (d Combinatorial) label(combo []string) string {
	parts := make([]string, len(combo))
	for i, level := range combo {
		parts[i] = fmt.Sprintf("%s: %s", d.Factors[i].Name, level)
	}
	return strings.Join(parts, " + ")
}

// Apply writes the factorial layout onto the plate. A nil rng gets a
// time-seeded source. On error the plate is unchanged.
func (d Combinatorial) Apply(p *wellplate.Plate, wells []string, rng *rand.Rand) error {
	if len(d.Factors) < 2 || len(d.Factors) > 4 {
		return fmt.Errorf("%w: need 2 to 4 factors", ErrInvalidDesign)
	}
	for _, f := range d.Factors {
		if f.Name == "" || len(f.Levels) == 0 {
			return fmt.Errorf("%w: every factor needs a name and at least one level", ErrInvalidDesign)
		}
	}
	if len(wells) == 0 {
		return needWells(1, 0)
	}
	if err := checkWells(p, wells); err != nil {
		return err
	}

	targets := wells
	if d.Randomize {
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		targets = make([]string, len(wells))
		copy(targets, wells)
		rng.Shuffle(len(targets), func(i, j int) {
			targets[i], targets[j] = targets[j], targets[i]
		})
	}

	combos := d.Combinations()
	colors := palette.Gradient("high_contrast")

	for idx, id := range targets {
		w := p.Well(id)
		treatment := "Combination"
		compound := d.label(combos[idx%len(combos)])
		rep := idx/len(combos) + 1
		w.Treatment = &treatment
		w.Compound = &compound
		w.Replicate = &rep
		w.Color = colors[idx%len(colors)]
	}
	return nil
}
