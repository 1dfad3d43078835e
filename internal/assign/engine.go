package assign

import (
	"math/rand"
	"time"

	"github.com/platebench/platebench/internal/palette"
	"github.com/platebench/platebench/internal/wellplate"
)

// Engine applies placement strategies with an injectable random
// source, so randomized layouts are reproducible under a fixed seed.
type Engine struct {
	rng *rand.Rand
}

// NewEngine builds an engine around the given source. A nil rng gets a
// time-seeded source, matching the unseeded behavior of interactive
// use.
func NewEngine(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rng: rng}
}

// placement is one pending well assignment.
type placement struct {
	treatment string
	item      string
	replicate int
	color     string
}

// flatten expands groups into the canonical demand sequence: group,
// then item, then replicate 1..replicates. Presence groups contribute
// their name as the sole item.
func flatten(groups []wellplate.Group, replicates int) []placement {
	var seq []placement
	for _, g := range groups {
		color := g.Color
		if color == "" {
			color = palette.DefaultAssignColor
		}
		for _, item := range g.EffectiveItems() {
			for rep := 1; rep <= replicates; rep++ {
				seq = append(seq, placement{
					treatment: g.Name,
					item:      item,
					replicate: rep,
					color:     color,
				})
			}
		}
	}
	return seq
}

// apply writes placements onto wells positionally, truncating to the
// shorter of the two lists. Surplus demand is dropped silently;
// surplus wells stay empty. Both halves of that policy are deliberate.
func apply(p *wellplate.Plate, wells []string, seq []placement) {
	n := len(wells)
	if len(seq) < n {
		n = len(seq)
	}
	for i := 0; i < n; i++ {
		w := p.Well(wells[i])
		if w == nil {
			continue
		}
		pl := seq[i]
		item := pl.item
		rep := pl.replicate
		w.Treatment = &pl.treatment
		w.Compound = &item
		w.Replicate = &rep
		w.Color = pl.color
	}
}

// Assign distributes the groups over the plate's empty wells using the
// given strategy. Wells that already carry a treatment are untouched.
func (e *Engine) Assign(p *wellplate.Plate, groups []wellplate.Group, strategy Strategy, replicates int) {
	switch strategy {
	case Random:
		e.assignRandom(p, groups, replicates)
	case Serpentine:
		e.assignSerpentine(p, groups, replicates)
	case Block:
		e.assignBlock(p, groups)
	case Checkerboard:
		e.assignCheckerboard(p, groups, replicates)
	default:
		e.assignEdgeAware(p, groups, replicates)
	}
}

func (e *Engine) assignRandom(p *wellplate.Plate, groups []wellplate.Group, replicates int) {
	available := p.AvailableWells()
	e.rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})
	apply(p, available, flatten(groups, replicates))
}

// serpentinePath walks the grid boustrophedon: even rows left to
// right, odd rows right to left.
func serpentinePath(rows, cols int) []string {
	path := make([]string, 0, rows*cols)
	for r := 0; r < rows; r++ {
		if r%2 == 0 {
			for c := 0; c < cols; c++ {
				path = append(path, wellplate.Address{Row: r, Col: c}.Label())
			}
		} else {
			for c := cols - 1; c >= 0; c-- {
				path = append(path, wellplate.Address{Row: r, Col: c}.Label())
			}
		}
	}
	return path
}

func (e *Engine) assignSerpentine(p *wellplate.Plate, groups []wellplate.Group, replicates int) {
	var available []string
	for _, id := range serpentinePath(p.Rows, p.Cols) {
		if !p.Well(id).Assigned() {
			available = append(available, id)
		}
	}
	apply(p, available, flatten(groups, replicates))
}

// blockSide clamps the block edge length to [2,4], never exceeding
// half the plate in either dimension.
func blockSide(rows, cols int) int {
	side := 4
	if rows/2 < side {
		side = rows / 2
	}
	if cols/2 < side {
		side = cols / 2
	}
	if side < 2 {
		side = 2
	}
	return side
}

func (e *Engine) assignBlock(p *wellplate.Plate, groups []wellplate.Group) {
	if len(groups) == 0 {
		return
	}
	side := blockSide(p.Rows, p.Cols)

	groupIdx := 0
	for blockRow := 0; blockRow < p.Rows; blockRow += side {
		for blockCol := 0; blockCol < p.Cols; blockCol += side {
			g := groups[groupIdx%len(groups)]
			groupIdx++

			items := g.EffectiveItems()
			color := g.Color
			if color == "" {
				color = palette.DefaultAssignColor
			}

			itemIdx := 0
			for r := blockRow; r < blockRow+side && r < p.Rows; r++ {
				for c := blockCol; c < blockCol+side && c < p.Cols; c++ {
					w := p.Well(wellplate.Address{Row: r, Col: c}.Label())
					if w.Assigned() {
						continue
					}
					item := items[itemIdx%len(items)]
					itemIdx++
					rep := 1
					w.Treatment = &g.Name
					w.Compound = &item
					w.Replicate = &rep
					w.Color = color
				}
			}
		}
	}
}

func (e *Engine) assignCheckerboard(p *wellplate.Plate, groups []wellplate.Group, replicates int) {
	if len(groups) < 2 {
		e.assignRandom(p, groups, replicates)
		return
	}
	for r := 0; r < p.Rows; r++ {
		for c := 0; c < p.Cols; c++ {
			w := p.Well(wellplate.Address{Row: r, Col: c}.Label())
			if w.Assigned() {
				continue
			}
			g := groups[(r+c)%len(groups)]
			item := g.Name
			if len(g.Items) > 0 {
				item = g.Items[e.rng.Intn(len(g.Items))]
			}
			color := g.Color
			if color == "" {
				color = palette.DefaultAssignColor
			}
			rep := 1
			w.Treatment = &g.Name
			w.Compound = &item
			w.Replicate = &rep
			w.Color = color
		}
	}
}

// WellTier classifies a well position relative to the plate perimeter.
type WellTier int

const (
	TierCenter WellTier = iota
	TierEdge
	TierCorner
)

// TierOf returns the tier of a grid position.
func TierOf(row, col, rows, cols int) WellTier {
	rowEdge := row == 0 || row == rows-1
	colEdge := col == 0 || col == cols-1
	switch {
	case rowEdge && colEdge:
		return TierCorner
	case rowEdge || colEdge:
		return TierEdge
	default:
		return TierCenter
	}
}

// assignEdgeAware fills center wells first, then edges, then corners.
// Perimeter wells suffer evaporation and temperature artifacts, so
// they absorb the overflow or stay empty.
func (e *Engine) assignEdgeAware(p *wellplate.Plate, groups []wellplate.Group, replicates int) {
	var center, edge, corner []string
	for r := 0; r < p.Rows; r++ {
		for c := 0; c < p.Cols; c++ {
			id := wellplate.Address{Row: r, Col: c}.Label()
			if p.Well(id).Assigned() {
				continue
			}
			switch TierOf(r, c, p.Rows, p.Cols) {
			case TierCorner:
				corner = append(corner, id)
			case TierEdge:
				edge = append(edge, id)
			default:
				center = append(center, id)
			}
		}
	}

	for _, tier := range [][]string{center, edge, corner} {
		e.rng.Shuffle(len(tier), func(i, j int) {
			tier[i], tier[j] = tier[j], tier[i]
		})
	}
	available := append(append(center, edge...), corner...)

	seq := flatten(groups, replicates)
	e.rng.Shuffle(len(seq), func(i, j int) {
		seq[i], seq[j] = seq[j], seq[i]
	})
	apply(p, available, seq)
}

// Clear resets the listed wells (all wells when nil) to the default
// background color. Unknown well ids are ignored; Clear never fails.
func (e *Engine) Clear(p *wellplate.Plate, wellIDs []string) {
	p.Clear(wellIDs, palette.ClearColor)
}
