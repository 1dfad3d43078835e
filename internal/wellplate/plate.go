package wellplate

import (
	"fmt"
	"strings"
	"time"
)

// MixtureComponent is one compound in a well's mixture. Component
// order is identity-significant: it determines the generated label.
type MixtureComponent struct {
	Compound      string  `json:"compound"`
	Concentration float64 `json:"concentration"`
	Unit          string  `json:"unit"`
}

// MixtureLabel renders an ordered component list the way exports and
// the UI display it, e.g. "Drug A (10 µM) + Drug B (0.5 nM)".
func MixtureLabel(components []MixtureComponent) string {
	parts := make([]string, len(components))
	for i, c := range components {
		parts[i] = fmt.Sprintf("%s (%g %s)", c.Compound, c.Concentration, c.Unit)
	}
	return strings.Join(parts, " + ")
}

// Well is the mutable payload of one plate position. A well is empty
// iff Treatment is nil; all other assignment fields are meaningful
// only while a treatment is set.
type Well struct {
	Treatment     *string            `json:"treatment"`
	Compound      *string            `json:"compound"`
	Mixture       []MixtureComponent `json:"compound_mixture,omitempty"`
	Subject       *string            `json:"subject"`
	Replicate     *int               `json:"replicate"`
	Concentration *string            `json:"concentration,omitempty"`
	TimePoint     *string            `json:"time_point,omitempty"`
	Color         string             `json:"color"`
}

// Assigned reports whether the well carries a treatment.
func (w *Well) Assigned() bool {
	return w != nil && w.Treatment != nil
}

// Reset clears every assignment field and restores the given
// empty-well color.
func (w *Well) Reset(emptyColor string) {
	w.Treatment = nil
	w.Compound = nil
	w.Mixture = nil
	w.Subject = nil
	w.Replicate = nil
	w.Concentration = nil
	w.TimePoint = nil
	w.Color = emptyColor
}

// Plate is a rectangular grid of wells. The Wells map is populated
// once at construction with exactly Rows*Cols entries; afterwards only
// the Well payloads mutate, never the key set.
type Plate struct {
	Type    string           `json:"type"`
	Rows    int              `json:"rows"`
	Cols    int              `json:"cols"`
	Wells   map[string]*Well `json:"wells"`
	Created time.Time        `json:"created"`
}

// New builds a plate with every well empty and colored emptyColor.
func New(plateType string, rows, cols int, emptyColor string) (*Plate, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("plate dimensions must be positive, got %dx%d", rows, cols)
	}
	p := &Plate{
		Type:    plateType,
		Rows:    rows,
		Cols:    cols,
		Wells:   make(map[string]*Well, rows*cols),
		Created: time.Now(),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p.Wells[Address{Row: r, Col: c}.Label()] = &Well{Color: emptyColor}
		}
	}
	return p, nil
}

// Addresses returns every well label in row-major order.
func (p *Plate) Addresses() []string {
	ids := make([]string, 0, p.Rows*p.Cols)
	for r := 0; r < p.Rows; r++ {
		for c := 0; c < p.Cols; c++ {
			ids = append(ids, Address{Row: r, Col: c}.Label())
		}
	}
	return ids
}

// Well returns the state at the given label, or nil if the label does
// not belong to this plate.
func (p *Plate) Well(id string) *Well {
	return p.Wells[id]
}

// AvailableWells returns the labels of all empty wells in row-major
// order.
func (p *Plate) AvailableWells() []string {
	var free []string
	for _, id := range p.Addresses() {
		if !p.Wells[id].Assigned() {
			free = append(free, id)
		}
	}
	return free
}

// Clear resets the listed wells to empty with the given color. A nil
// id list clears the whole plate; unknown ids are ignored.
func (p *Plate) Clear(ids []string, emptyColor string) {
	if ids == nil {
		ids = p.Addresses()
	}
	for _, id := range ids {
		if w, ok := p.Wells[id]; ok {
			w.Reset(emptyColor)
		}
	}
}
