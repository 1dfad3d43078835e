package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/platebench/platebench/internal/monitoring"
	"github.com/platebench/platebench/internal/palette"
	"github.com/platebench/platebench/internal/wellplate"
)

const (
	// FormatVersion tags exported documents.
	FormatVersion = "0.1.0"
	// GeneratorName identifies this tool in exported metadata.
	GeneratorName = "platebench"
)

// Metadata describes the exported plate.
type Metadata struct {
	Type      string    `json:"type"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	Created   time.Time `json:"created"`
	Version   string    `json:"version"`
	Generator string    `json:"generator"`
}

// WellRecord is one assigned well in the exported document. Empty
// wells are omitted.
type WellRecord struct {
	Treatment *string                      `json:"treatment"`
	Compound  *string                      `json:"compound"`
	Subject   *string                      `json:"subject"`
	Replicate *int                         `json:"replicate"`
	Color     string                       `json:"color"`
	Mixture   []wellplate.MixtureComponent `json:"compound_mixture,omitempty"`
}

// Document is the JSON export format.
type Document struct {
	Metadata Metadata              `json:"metadata"`
	Wells    map[string]WellRecord `json:"wells"`
}

// JSON serializes the plate's assigned wells plus metadata.
func JSON(p *wellplate.Plate) ([]byte, error) {
	doc := Document{
		Metadata: Metadata{
			Type:      p.Type,
			Rows:      p.Rows,
			Cols:      p.Cols,
			Created:   p.Created,
			Version:   FormatVersion,
			Generator: GeneratorName,
		},
		Wells: make(map[string]WellRecord),
	}
	for _, id := range p.Addresses() {
		w := p.Well(id)
		if !w.Assigned() {
			continue
		}
		doc.Wells[id] = WellRecord{
			Treatment: w.Treatment,
			Compound:  w.Compound,
			Subject:   w.Subject,
			Replicate: w.Replicate,
			Color:     w.Color,
			Mixture:   w.Mixture,
		}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// FromJSON rebuilds a plate from an exported document. Wells absent
// from the document come back empty; well ids outside the plate's
// dimensions are ignored.
func FromJSON(data []byte) (*wellplate.Plate, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid layout document: %w", err)
	}

	p, err := wellplate.New(doc.Metadata.Type, doc.Metadata.Rows, doc.Metadata.Cols, palette.ClearColor)
	if err != nil {
		return nil, fmt.Errorf("invalid layout document: %w", err)
	}
	if !doc.Metadata.Created.IsZero() {
		p.Created = doc.Metadata.Created
	}

	for id, rec := range doc.Wells {
		w := p.Well(id)
		if w == nil {
			monitoring.Logf("import: skipping well %s outside %dx%d plate", id, doc.Metadata.Rows, doc.Metadata.Cols)
			continue
		}
		w.Treatment = rec.Treatment
		w.Compound = rec.Compound
		w.Subject = rec.Subject
		w.Replicate = rec.Replicate
		w.Mixture = rec.Mixture
		if rec.Color != "" {
			w.Color = rec.Color
		}
	}
	return p, nil
}
