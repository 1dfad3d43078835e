// Package export serializes plate layouts: a grid CSV for humans, a
// JSON document for round-tripping, a long-format SQLite table for
// analysis pipelines, and a markdown report.
package export

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/platebench/platebench/internal/wellplate"
)

// CSV renders the plate as a labeled grid followed by a per-well
// detail block. Assigned cells read "treatment - compound (Rep n)".
func CSV(p *wellplate.Plate) (string, error) {
	var buf strings.Builder
	w := csv.NewWriter(&buf)

	records := [][]string{
		{fmt.Sprintf("platebench - %s", p.Type)},
		{fmt.Sprintf("Created: %s", p.Created.Format("2006-01-02 15:04"))},
		{},
	}

	header := make([]string, p.Cols+1)
	for j := 0; j < p.Cols; j++ {
		header[j+1] = fmt.Sprintf("%d", j+1)
	}
	records = append(records, header)

	for i := 0; i < p.Rows; i++ {
		row := make([]string, 0, p.Cols+1)
		row = append(row, wellplate.RowLetters(i))
		for j := 0; j < p.Cols; j++ {
			well := p.Well(wellplate.Address{Row: i, Col: j}.Label())
			row = append(row, gridCell(well))
		}
		records = append(records, row)
	}

	records = append(records,
		[]string{},
		[]string{"Well Details:"},
		[]string{"Well", "Treatment", "Compound", "Subject", "Replicate"},
	)
	for _, id := range p.Addresses() {
		well := p.Well(id)
		if !well.Assigned() {
			continue
		}
		records = append(records, detailRow(id, well))
	}

	if err := w.WriteAll(records); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func gridCell(w *wellplate.Well) string {
	if !w.Assigned() {
		return ""
	}
	cell := *w.Treatment
	if w.Compound != nil {
		cell += fmt.Sprintf(" - %s", *w.Compound)
	}
	if w.Replicate != nil {
		cell += fmt.Sprintf(" (Rep %d)", *w.Replicate)
	}
	return cell
}

func detailRow(id string, w *wellplate.Well) []string {
	compound := ""
	if len(w.Mixture) > 0 {
		compound = wellplate.MixtureLabel(w.Mixture)
	} else if w.Compound != nil {
		compound = *w.Compound
	}
	subject := ""
	if w.Subject != nil {
		subject = *w.Subject
	}
	replicate := ""
	if w.Replicate != nil {
		replicate = fmt.Sprintf("%d", *w.Replicate)
	}
	return []string{id, *w.Treatment, compound, subject, replicate}
}
