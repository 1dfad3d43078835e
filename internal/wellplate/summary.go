package wellplate

import "fmt"

// Summary is a read-only rollup of a plate's assignments.
type Summary struct {
	TotalWells      int                 `json:"total_wells"`
	AssignedWells   int                 `json:"assigned_wells"`
	EmptyWells      int                 `json:"empty_wells"`
	Treatments      map[string][]string `json:"treatments"`
	ReplicateCounts map[string]int      `json:"replicates"`
}

// Summarize walks the plate in row-major order and tallies treatments
// and replicate counts. The plate is not mutated.
func Summarize(p *Plate) Summary {
	s := Summary{
		TotalWells:      len(p.Wells),
		Treatments:      make(map[string][]string),
		ReplicateCounts: make(map[string]int),
	}
	for _, id := range p.Addresses() {
		w := p.Wells[id]
		if !w.Assigned() {
			s.EmptyWells++
			continue
		}
		s.AssignedWells++
		treatment := *w.Treatment
		s.Treatments[treatment] = append(s.Treatments[treatment], id)

		compound := "unknown"
		if w.Compound != nil {
			compound = *w.Compound
		}
		s.ReplicateCounts[fmt.Sprintf("%s_%s", treatment, compound)]++
	}
	return s
}
