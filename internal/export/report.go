package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/platebench/platebench/internal/wellplate"
)

// Report renders a markdown summary of the plate: dimensions,
// utilization, and per-treatment well counts.
func Report(p *wellplate.Plate) string {
	s := wellplate.Summarize(p)

	var b strings.Builder
	b.WriteString("# Well Plate Report\n")
	fmt.Fprintf(&b, "**Type:** %s\n", p.Type)
	fmt.Fprintf(&b, "**Created:** %s\n", p.Created.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "**Dimensions:** %d × %d\n\n", p.Rows, p.Cols)

	b.WriteString("## Statistics\n")
	fmt.Fprintf(&b, "- Total wells: %d\n", s.TotalWells)
	fmt.Fprintf(&b, "- Assigned wells: %d\n", s.AssignedWells)
	fmt.Fprintf(&b, "- Empty wells: %d\n", s.EmptyWells)
	fmt.Fprintf(&b, "- Utilization: %.1f%%\n", float64(s.AssignedWells)/float64(s.TotalWells)*100)

	if len(s.Treatments) > 0 {
		b.WriteString("\n## Treatment Distribution\n")
		names := make([]string, 0, len(s.Treatments))
		for name := range s.Treatments {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "- %s: %d wells\n", name, len(s.Treatments[name]))
		}
	}
	return b.String()
}
