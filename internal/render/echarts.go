// Package render draws plate layouts: an interactive HTML scatter for
// browsers and a static PNG for reports.
package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/platebench/platebench/internal/palette"
	"github.com/platebench/platebench/internal/wellplate"
)

// PlateChart builds an ECharts scatter of the plate grid: one series
// per treatment plus one for empty wells, colored like the layout. Row
// A renders at the top, matching bench orientation.
func PlateChart(p *wellplate.Plate, theme palette.Theme) *charts.Scatter {
	type series struct {
		color string
		data  []opts.ScatterData
	}
	byTreatment := make(map[string]*series)
	var names []string

	for _, id := range p.Addresses() {
		w := p.Well(id)
		name := "empty"
		color := theme.Empty
		tooltip := id
		if w.Assigned() {
			name = *w.Treatment
			color = w.Color
			tooltip = fmt.Sprintf("%s: %s", id, gridTooltip(w))
		}
		s, ok := byTreatment[name]
		if !ok {
			s = &series{color: color}
			byTreatment[name] = s
			names = append(names, name)
		}
		addr, err := wellplate.ParseLabel(id)
		if err != nil {
			continue
		}
		s.data = append(s.data, opts.ScatterData{
			Name:  tooltip,
			Value: []interface{}{addr.Col + 1, p.Rows - addr.Row},
		})
	}
	sort.Strings(names)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       "Plate Layout",
			BackgroundColor: theme.Background,
			Width:           "900px",
			Height:          "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Plate Layout",
			Subtitle: fmt.Sprintf("%s %d×%d", p.Type, p.Rows, p.Cols),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: p.Cols + 1, Name: "Column"}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: p.Rows + 1, Name: "Row"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	for _, name := range names {
		s := byTreatment[name]
		scatter.AddSeries(name, s.data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.color}),
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 18}),
		)
	}
	return scatter
}

// HTML writes the interactive plate chart to a writer.
func HTML(w io.Writer, p *wellplate.Plate, theme palette.Theme) error {
	return PlateChart(p, theme).Render(w)
}

func gridTooltip(w *wellplate.Well) string {
	s := *w.Treatment
	if w.Compound != nil {
		s += fmt.Sprintf(" / %s", *w.Compound)
	}
	if w.Replicate != nil {
		s += fmt.Sprintf(" (Rep %d)", *w.Replicate)
	}
	return s
}
