package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/platebench/platebench/internal/palette"
	"github.com/platebench/platebench/internal/wellplate"
)

// SavePNG draws the plate layout as a static image, one filled circle
// per well in its layout color, and writes it to path.
func SavePNG(p *wellplate.Plate, theme palette.Theme, path string) error {
	plt := plot.New()
	plt.Title.Text = fmt.Sprintf("Plate Layout: %s %d×%d", p.Type, p.Rows, p.Cols)
	plt.X.Label.Text = "Column"
	plt.Y.Label.Text = "Row"
	plt.X.Min, plt.X.Max = 0, float64(p.Cols+1)
	plt.Y.Min, plt.Y.Max = 0, float64(p.Rows+1)

	// One scatter per distinct color keeps the draw list small on
	// 384-well plates.
	byColor := make(map[string]plotter.XYs)
	var order []string
	for _, id := range p.Addresses() {
		addr, err := wellplate.ParseLabel(id)
		if err != nil {
			continue
		}
		w := p.Well(id)
		hex := w.Color
		if hex == "" {
			hex = theme.Empty
		}
		if _, ok := byColor[hex]; !ok {
			order = append(order, hex)
		}
		byColor[hex] = append(byColor[hex], plotter.XY{
			X: float64(addr.Col + 1),
			Y: float64(p.Rows - addr.Row),
		})
	}

	for _, hex := range order {
		s, err := plotter.NewScatter(byColor[hex])
		if err != nil {
			return err
		}
		r, g, b, err := palette.ParseHex(hex)
		if err != nil {
			return fmt.Errorf("well color %q: %w", hex, err)
		}
		s.GlyphStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(6)
		plt.Add(s)
	}

	width := vg.Length(p.Cols) * 0.5 * vg.Inch
	height := vg.Length(p.Rows) * 0.5 * vg.Inch
	if width < 6*vg.Inch {
		width = 6 * vg.Inch
	}
	if height < 4*vg.Inch {
		height = 4 * vg.Inch
	}
	return plt.Save(width, height, path)
}
