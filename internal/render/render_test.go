package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platebench/platebench/internal/palette"
	"github.com/platebench/platebench/internal/wellplate"
)

func layoutPlate(t *testing.T) *wellplate.Plate {
	t.Helper()
	p, err := wellplate.New("24-well", 4, 6, palette.ClearColor)
	require.NoError(t, err)

	treatment := "Control"
	compound := "DMSO"
	rep := 1
	w := p.Well("B3")
	w.Treatment = &treatment
	w.Compound = &compound
	w.Replicate = &rep
	w.Color = "#059669"
	return p
}

func TestHTMLRendersSeriesPerTreatment(t *testing.T) {
	p := layoutPlate(t)

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, p, palette.DefaultTheme()))
	out := buf.String()

	assert.Contains(t, out, "Plate Layout")
	assert.Contains(t, out, "Control")
	assert.Contains(t, out, "empty")
	assert.Contains(t, out, "#059669")
	assert.True(t, strings.Contains(out, "echarts"), "should embed an echarts chart")
}

func TestSavePNG(t *testing.T) {
	p := layoutPlate(t)
	path := filepath.Join(t.TempDir(), "layout.png")
	require.NoError(t, SavePNG(p, palette.DefaultTheme(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSavePNGRejectsBadColor(t *testing.T) {
	p := layoutPlate(t)
	p.Well("A1").Color = "not-a-color"
	err := SavePNG(p, palette.DefaultTheme(), filepath.Join(t.TempDir(), "layout.png"))
	assert.Error(t, err)
}
