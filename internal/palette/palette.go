// Package palette provides the color themes, named gradients, and ramp
// generators used when assigning and rendering plate layouts.
package palette

import "fmt"

// Default well colors shared across assignment paths.
const (
	DefaultAssignColor = "#6366F1"
	MixtureColor       = "#9F7AEA"
	ClearColor         = "#2D3748"
)

// Theme is a named set of UI colors. Only Empty participates in core
// semantics (the reset color of an unassigned well); the rest feed the
// renderers.
type Theme struct {
	Name       string
	Background string
	Surface    string
	Primary    string
	Secondary  string
	Accent     string
	Empty      string
	Hover      string
	Text       string
	Muted      string
	WellBorder string
}

var themes = map[string]Theme{
	"dark": {
		Name:       "dark",
		Background: "#1A1A1A",
		Surface:    "#2D2D2D",
		Primary:    "#818CF8",
		Secondary:  "#A78BFA",
		Accent:     "#F472B6",
		Empty:      "#404040",
		Hover:      "#525252",
		Text:       "#F9FAFB",
		Muted:      "#D1D5DB",
		WellBorder: "#525252",
	},
	"light": {
		Name:       "light",
		Background: "#FFFFFF",
		Surface:    "#F9FAFB",
		Primary:    "#4F46E5",
		Secondary:  "#7C3AED",
		Accent:     "#DB2777",
		Empty:      "#D1D5DB",
		Hover:      "#9CA3AF",
		Text:       "#111827",
		Muted:      "#4B5563",
		WellBorder: "#9CA3AF",
	},
	"nature": {
		Name:       "nature",
		Background: "#F3F4F6",
		Surface:    "#ECFDF5",
		Primary:    "#059669",
		Secondary:  "#14B8A6",
		Accent:     "#F59E0B",
		Empty:      "#D1FAE5",
		Hover:      "#A7F3D0",
		Text:       "#064E3B",
		Muted:      "#047857",
		WellBorder: "#6EE7B7",
	},
}

// ThemeByName looks up a theme; ok is false for unknown names.
func ThemeByName(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// DefaultTheme is the theme used when none is configured.
func DefaultTheme() Theme {
	return themes["dark"]
}

// ThemeNames lists the available theme names.
func ThemeNames() []string {
	return []string{"dark", "light", "nature"}
}

var gradients = map[string][]string{
	"purple_pink":   {"#6366F1", "#8B5CF6", "#A78BFA", "#C084FC", "#E879F9", "#EC4899"},
	"blue_cyan":     {"#3B82F6", "#60A5FA", "#93C5FD", "#06B6D4", "#22D3EE", "#67E8F9"},
	"green_emerald": {"#10B981", "#34D399", "#6EE7B7", "#059669", "#10B981", "#34D399"},
	"amber_orange":  {"#F59E0B", "#FCD34D", "#FDE68A", "#FB923C", "#FDBA74", "#FED7AA"},
	"high_contrast": {
		"#DC2626", "#059669", "#2563EB", "#D97706", "#7C3AED", "#0891B2",
		"#BE185D", "#16A34A", "#1D4ED8", "#EA580C", "#6D28D9", "#0E7490",
		"#881337", "#15803D", "#1E3A8A", "#C2410C", "#581C87", "#155E75",
		"#991B1B", "#047857", "#1E40AF", "#B45309", "#6B21A8", "#0C7180",
	},
}

// Gradient returns the ordered color list for a named gradient, or nil
// for an unknown name.
func Gradient(name string) []string {
	return gradients[name]
}

// GradientColors returns n colors from the named gradient. When the
// gradient has fewer than n entries (or the name is unknown) the ramp
// falls back to an HSL hue sweep.
func GradientColors(n int, name string) []string {
	if n <= 0 {
		return nil
	}
	if g, ok := gradients[name]; ok && n <= len(g) {
		return append([]string(nil), g[:n]...)
	}

	colors := make([]string, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n) * 0.8
		saturation := 0.7 + float64(i)/float64(n)*0.3
		lightness := 0.5 + float64(i)/float64(n)*0.2
		r, g, b := hslToRGB(hue, saturation, lightness)
		colors[i] = fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return colors
}

// DilutionGradient ramps a base color from dark to light across the
// given number of dilution steps.
func DilutionGradient(base string, steps int) ([]string, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("dilution gradient needs at least one step, got %d", steps)
	}
	r, g, b, err := ParseHex(base)
	if err != nil {
		return nil, err
	}
	h, s, l := rgbToHSL(r, g, b)

	colors := make([]string, steps)
	for i := 0; i < steps; i++ {
		lightness := l
		if steps > 1 {
			lightness = 0.3 + float64(i)/float64(steps-1)*0.5
		}
		cr, cg, cb := hslToRGB(h, s, lightness)
		colors[i] = fmt.Sprintf("#%02x%02x%02x", cr, cg, cb)
	}
	return colors, nil
}

// ParseHex splits a "#RRGGBB" color into components.
func ParseHex(hex string) (r, g, b uint8, err error) {
	var rv, gv, bv int
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &rv, &gv, &bv); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", hex)
	}
	return uint8(rv), uint8(gv), uint8(bv), nil
}

// rgbToHSL converts 0-255 RGB components to hue/saturation/lightness
// in the 0-1 range.
func rgbToHSL(r, g, b uint8) (h, s, l float64) {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	max, min := rf, rf
	for _, v := range []float64{gf, bf} {
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	l = (max + min) / 2

	if max == min {
		return 0, 0, l
	}

	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	switch max {
	case rf:
		h = (gf - bf) / d
		if gf < bf {
			h += 6
		}
	case gf:
		h = (bf-rf)/d + 2
	default:
		h = (rf-gf)/d + 4
	}
	h /= 6
	return h, s, l
}

// hslToRGB converts HSL (0-1 range) to 0-255 RGB components.
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64

	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}

	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
