// Package session holds the mutable state of one design session: the
// plates being edited, the experimental groups, the current well
// selection, and the display preferences. A Session is owned by a
// single caller; hosts serving multiple clients must serialize access
// themselves.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/platebench/platebench/internal/palette"
	"github.com/platebench/platebench/internal/wellplate"
)

// ErrNoPlate reports an operation that needs a current plate when none
// has been created yet.
var ErrNoPlate = errors.New("no plate in session")

// Session is the explicit state container for one design session.
type Session struct {
	plates       map[string]*wellplate.Plate
	plateOrder   []string
	currentPlate string
	groups       []wellplate.Group
	selection    []string
	theme        palette.Theme
	gradient     string
	colorIdx     int
	now          func() time.Time
}

// New builds an empty session with the default theme and gradient.
func New() *Session {
	theme, _ := palette.ThemeByName("nature")
	return &Session{
		plates:   make(map[string]*wellplate.Plate),
		theme:    theme,
		gradient: "high_contrast",
		now:      time.Now,
	}
}

// NewPlate creates a plate, makes it current, and clears the
// selection. The generated id combines the plate type with a creation
// timestamp.
func (s *Session) NewPlate(plateType string, rows, cols int) (string, error) {
	p, err := wellplate.New(plateType, rows, cols, s.theme.Empty)
	if err != nil {
		return "", err
	}
	id := fmt.Sprintf("%s_%s", plateType, s.now().Format("20060102_150405"))
	if _, exists := s.plates[id]; !exists {
		s.plateOrder = append(s.plateOrder, id)
	}
	s.plates[id] = p
	s.currentPlate = id
	s.selection = nil
	return id, nil
}

// Plate returns the plate with the given id, or nil.
func (s *Session) Plate(id string) *wellplate.Plate {
	return s.plates[id]
}

// CurrentPlate returns the plate being edited, or an error when the
// session holds none.
func (s *Session) CurrentPlate() (*wellplate.Plate, error) {
	p, ok := s.plates[s.currentPlate]
	if !ok {
		return nil, ErrNoPlate
	}
	return p, nil
}

// CurrentPlateID returns the id of the plate being edited, or "".
func (s *Session) CurrentPlateID() string {
	return s.currentPlate
}

// PlateIDs lists all plate ids in creation order.
func (s *Session) PlateIDs() []string {
	return append([]string(nil), s.plateOrder...)
}

// SelectPlate makes an existing plate current and clears the
// selection.
func (s *Session) SelectPlate(id string) error {
	if _, ok := s.plates[id]; !ok {
		return fmt.Errorf("%w: %q", ErrNoPlate, id)
	}
	s.currentPlate = id
	s.selection = nil
	return nil
}

// AddGroup registers a group. Re-adding a name replaces the earlier
// group in place, keeping its position in the ordering. An empty color
// draws the next color from the session gradient.
func (s *Session) AddGroup(name string, items []string, color string) wellplate.Group {
	if color == "" {
		color = s.NextColor()
	}
	g := wellplate.NewGroup(name, items, color)
	for i, existing := range s.groups {
		if existing.Name == name {
			s.groups[i] = g
			return g
		}
	}
	s.groups = append(s.groups, g)
	return g
}

// Groups lists the session's groups in insertion order.
func (s *Session) Groups() []wellplate.Group {
	return append([]wellplate.Group(nil), s.groups...)
}

// Group looks a group up by name.
func (s *Session) Group(name string) (wellplate.Group, bool) {
	for _, g := range s.groups {
		if g.Name == name {
			return g, true
		}
	}
	return wellplate.Group{}, false
}

// RemoveGroup drops a group by name. Wells already bearing the group's
// treatment keep it.
func (s *Session) RemoveGroup(name string) bool {
	for i, g := range s.groups {
		if g.Name == name {
			s.groups = append(s.groups[:i], s.groups[i+1:]...)
			return true
		}
	}
	return false
}

// SetGroupColor recolors a group and every well on the current plate
// that carries its treatment.
func (s *Session) SetGroupColor(name, color string) bool {
	for i, g := range s.groups {
		if g.Name != name {
			continue
		}
		s.groups[i].Color = color
		if p, err := s.CurrentPlate(); err == nil {
			for _, id := range p.Addresses() {
				w := p.Well(id)
				if w.Treatment != nil && *w.Treatment == name {
					w.Color = color
				}
			}
		}
		return true
	}
	return false
}

// NextColor returns the next auto-assign color, cycling through the
// session gradient.
func (s *Session) NextColor() string {
	colors := palette.Gradient(s.gradient)
	if len(colors) == 0 {
		colors = palette.Gradient("high_contrast")
	}
	c := colors[s.colorIdx%len(colors)]
	s.colorIdx++
	return c
}

// SetSelection replaces the current well selection.
func (s *Session) SetSelection(wells []string) {
	s.selection = append([]string(nil), wells...)
}

// Selection returns the current well selection in order.
func (s *Session) Selection() []string {
	return append([]string(nil), s.selection...)
}

// ClearSelection empties the selection, as every applied design does.
func (s *Session) ClearSelection() {
	s.selection = nil
}

// SetTheme switches the display theme. Unknown names are rejected.
func (s *Session) SetTheme(name string) error {
	theme, ok := palette.ThemeByName(name)
	if !ok {
		return fmt.Errorf("unknown theme %q", name)
	}
	s.theme = theme
	return nil
}

// Theme returns the active theme.
func (s *Session) Theme() palette.Theme {
	return s.theme
}

// ThemeName returns the active theme's name.
func (s *Session) ThemeName() string {
	return s.theme.Name
}

// SetGradient switches the gradient used for auto-assigned group
// colors.
func (s *Session) SetGradient(name string) error {
	if palette.Gradient(name) == nil {
		return fmt.Errorf("unknown gradient %q", name)
	}
	s.gradient = name
	return nil
}

// GradientName returns the active gradient's name.
func (s *Session) GradientName() string {
	return s.gradient
}
