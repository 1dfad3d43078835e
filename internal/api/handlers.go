package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/platebench/platebench/internal/assign"
	"github.com/platebench/platebench/internal/selection"
	"github.com/platebench/platebench/internal/units"
	"github.com/platebench/platebench/internal/wellplate"
)

type createPlateRequest struct {
	Type string `json:"type"`
	Rows int    `json:"rows"`
	Cols int    `json:"cols"`
}

func (s *Server) handlePlates(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		s.writeJSON(w, map[string]interface{}{
			"plates":  s.session.PlateIDs(),
			"current": s.session.CurrentPlateID(),
		})
	case http.MethodPost:
		var req createPlateRequest
		if err := decodeBody(r, &req); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		id, err := s.session.NewPlate(req.Type, req.Rows, req.Cols)
		if err != nil {
			s.writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.writeJSON(w, map[string]string{"id": id})
	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) handlePlate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		p, err := s.session.CurrentPlate()
		if err != nil {
			s.writeJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		s.writeJSON(w, p)
	case http.MethodPost:
		var req struct {
			ID string `json:"id"`
		}
		if err := decodeBody(r, &req); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := s.session.SelectPlate(req.ID); err != nil {
			s.writeJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		s.writeJSON(w, map[string]string{"current": req.ID})
	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.session.CurrentPlate()
	if err != nil {
		s.writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	s.writeJSON(w, wellplate.Summarize(p))
}

type groupRequest struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
	Color string   `json:"color"`
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		s.writeJSON(w, map[string]interface{}{"groups": s.session.Groups()})
	case http.MethodPost:
		var req groupRequest
		if err := decodeBody(r, &req); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Name == "" {
			s.writeJSONError(w, http.StatusBadRequest, "Group name is required")
			return
		}
		g := s.session.AddGroup(req.Name, req.Items, req.Color)
		s.writeJSON(w, g)
	case http.MethodDelete:
		name := r.URL.Query().Get("name")
		if !s.session.RemoveGroup(name) {
			s.writeJSONError(w, http.StatusNotFound, fmt.Sprintf("Unknown group %q", name))
			return
		}
		s.writeJSON(w, map[string]string{"removed": name})
	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleSelection parses a textual well selection ("A1-D4,F6") against
// the current plate and stores it as the session selection.
func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		s.writeJSON(w, map[string]interface{}{"wells": s.session.Selection()})
	case http.MethodPost:
		var req struct {
			Input string `json:"input"`
		}
		if err := decodeBody(r, &req); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		p, err := s.session.CurrentPlate()
		if err != nil {
			s.writeJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		wells, err := selection.Parse(req.Input, p.Rows, p.Cols)
		if err != nil {
			s.writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.session.SetSelection(wells)
		s.writeJSON(w, map[string]interface{}{"wells": wells})
	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

type patternRequest struct {
	Pattern string `json:"pattern"`
	N       int    `json:"n"`
	Select  bool   `json:"select"`
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var req patternRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	p, err := s.session.CurrentPlate()
	if err != nil {
		s.writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	var wells []string
	switch req.Pattern {
	case "invert":
		wells = selection.Invert(p.Rows, p.Cols, s.session.Selection())
	case "expand":
		wells, err = selection.Expand(p.Rows, p.Cols, s.session.Selection())
	default:
		wells, err = patternWells(p, req.Pattern, req.N)
	}
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Select {
		s.session.SetSelection(wells)
	}
	s.writeJSON(w, map[string]interface{}{"wells": wells})
}

func patternWells(p *wellplate.Plate, pattern string, n int) ([]string, error) {
	switch pattern {
	case "all":
		return selection.All(p.Rows, p.Cols), nil
	case "checkerboard":
		return selection.Checkerboard(p.Rows, p.Cols), nil
	case "every_nth":
		return selection.EveryNth(p.Rows, p.Cols, n), nil
	case "border":
		return selection.Border(p.Rows, p.Cols), nil
	case "center":
		return selection.Center(p.Rows, p.Cols), nil
	case "diagonal":
		return selection.Diagonal(p.Rows, p.Cols), nil
	case "every_other_row":
		return selection.EveryOtherRow(p.Rows, p.Cols), nil
	case "every_other_column":
		return selection.EveryOtherColumn(p.Rows, p.Cols), nil
	case "first_half":
		return selection.FirstHalf(p.Rows, p.Cols), nil
	case "second_half":
		return selection.SecondHalf(p.Rows, p.Cols), nil
	case "row":
		if n < 0 || n >= p.Rows {
			return nil, fmt.Errorf("row %d is outside the plate's %d rows", n, p.Rows)
		}
		return selection.RowWells(n, p.Cols), nil
	case "column":
		if n < 0 || n >= p.Cols {
			return nil, fmt.Errorf("column %d is outside the plate's %d columns", n, p.Cols)
		}
		return selection.ColumnWells(n, p.Rows), nil
	case "empty":
		return selection.EmptyWells(p), nil
	case "filled":
		return selection.FilledWells(p), nil
	default:
		return nil, fmt.Errorf("unknown pattern %q", pattern)
	}
}

type assignRequest struct {
	Strategy   string `json:"strategy"`
	Replicates int    `json:"replicates"`
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var req assignRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	p, err := s.session.CurrentPlate()
	if err != nil {
		s.writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	groups := s.session.Groups()
	if len(groups) == 0 {
		s.writeJSONError(w, http.StatusBadRequest, "No groups defined")
		return
	}
	replicates := req.Replicates
	if replicates < 1 {
		replicates = 1
	}

	s.engine.Assign(p, groups, assign.ParseStrategy(req.Strategy), replicates)
	s.writeJSON(w, wellplate.Summarize(p))
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var req struct {
		Wells []string `json:"wells"`
	}
	if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		s.writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	p, err := s.session.CurrentPlate()
	if err != nil {
		s.writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	s.engine.Clear(p, req.Wells)
	s.session.ClearSelection()
	s.writeJSON(w, wellplate.Summarize(p))
}

type convertRequest struct {
	Kind  string  `json:"kind"`
	Value float64 `json:"value"`
	From  string  `json:"from"`
	To    string  `json:"to"`
}

// handleUnits lists the supported units on GET and converts a value
// between two units of one kind on POST.
func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.writeJSON(w, map[string][]string{
			"volume":        units.ValidVolumeUnits,
			"concentration": units.ValidConcentrationUnits,
			"mass":          units.ValidMassUnits,
		})
	case http.MethodPost:
		var req convertRequest
		if err := decodeBody(r, &req); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		var valid func(string) bool
		var conv func(float64, string, string) float64
		switch req.Kind {
		case "volume":
			valid, conv = units.IsValidVolume, units.ConvertVolume
		case "concentration":
			valid, conv = units.IsValidConcentration, units.ConvertConcentration
		case "mass":
			valid, conv = units.IsValidMass, units.ConvertMass
		default:
			s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Unknown unit kind %q", req.Kind))
			return
		}
		if !valid(req.From) || !valid(req.To) {
			s.writeJSONError(w, http.StatusBadRequest,
				fmt.Sprintf("Cannot convert %s %q to %q", req.Kind, req.From, req.To))
			return
		}
		s.writeJSON(w, map[string]interface{}{
			"value": conv(req.Value, req.From, req.To),
			"unit":  req.To,
		})
	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

type themeRequest struct {
	Theme    string `json:"theme"`
	Gradient string `json:"gradient"`
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		s.writeJSON(w, map[string]string{
			"theme":    s.session.ThemeName(),
			"gradient": s.session.GradientName(),
		})
	case http.MethodPost:
		var req themeRequest
		if err := decodeBody(r, &req); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Theme != "" {
			if err := s.session.SetTheme(req.Theme); err != nil {
				s.writeJSONError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
		if req.Gradient != "" {
			if err := s.session.SetGradient(req.Gradient); err != nil {
				s.writeJSONError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
		s.writeJSON(w, map[string]string{
			"theme":    s.session.ThemeName(),
			"gradient": s.session.GradientName(),
		})
	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}