package api

import (
	"errors"
	"net/http"

	"github.com/platebench/platebench/internal/design"
	"github.com/platebench/platebench/internal/wellplate"
)

// writeDesignError maps design failures onto HTTP statuses: bad
// parameters are the client's fault, too few wells is a conflict with
// the current selection.
func (s *Server) writeDesignError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, design.ErrInsufficientWells):
		s.writeJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, design.ErrInvalidDesign):
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}

// designTarget resolves the wells a design applies to: the request's
// explicit list when present, otherwise the session selection.
func (s *Server) designTarget(reqWells []string) []string {
	if len(reqWells) > 0 {
		return reqWells
	}
	return s.session.Selection()
}

type dilutionRequest struct {
	Compound  string   `json:"compound"`
	Start     float64  `json:"start"`
	Factor    float64  `json:"factor"`
	Steps     int      `json:"steps"`
	Unit      string   `json:"unit"`
	BaseColor string   `json:"base_color"`
	Wells     []string `json:"wells"`
}

func (s *Server) handleDilution(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var req dilutionRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	p, err := s.session.CurrentPlate()
	if err != nil {
		s.writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	d := design.SerialDilution{
		Compound:  req.Compound,
		Start:     req.Start,
		Factor:    req.Factor,
		Steps:     req.Steps,
		Unit:      req.Unit,
		BaseColor: req.BaseColor,
	}
	if err := d.Apply(p, s.designTarget(req.Wells)); err != nil {
		s.writeDesignError(w, err)
		return
	}
	s.session.ClearSelection()
	s.writeJSON(w, wellplate.Summarize(p))
}

type doseResponseRequest struct {
	Compound    string   `json:"compound"`
	Scale       string   `json:"scale"`
	MinDose     float64  `json:"min_dose"`
	MaxDose     float64  `json:"max_dose"`
	Doses       int      `json:"doses"`
	Replicates  int      `json:"replicates"`
	Unit        string   `json:"unit"`
	IncludeZero bool     `json:"include_zero"`
	Wells       []string `json:"wells"`
}

func (s *Server) handleDoseResponse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var req doseResponseRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	p, err := s.session.CurrentPlate()
	if err != nil {
		s.writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	scale := design.ScaleLogarithmic
	if req.Scale == "linear" {
		scale = design.ScaleLinear
	}
	d := design.DoseResponse{
		Compound:    req.Compound,
		Scale:       scale,
		MinDose:     req.MinDose,
		MaxDose:     req.MaxDose,
		Doses:       req.Doses,
		Replicates:  req.Replicates,
		Unit:        req.Unit,
		IncludeZero: req.IncludeZero,
	}
	if err := d.Apply(p, s.designTarget(req.Wells)); err != nil {
		s.writeDesignError(w, err)
		return
	}
	s.session.ClearSelection()
	s.writeJSON(w, wellplate.Summarize(p))
}

type timeCourseRequest struct {
	Treatment         string   `json:"treatment"`
	Times             []string `json:"times"`
	ReplicatesPerTime int      `json:"replicates_per_time"`
	Gradient          string   `json:"gradient"`
	Wells             []string `json:"wells"`
}

func (s *Server) handleTimeCourse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var req timeCourseRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	p, err := s.session.CurrentPlate()
	if err != nil {
		s.writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	gradient := req.Gradient
	if gradient == "" {
		gradient = "blue_cyan"
	}
	d := design.TimeCourse{
		Treatment:         req.Treatment,
		Times:             req.Times,
		ReplicatesPerTime: req.ReplicatesPerTime,
		Gradient:          gradient,
	}
	if err := d.Apply(p, s.designTarget(req.Wells)); err != nil {
		s.writeDesignError(w, err)
		return
	}
	s.session.ClearSelection()
	s.writeJSON(w, wellplate.Summarize(p))
}

type combinatorialRequest struct {
	Factors []struct {
		Name   string   `json:"name"`
		Levels []string `json:"levels"`
	} `json:"factors"`
	Randomize bool     `json:"randomize"`
	Wells     []string `json:"wells"`
}

func (s *Server) handleCombinatorial(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var req combinatorialRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	p, err := s.session.CurrentPlate()
	if err != nil {
		s.writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	factors := make([]design.Factor, len(req.Factors))
	for i, f := range req.Factors {
		factors[i] = design.Factor{Name: f.Name, Levels: f.Levels}
	}
	d := design.Combinatorial{Factors: factors, Randomize: req.Randomize}
	if err := d.Apply(p, s.designTarget(req.Wells), s.rng); err != nil {
		s.writeDesignError(w, err)
		return
	}
	s.session.ClearSelection()
	s.writeJSON(w, wellplate.Summarize(p))
}

type mixtureRequest struct {
	Components []wellplate.MixtureComponent `json:"components"`
	Wells      []string                     `json:"wells"`
}

func (s *Server) handleMixture(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var req mixtureRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	p, err := s.session.CurrentPlate()
	if err != nil {
		s.writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	if err := design.ApplyMixture(p, s.designTarget(req.Wells), req.Components); err != nil {
		s.writeDesignError(w, err)
		return
	}
	s.session.ClearSelection()
	s.writeJSON(w, wellplate.Summarize(p))
}
