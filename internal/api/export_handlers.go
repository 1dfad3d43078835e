package api

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/platebench/platebench/internal/export"
	"github.com/platebench/platebench/internal/render"
	"github.com/platebench/platebench/internal/security"
)

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
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
	out, err := export.CSV(p)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	filename := security.SanitizeFilename(s.session.CurrentPlateID()) + ".csv"
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	io.WriteString(w, out)
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
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
	data, err := export.JSON(p)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
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
	w.Header().Set("Content-Type", "text/markdown")
	io.WriteString(w, export.Report(p))
}

// handleExportSQLite writes the long-format table to a server-side
// file and reports the path. Intended for single-user bench hosts, not
// shared deployments.
func (s *Server) handleExportSQLite(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var req struct {
		Path string `json:"path"`
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
	path := req.Path
	if path == "" {
		path = filepath.Join(os.TempDir(), "plate_layout.sqlite")
	}
	if err := security.ValidateExportPath(path); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := export.WriteSQLite(p, path); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, map[string]string{"path": path})
}

// handleImport replaces the current plate with an exported layout
// document.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	defer r.Body.Close()
	data, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	p, err := export.FromJSON(data)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := s.session.NewPlate(p.Type, p.Rows, p.Cols)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	imported := s.session.Plate(id)
	for _, wellID := range p.Addresses() {
		*imported.Well(wellID) = *p.Well(wellID)
	}
	imported.Created = p.Created
	s.writeJSON(w, map[string]string{"id": id})
}

func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
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

	if r.URL.Query().Get("format") == "png" {
		path := filepath.Join(os.TempDir(), "plate_figure.png")
		if err := render.SavePNG(p, s.session.Theme(), path); err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		http.ServeFile(w, r, path)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.HTML(w, p, s.session.Theme()); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}
