// Package api exposes a design session over HTTP as a thin JSON API:
// plate lifecycle, groups, selection, strategy assignment, design
// generators, exports, and figures. One Server guards one Session; all
// handlers serialize on the server mutex.
package api

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/platebench/platebench/internal/assign"
	"github.com/platebench/platebench/internal/session"
)

// ANSI escape codes for request log coloring
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

type Server struct {
	mu      sync.Mutex
	session *session.Session
	engine  *assign.Engine
	rng     *rand.Rand
}

// NewServer wraps a session. A nil rng gets a time-seeded source; pass
// a seeded one for reproducible layouts.
func NewServer(s *session.Session, rng *rand.Rand) *Server {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Server{
		session: s,
		engine:  assign.NewEngine(rng),
		rng:     rng,
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

// ServeMux routes the API surface.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/plates", s.handlePlates)
	mux.HandleFunc("/api/plate", s.handlePlate)
	mux.HandleFunc("/api/plate/summary", s.handleSummary)
	mux.HandleFunc("/api/groups", s.handleGroups)
	mux.HandleFunc("/api/selection", s.handleSelection)
	mux.HandleFunc("/api/patterns", s.handlePatterns)
	mux.HandleFunc("/api/assign", s.handleAssign)
	mux.HandleFunc("/api/clear", s.handleClear)
	mux.HandleFunc("/api/designs/dilution", s.handleDilution)
	mux.HandleFunc("/api/designs/dose_response", s.handleDoseResponse)
	mux.HandleFunc("/api/designs/time_course", s.handleTimeCourse)
	mux.HandleFunc("/api/designs/combinatorial", s.handleCombinatorial)
	mux.HandleFunc("/api/designs/mixture", s.handleMixture)
	mux.HandleFunc("/api/export/csv", s.handleExportCSV)
	mux.HandleFunc("/api/export/json", s.handleExportJSON)
	mux.HandleFunc("/api/export/report", s.handleExportReport)
	mux.HandleFunc("/api/export/sqlite", s.handleExportSQLite)
	mux.HandleFunc("/api/import", s.handleImport)
	mux.HandleFunc("/api/figure", s.handleFigure)
	mux.HandleFunc("/api/theme", s.handleTheme)
	mux.HandleFunc("/api/units", s.handleUnits)
	return mux
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
