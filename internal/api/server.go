// Package api exposes a completed analysis run over HTTP/JSON. It is a
// read-only presentation surface: it consumes the core's computed sequences
// and feeds nothing back.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/banshee-data/curvature.report/internal/analysis"
	"github.com/banshee-data/curvature.report/internal/db"
	"github.com/banshee-data/curvature.report/internal/report"
	"github.com/banshee-data/curvature.report/internal/units"
)

// ANSI escape codes for cyan and reset
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

type Server struct {
	result *analysis.Result
	db     *db.DB
	units  string
}

// NewServer wraps a completed run. db may be nil when persistence is
// disabled; the /api/runs endpoint then reports an empty list.
func NewServer(result *analysis.Result, database *db.DB, displayUnits string) *Server {
	return &Server{
		result: result,
		db:     database,
		units:  displayUnits,
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

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/track", s.showTrack)
	mux.HandleFunc("/api/critical_points", s.showCriticalPoints)
	mux.HandleFunc("/api/safety", s.showSafety)
	mux.HandleFunc("/api/crash", s.showCrash)
	mux.HandleFunc("/api/report", s.showReport)
	mux.HandleFunc("/api/config", s.showConfig)
	mux.HandleFunc("/api/runs", s.listRuns)
	return mux
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// displayUnits resolves the units query param, falling back to the server
// default for anything unrecognised.
func (s *Server) displayUnits(r *http.Request) string {
	if u := r.URL.Query().Get("units"); units.IsValid(u) {
		return u
	}
	return s.units
}

func (s *Server) showTrack(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]any{
		"run_id":          s.result.RunID,
		"track_length_km": s.result.LengthKM,
		"samples":         s.result.Samples,
	})
}

func (s *Server) showCriticalPoints(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]any{
		"run_id":          s.result.RunID,
		"critical_points": s.result.CriticalPoints,
	})
}

func (s *Server) showSafety(w http.ResponseWriter, r *http.Request) {
	unit := s.displayUnits(r)
	samples := make([]map[string]any, 0, len(s.result.SafetySamples))
	for _, sample := range s.result.SafetySamples {
		samples = append(samples, map[string]any{
			"x":              sample.X,
			"radius_m":       sample.Radius.RadiusM,
			"radius_defined": sample.Radius.Defined,
			"is_danger":      sample.Danger,
			"max_safe_speed": units.ConvertSpeed(sample.LimitKMH, unit),
		})
	}
	s.writeJSON(w, map[string]any{
		"run_id":  s.result.RunID,
		"units":   unit,
		"stats":   s.result.Stats,
		"samples": samples,
	})
}

func (s *Server) showCrash(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]any{
		"run_id":  s.result.RunID,
		"results": s.result.CrashResults,
	})
}

func (s *Server) showReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(report.Render(s.result, s.displayUnits(r)))); err != nil {
		log.Printf("failed to write report: %v", err)
	}
}

func (s *Server) showConfig(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]any{
		"run_id":        s.result.RunID,
		"generated_at":  s.result.GeneratedAt,
		"spec":          s.result.Spec,
		"safety_config": s.result.Safety,
		"test_speeds":   s.result.TestSpeedsKMH,
		"units":         s.units,
	})
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.writeJSON(w, map[string]any{"runs": []db.RunSummary{}})
		return
	}
	runs, err := s.db.ListRuns()
	if err != nil {
		http.Error(w, "failed to list runs", http.StatusInternalServerError)
		log.Printf("failed to list runs: %v", err)
		return
	}
	s.writeJSON(w, map[string]any{"runs": runs})
}
