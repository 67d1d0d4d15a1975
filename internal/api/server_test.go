package api

import (
	"encoding/json"
	"math"
	"net/http"
	"strings"
	"testing"

	"github.com/banshee-data/curvature.report/internal/analysis"
	"github.com/banshee-data/curvature.report/internal/config"
	"github.com/banshee-data/curvature.report/internal/db"
	"github.com/banshee-data/curvature.report/internal/testutil"
	"github.com/banshee-data/curvature.report/internal/units"
)

func newTestServer(t *testing.T, database *db.DB) *Server {
	t.Helper()
	result, err := analysis.Run(config.Default())
	if err != nil {
		t.Fatalf("analysis.Run: %v", err)
	}
	return NewServer(result, database, units.KMPH)
}

func getJSON(t *testing.T, s *Server, path string) map[string]any {
	t.Helper()
	req := testutil.NewTestRequest(http.MethodGet, path)
	rec := testutil.NewTestRecorder()
	s.ServeMux().ServeHTTP(rec, req)
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
	}
	return body
}

func TestShowTrack(t *testing.T) {
	s := newTestServer(t, nil)
	body := getJSON(t, s, "/api/track")

	samples, ok := body["samples"].([]any)
	if !ok {
		t.Fatalf("samples missing from response: %v", body)
	}
	if len(samples) != 201 {
		t.Errorf("len(samples) = %d, want 201", len(samples))
	}
	if body["track_length_km"].(float64) <= 0 {
		t.Errorf("track_length_km = %v, want positive", body["track_length_km"])
	}
}

func TestShowCriticalPoints(t *testing.T) {
	s := newTestServer(t, nil)
	body := getJSON(t, s, "/api/critical_points")

	points, ok := body["critical_points"].([]any)
	if !ok || len(points) != 2 {
		t.Fatalf("critical_points = %v, want 2 entries", body["critical_points"])
	}
}

func TestShowSafety(t *testing.T) {
	s := newTestServer(t, nil)
	body := getJSON(t, s, "/api/safety")

	samples := body["samples"].([]any)
	if len(samples) != 21 {
		t.Errorf("len(samples) = %d, want 21", len(samples))
	}
	first := samples[0].(map[string]any)
	for _, key := range []string{"x", "radius_m", "radius_defined", "is_danger", "max_safe_speed"} {
		if _, ok := first[key]; !ok {
			t.Errorf("safety sample missing key %q", key)
		}
	}
	if body["units"] != "kmph" {
		t.Errorf("units = %v, want kmph", body["units"])
	}
}

func TestShowSafetyUnitsParam(t *testing.T) {
	s := newTestServer(t, nil)

	kmh := getJSON(t, s, "/api/safety")
	mps := getJSON(t, s, "/api/safety?units=mps")

	if mps["units"] != "mps" {
		t.Errorf("units = %v, want mps", mps["units"])
	}
	vKMH := kmh["samples"].([]any)[0].(map[string]any)["max_safe_speed"].(float64)
	vMPS := mps["samples"].([]any)[0].(map[string]any)["max_safe_speed"].(float64)
	if math.Abs(vKMH/3.6-vMPS) > 1e-9 {
		t.Errorf("mps speed %v does not match kmh speed %v / 3.6", vMPS, vKMH)
	}

	// Unrecognised units fall back to the server default.
	fallback := getJSON(t, s, "/api/safety?units=warp")
	if fallback["units"] != "kmph" {
		t.Errorf("units = %v, want kmph fallback", fallback["units"])
	}
}

func TestShowCrash(t *testing.T) {
	s := newTestServer(t, nil)
	body := getJSON(t, s, "/api/crash")

	results := body["results"].([]any)
	if len(results) != 4 {
		t.Fatalf("len(results) = %d, want 4", len(results))
	}
	first := results[0].(map[string]any)
	if first["test_speed_kmh"].(float64) != 150 {
		t.Errorf("first test speed = %v, want 150", first["test_speed_kmh"])
	}
}

func TestShowReport(t *testing.T) {
	s := newTestServer(t, nil)
	req := testutil.NewTestRequest(http.MethodGet, "/api/report")
	rec := testutil.NewTestRecorder()
	s.ServeMux().ServeHTTP(rec, req)

	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}
	if !strings.Contains(rec.Body.String(), "Track Curvature Safety Report") {
		t.Errorf("report body missing header:\n%s", rec.Body.String())
	}
}

func TestListRunsWithoutDB(t *testing.T) {
	s := newTestServer(t, nil)
	body := getJSON(t, s, "/api/runs")
	if runs := body["runs"].([]any); len(runs) != 0 {
		t.Errorf("runs = %v, want empty", runs)
	}
}

func TestListRunsWithDB(t *testing.T) {
	database, err := db.NewDB(t.TempDir() + "/api_test.db")
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	defer database.Close()

	s := newTestServer(t, database)
	if err := database.RecordRun(s.result); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	body := getJSON(t, s, "/api/runs")
	runs := body["runs"].([]any)
	if len(runs) != 1 {
		t.Fatalf("len(runs) = %d, want 1", len(runs))
	}
	if runs[0].(map[string]any)["run_id"] != s.result.RunID {
		t.Errorf("run_id mismatch: %v", runs[0])
	}
}
