// Package analysis wires the pipeline stages together: track sampling,
// curve geometry, safety evaluation and crash simulation, producing one
// immutable Result per run.
package analysis

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/curvature.report/internal/config"
	"github.com/banshee-data/curvature.report/internal/crash"
	"github.com/banshee-data/curvature.report/internal/geometry"
	"github.com/banshee-data/curvature.report/internal/safety"
	"github.com/banshee-data/curvature.report/internal/track"
)

// Result holds everything one analysis run computed. All slices are owned by
// the result and never mutated after Run returns.
type Result struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Spec   track.Spec    `json:"spec"`
	Safety safety.Config `json:"safety_config"`

	Samples        []track.Sample           `json:"samples"`
	LengthKM       float64                  `json:"track_length_km"`
	CriticalPoints []geometry.CriticalPoint `json:"critical_points"`
	SafetySamples  []safety.Sample          `json:"safety_samples"`
	Stats          safety.Stats             `json:"stats"`
	CrashResults   []crash.Result           `json:"crash_results"`

	TestSpeedsKMH []float64 `json:"test_speeds_kmh"`
}

// Run executes the full pipeline for the given configuration. Every stage is
// a pure function over the previous stage's output; nothing is cached
// between runs.
func Run(cfg *config.AnalysisConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	spec := cfg.TrackSpec()
	samples := spec.Samples()

	indices, err := geometry.StrideIndices(len(samples), cfg.GetStride())
	if err != nil {
		return nil, err
	}

	safetySamples := safety.Evaluate(spec, samples, indices, cfg.SafetyConfig())
	stats, err := safety.Summarize(safetySamples)
	if err != nil {
		return nil, fmt.Errorf("track has no measurable curvature: %w", err)
	}

	testSpeeds := cfg.GetTestSpeedsKMH()

	return &Result{
		RunID:          uuid.NewString(),
		GeneratedAt:    time.Now().UTC(),
		Spec:           spec,
		Safety:         cfg.SafetyConfig(),
		Samples:        samples,
		LengthKM:       geometry.ArcLengthKM(samples),
		CriticalPoints: geometry.CriticalPoints(spec),
		SafetySamples:  safetySamples,
		Stats:          stats,
		CrashResults:   crash.SimulateAll(testSpeeds, safetySamples),
		TestSpeedsKMH:  testSpeeds,
	}, nil
}
