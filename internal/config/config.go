// Package config loads and validates the analysis configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/curvature.report/internal/crash"
	"github.com/banshee-data/curvature.report/internal/safety"
	"github.com/banshee-data/curvature.report/internal/track"
	"github.com/banshee-data/curvature.report/internal/units"
)

// AnalysisConfig is the on-disk configuration surface. All fields are
// pointer-typed so a partial JSON file only overrides what it names; the
// Get* methods supply the survey-track defaults for everything else.
type AnalysisConfig struct {
	// Cubic coefficients
	A3 *float64 `json:"a3,omitempty"`
	A2 *float64 `json:"a2,omitempty"`
	A1 *float64 `json:"a1,omitempty"`
	A0 *float64 `json:"a0,omitempty"`

	// Sampling domain
	XStart *float64 `json:"x_start,omitempty"`
	XEnd   *float64 `json:"x_end,omitempty"`
	Step   *float64 `json:"step,omitempty"`
	Stride *int     `json:"stride,omitempty"`

	// Physics params
	FrictionCoefficient *float64 `json:"friction_coefficient,omitempty"`
	BankingAngleDeg     *float64 `json:"banking_angle_deg,omitempty"`
	DangerRadiusM       *float64 `json:"danger_radius_threshold_m,omitempty"`

	// Crash simulation params
	TestSpeedsKMH []float64 `json:"test_speeds,omitempty"`

	// Presentation params (consumed only by the monitor layer)
	Animate *bool   `json:"animate,omitempty"`
	Units   *string `json:"units,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }

// Default returns the configuration of the fixed survey track.
func Default() *AnalysisConfig {
	return &AnalysisConfig{}
}

// Load reads an AnalysisConfig from a JSON file. Fields omitted from the
// file retain their defaults, so partial configs are safe.
func Load(path string) (*AnalysisConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// GetA3 returns the cubic coefficient a3 or the survey default.
func (c *AnalysisConfig) GetA3() float64 {
	if c.A3 == nil {
		return 7.3558
	}
	return *c.A3
}

// GetA2 returns the cubic coefficient a2 or the survey default.
func (c *AnalysisConfig) GetA2() float64 {
	if c.A2 == nil {
		return -157.43
	}
	return *c.A2
}

// GetA1 returns the cubic coefficient a1 or the survey default.
func (c *AnalysisConfig) GetA1() float64 {
	if c.A1 == nil {
		return 1119.5
	}
	return *c.A1
}

// GetA0 returns the cubic coefficient a0 or the survey default.
func (c *AnalysisConfig) GetA0() float64 {
	if c.A0 == nil {
		return -2631.3
	}
	return *c.A0
}

// GetXStart returns the sampling domain start or the survey default.
func (c *AnalysisConfig) GetXStart() float64 {
	if c.XStart == nil {
		return 6.0
	}
	return *c.XStart
}

// GetXEnd returns the sampling domain end or the survey default.
func (c *AnalysisConfig) GetXEnd() float64 {
	if c.XEnd == nil {
		return 8.0
	}
	return *c.XEnd
}

// GetStep returns the sampling step or the survey default.
func (c *AnalysisConfig) GetStep() float64 {
	if c.Step == nil {
		return 0.01
	}
	return *c.Step
}

// GetStride returns the analysis stride or the default of every 10th sample.
func (c *AnalysisConfig) GetStride() int {
	if c.Stride == nil {
		return 10
	}
	return *c.Stride
}

// GetFrictionCoefficient returns the tyre/track friction coefficient.
func (c *AnalysisConfig) GetFrictionCoefficient() float64 {
	if c.FrictionCoefficient == nil {
		return 1.7
	}
	return *c.FrictionCoefficient
}

// GetBankingAngleDeg returns the track banking angle in degrees.
func (c *AnalysisConfig) GetBankingAngleDeg() float64 {
	if c.BankingAngleDeg == nil {
		return 19.0
	}
	return *c.BankingAngleDeg
}

// GetDangerRadiusM returns the danger-zone radius threshold in metres.
func (c *AnalysisConfig) GetDangerRadiusM() float64 {
	if c.DangerRadiusM == nil {
		return safety.DefaultDangerRadiusM
	}
	return *c.DangerRadiusM
}

// GetTestSpeedsKMH returns the candidate crash speeds.
func (c *AnalysisConfig) GetTestSpeedsKMH() []float64 {
	if len(c.TestSpeedsKMH) == 0 {
		return crash.DefaultTestSpeedsKMH
	}
	return c.TestSpeedsKMH
}

// GetAnimate reports whether the monitor layer should render the
// marker-replay series.
func (c *AnalysisConfig) GetAnimate() bool {
	if c.Animate == nil {
		return false
	}
	return *c.Animate
}

// GetUnits returns the display speed units.
func (c *AnalysisConfig) GetUnits() string {
	if c.Units == nil {
		return units.KMPH
	}
	return *c.Units
}

// TrackSpec builds the immutable track model from the configuration.
func (c *AnalysisConfig) TrackSpec() track.Spec {
	return track.Spec{
		A3: c.GetA3(), A2: c.GetA2(), A1: c.GetA1(), A0: c.GetA0(),
		XStart: c.GetXStart(), XEnd: c.GetXEnd(), Step: c.GetStep(),
	}
}

// SafetyConfig builds the physics configuration.
func (c *AnalysisConfig) SafetyConfig() safety.Config {
	return safety.Config{
		FrictionCoefficient: c.GetFrictionCoefficient(),
		BankingAngleDeg:     c.GetBankingAngleDeg(),
		DangerRadiusM:       c.GetDangerRadiusM(),
	}
}

// Validate checks that the configuration values are valid. Invalid domains,
// steps and physics parameters are hard setup errors; everything downstream
// assumes they hold.
func (c *AnalysisConfig) Validate() error {
	if err := c.TrackSpec().Validate(); err != nil {
		return err
	}
	if err := c.SafetyConfig().Validate(); err != nil {
		return err
	}
	if c.Stride != nil && *c.Stride <= 0 {
		return fmt.Errorf("stride must be positive, got %d", *c.Stride)
	}
	for _, speed := range c.GetTestSpeedsKMH() {
		if speed < 0 {
			return fmt.Errorf("test speeds must be non-negative, got %v", speed)
		}
	}
	if c.Units != nil && !units.IsValid(*c.Units) {
		return fmt.Errorf("invalid units %q, valid units are: %s", *c.Units, units.GetValidUnitsString())
	}
	return nil
}
