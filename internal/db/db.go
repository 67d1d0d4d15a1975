// Package db persists analysis runs to SQLite so reports can be regenerated
// and compared across configurations.
package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/banshee-data/curvature.report/internal/analysis"
	"github.com/banshee-data/curvature.report/internal/geometry"
	"github.com/banshee-data/curvature.report/internal/safety"
)

type DB struct {
	*sql.DB
}

func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			run_id              TEXT PRIMARY KEY,
			generated_at        TIMESTAMP,
			a3                  DOUBLE,
			a2                  DOUBLE,
			a1                  DOUBLE,
			a0                  DOUBLE,
			x_start             DOUBLE,
			x_end               DOUBLE,
			step                DOUBLE,
			friction            DOUBLE,
			banking_deg         DOUBLE,
			danger_radius_m     DOUBLE,
			track_length_km     DOUBLE,
			danger_count        BIGINT,
			min_radius_m        DOUBLE,
			min_safe_speed_kmh  DOUBLE,
			max_safe_speed_kmh  DOUBLE,
			mean_safe_speed_kmh DOUBLE
		);
		CREATE TABLE IF NOT EXISTS safety_samples (
			run_id              TEXT,
			x                   DOUBLE,
			radius_m            DOUBLE,
			radius_defined      BOOLEAN,
			is_danger           BOOLEAN,
			max_safe_speed_kmh  DOUBLE,
			FOREIGN KEY(run_id) REFERENCES runs(run_id)
		);
		CREATE TABLE IF NOT EXISTS crash_results (
			run_id              TEXT,
			test_speed_kmh      DOUBLE,
			crash_count         BIGINT,
			total_samples       BIGINT,
			crash_fraction      DOUBLE,
			FOREIGN KEY(run_id) REFERENCES runs(run_id)
		);
	`)
	if err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// RecordRun stores a completed analysis run with its safety samples and
// crash results.
func (db *DB) RecordRun(r *analysis.Result) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (
			run_id, generated_at, a3, a2, a1, a0, x_start, x_end, step,
			friction, banking_deg, danger_radius_m, track_length_km,
			danger_count, min_radius_m, min_safe_speed_kmh,
			max_safe_speed_kmh, mean_safe_speed_kmh
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.GeneratedAt, r.Spec.A3, r.Spec.A2, r.Spec.A1, r.Spec.A0,
		r.Spec.XStart, r.Spec.XEnd, r.Spec.Step,
		r.Safety.FrictionCoefficient, r.Safety.BankingAngleDeg, r.Safety.DangerRadiusM,
		r.LengthKM, r.Stats.DangerCount, r.Stats.MinRadiusM,
		r.Stats.MinLimitKMH, r.Stats.MaxLimitKMH, r.Stats.MeanLimitKMH,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, s := range r.SafetySamples {
		_, err = tx.Exec(
			`INSERT INTO safety_samples (
				run_id, x, radius_m, radius_defined, is_danger, max_safe_speed_kmh
			) VALUES (?, ?, ?, ?, ?, ?)`,
			r.RunID, s.X, s.Radius.RadiusM, s.Radius.Defined, s.Danger, s.LimitKMH,
		)
		if err != nil {
			return fmt.Errorf("failed to insert safety sample: %w", err)
		}
	}

	for _, cr := range r.CrashResults {
		_, err = tx.Exec(
			`INSERT INTO crash_results (
				run_id, test_speed_kmh, crash_count, total_samples, crash_fraction
			) VALUES (?, ?, ?, ?, ?)`,
			r.RunID, cr.TestSpeedKMH, cr.Crashes, cr.Total, cr.Fraction,
		)
		if err != nil {
			return fmt.Errorf("failed to insert crash result: %w", err)
		}
	}

	return tx.Commit()
}

// RunSummary is one row of the runs table.
type RunSummary struct {
	RunID            string    `json:"run_id"`
	GeneratedAt      time.Time `json:"generated_at"`
	TrackLengthKM    float64   `json:"track_length_km"`
	DangerCount      int       `json:"danger_count"`
	MinRadiusM       float64   `json:"min_radius_m"`
	MinSafeSpeedKMH  float64   `json:"min_safe_speed_kmh"`
	MaxSafeSpeedKMH  float64   `json:"max_safe_speed_kmh"`
	MeanSafeSpeedKMH float64   `json:"mean_safe_speed_kmh"`
}

// ListRuns returns stored run summaries, newest first.
func (db *DB) ListRuns() ([]RunSummary, error) {
	rows, err := db.Query(
		`SELECT run_id, generated_at, track_length_km, danger_count,
			min_radius_m, min_safe_speed_kmh, max_safe_speed_kmh, mean_safe_speed_kmh
		FROM runs ORDER BY generated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(
			&r.RunID, &r.GeneratedAt, &r.TrackLengthKM, &r.DangerCount,
			&r.MinRadiusM, &r.MinSafeSpeedKMH, &r.MaxSafeSpeedKMH, &r.MeanSafeSpeedKMH,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SafetySamples returns the stored safety samples for a run, in x order.
func (db *DB) SafetySamples(runID string) ([]safety.Sample, error) {
	rows, err := db.Query(
		`SELECT x, radius_m, radius_defined, is_danger, max_safe_speed_kmh
		FROM safety_samples WHERE run_id = ? ORDER BY x`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []safety.Sample
	for rows.Next() {
		var s safety.Sample
		var radiusM float64
		var defined bool
		if err := rows.Scan(&s.X, &radiusM, &defined, &s.Danger, &s.LimitKMH); err != nil {
			return nil, err
		}
		s.Radius = geometry.Curvature{RadiusM: radiusM, Defined: defined}
		out = append(out, s)
	}
	return out, rows.Err()
}
