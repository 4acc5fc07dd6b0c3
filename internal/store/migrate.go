package store

import (
	"database/sql"
	"fmt"

	"git.lost.host/meutraa/keyjudge/internal/chart"
	"git.lost.host/meutraa/keyjudge/internal/personalbest"
)

// MigrateLegacyBests upgrades a pre-frontier "scores" table — one
// best-accuracy row and one fastest-cleared-rate row per chart, the
// shape the teacher's original schema kept — into the two-axis
// personal_bests frontier. It is a no-op if the legacy table doesn't
// exist.
func (s *Store) MigrateLegacyBests(c *chart.Chart) error {
	hash := HashChart(c)

	var bestPoints, bestMax sql.NullFloat64
	err := s.db.QueryRow(
		"select points_scored, max_points_scored from legacy_best where chart_hash = ?", hash,
	).Scan(&bestPoints, &bestMax)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		s.log.Debug("no legacy_best table to migrate", "err", err)
		return nil
	}

	var fastestRate sql.NullFloat64
	var fastestPoints, fastestMax sql.NullFloat64
	err = s.db.QueryRow(
		"select rate, points_scored, max_points_scored from legacy_fastest where chart_hash = ?", hash,
	).Scan(&fastestRate, &fastestPoints, &fastestMax)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("store: read legacy_fastest: %w", err)
	}

	legacy := personalbest.LegacyBest[pbValue]{
		Best:    pbValue{PointsScored: bestPoints.Float64, MaxPointsScored: bestMax.Float64},
		Fastest: float32(fastestRate.Float64),
	}
	atFastest := pbValue{PointsScored: fastestPoints.Float64, MaxPointsScored: fastestMax.Float64}

	frontier := personalbest.MigrateV1(legacy, atFastest, betterPB)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: begin migration tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("delete from personal_bests where chart_hash = ?", hash); err != nil {
		return fmt.Errorf("store: clear personal bests for migration: %w", err)
	}
	for _, e := range frontier {
		if _, err := tx.Exec(
			"insert into personal_bests(chart_hash, rate, points_scored, max_points_scored) values(?, ?, ?, ?)",
			hash, e.Rate, e.Value.PointsScored, e.Value.MaxPointsScored,
		); err != nil {
			return fmt.Errorf("store: insert migrated personal best: %w", err)
		}
	}
	return tx.Commit()
}
