// Package store persists chart attempts and personal-bests using sqlite,
// grounded on the teacher's internal/score.DefaultScorer: a hashed chart
// identity, a compact input encoding, and a single scores table, extended
// here to also carry a personal-bests table (spec.md §2 C8's storage
// side, not itself named by the core spec).
package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"

	"git.lost.host/meutraa/keyjudge/internal/chart"
	"git.lost.host/meutraa/keyjudge/internal/personalbest"
	"git.lost.host/meutraa/keyjudge/internal/replay"
)

// Store wraps a sqlite database holding attempt history and personal
// bests.
type Store struct {
	db  *sql.DB
	log *log.Logger
}

const schema = `
create table if not exists attempts (
	id integer not null primary key,
	chart_hash text not null,
	rate real not null,
	played_at integer not null,
	inputs blob not null
);

create table if not exists personal_bests (
	chart_hash text not null,
	rate real not null,
	points_scored real not null,
	max_points_scored real not null,
	primary key (chart_hash, rate)
);
`

// Open opens (creating if needed) the sqlite database at path.
func Open(path string, logger *log.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate schema: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Store{db: db, log: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// HashChart returns the stable identity used to key a chart's rows.
func HashChart(c *chart.Chart) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d\n", c.Keys)
	for _, row := range c.Rows {
		fmt.Fprintf(h, "%d", row.Time)
		for _, cell := range row.Cells {
			fmt.Fprintf(h, ",%d", cell)
		}
		h.Write([]byte{'\n'})
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// frameJSON is the JSON-friendly encoding of a replay.Frame.
type frameJSON struct {
	Time time.Duration  `json:"t"`
	Bits chart.KeyMask  `json:"b"`
}

// SaveAttempt records one played attempt's raw input frames against a
// chart hash and rate, per the teacher's Save.
func (s *Store) SaveAttempt(c *chart.Chart, frames []replay.Frame, rate float64, playedAt time.Time) error {
	encoded := make([]frameJSON, len(frames))
	for i, f := range frames {
		encoded[i] = frameJSON{Time: f.Time, Bits: f.Bits}
	}
	data, err := json.Marshal(encoded)
	if err != nil {
		return fmt.Errorf("store: marshal frames: %w", err)
	}
	_, err = s.db.Exec(
		"insert into attempts(chart_hash, rate, played_at, inputs) values(?, ?, ?, ?)",
		HashChart(c), rate, playedAt.Unix(), data,
	)
	if err != nil {
		s.log.Error("save attempt failed", "err", err)
		return fmt.Errorf("store: insert attempt: %w", err)
	}
	return nil
}

// LoadAttempts returns every recorded attempt for a chart, oldest first.
func (s *Store) LoadAttempts(c *chart.Chart) ([]Attempt, error) {
	rows, err := s.db.Query(
		"select rate, played_at, inputs from attempts where chart_hash = ? order by played_at asc",
		HashChart(c),
	)
	if err != nil {
		return nil, fmt.Errorf("store: query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var rate float64
		var playedAtUnix int64
		var data []byte
		if err := rows.Scan(&rate, &playedAtUnix, &data); err != nil {
			return nil, fmt.Errorf("store: scan attempt: %w", err)
		}
		var encoded []frameJSON
		if err := json.Unmarshal(data, &encoded); err != nil {
			s.log.Warn("skipping attempt with corrupt inputs", "err", err)
			continue
		}
		frames := make([]replay.Frame, len(encoded))
		for i, f := range encoded {
			frames[i] = replay.Frame{Time: f.Time, Bits: f.Bits}
		}
		out = append(out, Attempt{
			Rate:     rate,
			PlayedAt: time.Unix(playedAtUnix, 0),
			Frames:   frames,
		})
	}
	return out, rows.Err()
}

// Attempt is one previously recorded play against a chart.
type Attempt struct {
	Rate     float64
	PlayedAt time.Time
	Frames   []replay.Frame
}

// Replay returns a replay.Source that replays a for a fresh judge.Engine
// run, letting a stored attempt be re-scored against a changed ruleset.
func (a Attempt) Replay() replay.Source {
	return replay.NewSliceSource(a.Frames)
}

// pbValue is the (points, max points) accuracy pair the personal-bests
// table orders by.
type pbValue struct {
	PointsScored    float64
	MaxPointsScored float64
}

func betterPB(a, b pbValue) bool {
	accA, accB := 1.0, 1.0
	if a.MaxPointsScored != 0 {
		accA = a.PointsScored / a.MaxPointsScored
	}
	if b.MaxPointsScored != 0 {
		accB = b.PointsScored / b.MaxPointsScored
	}
	return accA > accB
}

// LoadFrontier reconstructs a chart's personal-bests frontier from the
// personal_bests table.
func (s *Store) LoadFrontier(c *chart.Chart) (personalbest.Frontier[pbValue], error) {
	rows, err := s.db.Query(
		"select rate, points_scored, max_points_scored from personal_bests where chart_hash = ? order by rate asc",
		HashChart(c),
	)
	if err != nil {
		return nil, fmt.Errorf("store: query personal bests: %w", err)
	}
	defer rows.Close()

	var f personalbest.Frontier[pbValue]
	for rows.Next() {
		var rate float64
		var v pbValue
		if err := rows.Scan(&rate, &v.PointsScored, &v.MaxPointsScored); err != nil {
			return nil, fmt.Errorf("store: scan personal best: %w", err)
		}
		f = append(f, personalbest.Entry[pbValue]{Value: v, Rate: float32(rate)})
	}
	return f, rows.Err()
}

// RecordAttempt updates the chart's personal-bests frontier with a new
// (pointsScored, maxPointsScored, rate) result, persisting the change if
// it is not dominated, and returns the classification.
func (s *Store) RecordAttempt(c *chart.Chart, pointsScored, maxPointsScored float64, rate float32) (personalbest.Improvement, error) {
	hash := HashChart(c)
	existing, err := s.LoadFrontier(c)
	if err != nil {
		return personalbest.ImprovementNone, err
	}

	value := pbValue{PointsScored: pointsScored, MaxPointsScored: maxPointsScored}
	next, improvement := personalbest.Update(existing, value, rate, betterPB)
	if improvement == personalbest.ImprovementNone {
		return improvement, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return improvement, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("delete from personal_bests where chart_hash = ?", hash); err != nil {
		return improvement, fmt.Errorf("store: clear personal bests: %w", err)
	}
	for _, e := range next {
		if _, err := tx.Exec(
			"insert into personal_bests(chart_hash, rate, points_scored, max_points_scored) values(?, ?, ?, ?)",
			hash, e.Rate, e.Value.PointsScored, e.Value.MaxPointsScored,
		); err != nil {
			return improvement, fmt.Errorf("store: insert personal best: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return improvement, fmt.Errorf("store: commit tx: %w", err)
	}
	s.log.Info("personal best recorded", "chart", hash, "rate", rate, "improvement", improvement)
	return improvement, nil
}
