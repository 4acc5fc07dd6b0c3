// Package ruleset holds the pluggable scoring configuration: timing
// windows, the timegate → judgement table, the points function, hold-note
// behaviour, health deltas, and grade/lamp thresholds (spec.md §3 C4).
//
// A Ruleset is constructed once, validated, and then shared read-only
// across any number of concurrent scoring runs (spec.md §5).
package ruleset

import (
	"fmt"
	"time"
)

// JudgementID is an ordinal judgement label; lower is better.
type JudgementID int

// JudgementDef describes one judgement tier.
type JudgementDef struct {
	Name        string `yaml:"name"`
	BreaksCombo bool   `yaml:"breaks_combo"`
	Color       string `yaml:"color"`
}

// Timegate is one ascending signed upper-bound threshold in the
// delta→judgement table (spec.md §4.6).
type Timegate struct {
	Time       time.Duration `yaml:"time"`
	Judgement  JudgementID   `yaml:"judgement"`
}

// PointsKind selects which PointsSpec variant is populated.
type PointsKind int

const (
	PointsWeighted PointsKind = iota
	PointsWife
)

// PointsSpec is the closed sum type for how a judgement converts to a
// point value (spec.md §3).
type PointsSpec struct {
	Kind PointsKind `yaml:"kind"`

	// PointsWeighted fields.
	MaxWeight float64   `yaml:"max_weight"`
	Weights   []float64 `yaml:"weights"`

	// PointsWife fields: a continuous curve parameterised by a judge
	// integer, evaluated at |delta|.
	Judge int `yaml:"judge"`
}

// HoldKind selects which HoldBehaviour variant is populated.
type HoldKind int

const (
	HoldBreakComboOnly HoldKind = iota
	HoldOsuStyle
	HoldNormal
	HoldJudgeReleases
	HoldOnlyJudgeReleases
)

// HoldBehaviour is the closed sum type controlling how hold notes are
// judged (spec.md §3, §4.6).
type HoldBehaviour struct {
	Kind HoldKind `yaml:"kind"`

	// BreakComboOnlyBreaksOnOverhold resolves spec.md §9 Open Question 1:
	// the later revision does not break combo on overhold. Default false
	// reproduces that; set true to target the earlier revision instead.
	BreakComboOnlyBreaksOnOverhold bool `yaml:"break_combo_only_breaks_on_overhold"`

	// HoldOsuStyle field: difficulty parameter "od" for the table in
	// spec.md §6.4.
	OD float64 `yaml:"od"`

	// HoldNormal fields: worst-case judgements applied on drop/overhold.
	DropJudgement     JudgementID `yaml:"drop_judgement"`
	OverholdJudgement JudgementID `yaml:"overhold_judgement"`

	// HoldJudgeReleases field: an independent timegate table re-run
	// against the release delta.
	ReleaseGates []Timegate `yaml:"release_gates"`
}

// HealthConfig is the health-bar configuration (spec.md §3).
type HealthConfig struct {
	Start           float64   `yaml:"start"`
	ClearThreshold  float64   `yaml:"clear_threshold"`
	OnlyFailAtEnd   bool      `yaml:"only_fail_at_end"`
	Deltas          []float64 `yaml:"deltas"`
}

// GradeDef is one grade tier.
type GradeDef struct {
	Name              string  `yaml:"name"`
	AccuracyThreshold float64 `yaml:"accuracy_threshold"`
}

// LampDef is one lamp tier. Judgement == -1 means "judged on combo
// breaks", else the lamp thresholds the count of that judgement and
// worse (spec.md §4.8).
type LampDef struct {
	Name      string      `yaml:"name"`
	Judgement JudgementID `yaml:"judgement"`
	Threshold int         `yaml:"threshold"`
}

// Ruleset is the immutable scoring configuration (spec.md §3 C4).
type Ruleset struct {
	Name string `yaml:"name"`

	MissWindow   time.Duration `yaml:"miss_window"`
	CbrushWindow time.Duration `yaml:"cbrush_window"`

	Timegates         []Timegate  `yaml:"timegates"`
	DefaultJudgement  JudgementID `yaml:"default_judgement"`

	Points PointsSpec    `yaml:"points"`
	Hold   HoldBehaviour `yaml:"hold_behaviour"`
	Health HealthConfig  `yaml:"health"`

	Judgements []JudgementDef `yaml:"judgements"`
	Grades     []GradeDef     `yaml:"grades"`
	Lamps      []LampDef      `yaml:"lamps"`
}

// Validate checks the structural invariants spec.md §3/§7 require before a
// Ruleset can be used to score a run.
func (r *Ruleset) Validate() error {
	if len(r.Judgements) == 0 {
		return fmt.Errorf("ruleset: %w", ErrNoJudgements)
	}
	if len(r.Grades) == 0 {
		return fmt.Errorf("ruleset: %w", ErrNoGrades)
	}
	if len(r.Health.Deltas) != len(r.Judgements) {
		return fmt.Errorf("ruleset: %w: health.deltas has %d entries, want %d",
			ErrHealthDeltaMismatch, len(r.Health.Deltas), len(r.Judgements))
	}
	prev := time.Duration(0)
	for i, g := range r.Timegates {
		if i > 0 && g.Time < prev {
			return fmt.Errorf("ruleset: %w: timegate %d (%v) precedes timegate %d (%v)",
				ErrTimegatesUnsorted, i, g.Time, i-1, prev)
		}
		prev = g.Time
		if int(g.Judgement) < 0 || int(g.Judgement) >= len(r.Judgements) {
			return fmt.Errorf("ruleset: timegate %d references unknown judgement %d", i, g.Judgement)
		}
	}
	if int(r.DefaultJudgement) < 0 || int(r.DefaultJudgement) >= len(r.Judgements) {
		return fmt.Errorf("ruleset: default_judgement %d out of range", r.DefaultJudgement)
	}
	if r.Points.Kind == PointsWeighted && len(r.Points.Weights) != len(r.Judgements) {
		return fmt.Errorf("ruleset: points.weights has %d entries, want %d", len(r.Points.Weights), len(r.Judgements))
	}
	return nil
}

// WindowFunc maps a signed delta to a judgement id using gates: the
// first gate whose threshold exceeds |delta| wins; else default.
func (r *Ruleset) WindowFunc(delta time.Duration) JudgementID {
	return windowFunc(r.Timegates, r.DefaultJudgement, delta)
}

func windowFunc(gates []Timegate, def JudgementID, delta time.Duration) JudgementID {
	ad := absDuration(delta)
	for _, g := range gates {
		if ad < g.Time {
			return g.Judgement
		}
	}
	return def
}

// PointsFunc returns the point value for a judgement, given the delta
// that produced it (spec.md §4.6).
func (r *Ruleset) PointsFunc(delta time.Duration, j JudgementID) float64 {
	switch r.Points.Kind {
	case PointsWeighted:
		if int(j) < 0 || int(j) >= len(r.Points.Weights) || r.Points.MaxWeight == 0 {
			return 0
		}
		return r.Points.Weights[j] / r.Points.MaxWeight
	case PointsWife:
		return wifeCurve(absDuration(delta), r.Points.Judge)
	default:
		return 0
	}
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
