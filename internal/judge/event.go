// Package judge implements the scoring state machine (spec.md §2 C6): it
// consumes replay input against a chart's HitData, decides how each note
// and release resolves, and interprets the outcome through a Ruleset into
// points, combo, and health (spec.md §4).
package judge

import (
	"time"

	"git.lost.host/meutraa/keyjudge/internal/ruleset"
)

// HitGuts is the Hit variant of HitEvent.Guts (spec.md §3).
type HitGuts struct {
	// Judgement is nil when the ruleset defers judgement of a hold head
	// to its release (spec.md §4.6).
	Judgement *ruleset.JudgementID
	Delta     time.Duration
	Missed    bool
	IsHold    bool
}

// ReleaseGuts is the Release variant of HitEvent.Guts.
type ReleaseGuts struct {
	Judgement *ruleset.JudgementID
	Delta     time.Duration
	Missed    bool
	Overhold  bool
	Dropped   bool
}

// HitEvent describes exactly how one note or release was resolved
// (spec.md §3). Exactly one of Hit or Release is non-nil.
type HitEvent struct {
	Time   time.Duration
	Column int

	Hit     *HitGuts
	Release *ReleaseGuts
}

// Snapshot is one sample of running totals, emitted lazily during the
// passive sweep (spec.md §3, §4.3).
type Snapshot struct {
	Time             time.Duration
	PointsScored     float64
	MaxPointsScored  float64
	Combo            int
	Lamp             string
}
