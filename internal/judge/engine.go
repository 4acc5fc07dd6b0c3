package judge

import (
	"errors"
	"time"

	"git.lost.host/meutraa/keyjudge/internal/chart"
	"git.lost.host/meutraa/keyjudge/internal/hitdata"
	"git.lost.host/meutraa/keyjudge/internal/replay"
	"git.lost.host/meutraa/keyjudge/internal/ruleset"
)

// Engine composes a replay.Cursor over a Scorer, validating its chart and
// ruleset up front and driving the passive sweep to completion (spec.md
// §2, §7). It is the entry point used by both the CLI commands and the
// store package's batch scoring path.
type Engine struct {
	scorer *Scorer
	cursor *replay.Cursor
	chart  *chart.Chart
}

// NewEngine validates c and rs, builds the HitData table, and returns an
// Engine ready to consume src at the given playback rate. A non-nil error
// is always a *Fault.
func NewEngine(c *chart.Chart, rs *ruleset.Ruleset, src replay.Source, rate float64, lampAt func(*State, *ruleset.Ruleset) string) (*Engine, error) {
	if err := c.Validate(); err != nil {
		if errors.Is(err, chart.ErrEmptyChart) {
			return nil, newFault(FaultEmptyChart, err)
		}
		if errors.Is(err, chart.ErrUnterminatedHold) {
			return nil, newFault(FaultUnterminatedHold, err)
		}
		return nil, newFault(FaultBadRuleset, err)
	}
	if err := rs.Validate(); err != nil {
		return nil, newFault(FaultBadRuleset, err)
	}

	table := hitdata.Build(c, rs.MissWindow)
	scorer := NewScorer(rs, table, rate)
	scorer.LampAt = lampAt

	cursor := replay.NewCursor(src, scorer, c.Keys)

	return &Engine{scorer: scorer, cursor: cursor, chart: c}, nil
}

// Update drains every replay frame with time <= t and retires any HitData
// rows now beyond the miss window, per spec.md §4.2/§4.3. A non-nil error
// is always a *Fault wrapping *replay.ErrOutOfOrder.
func (e *Engine) Update(t time.Duration) error {
	if err := e.cursor.AdvanceTo(t); err != nil {
		return newFault(FaultFramesOutOfOrder, err)
	}
	e.scorer.HandlePassive(t)
	return nil
}

// Finish drives the engine to the end of the chart, retiring every
// remaining row as a miss regardless of whether the replay source is
// exhausted (spec.md §6.3, property 1).
func (e *Engine) Finish() {
	e.scorer.HandlePassive(e.chart.Duration() + e.scorer.rs.MissWindow)
}

// Finished reports whether every chart row has been retired.
func (e *Engine) Finished() bool {
	return e.scorer.Finished()
}

// State returns the engine's live scoring state.
func (e *Engine) State() *State {
	return &e.scorer.State
}

// Events returns every HitEvent resolved so far, in resolution order (not
// necessarily chart-row order, since input can resolve rows out of the
// order they'll retire in).
func (e *Engine) Events() []HitEvent {
	return e.scorer.Events
}

// Snapshots returns every progress Snapshot emitted so far.
func (e *Engine) Snapshots() []Snapshot {
	return e.scorer.Snapshots
}

// Failed reports whether the run should currently be considered a fail.
func (e *Engine) Failed() bool {
	return e.scorer.Failed()
}

// OnHit registers a synchronous hook invoked for every resolved HitEvent.
func (e *Engine) OnHit(fn func(HitEvent)) {
	e.scorer.OnHit = fn
}
