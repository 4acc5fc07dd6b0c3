package judge

import (
	"math"
	"time"

	"git.lost.host/meutraa/keyjudge/internal/chart"
	"git.lost.host/meutraa/keyjudge/internal/hitdata"
	"git.lost.host/meutraa/keyjudge/internal/ruleset"
)

// Scorer is the judgement state machine (spec.md §2 C6): one method per
// event kind, parameterised by a Ruleset, operating over a HitData table.
// It owns its cursors and hold-state array; per the Design Notes, this
// replaces the source's ScoreMetric/ReplayConsumer inheritance with plain
// composition — a replay.Cursor dispatches KeyDown/KeyUp edges into this
// type, which satisfies replay.Scorer.
type Scorer struct {
	rs    *ruleset.Ruleset
	table *hitdata.Table
	rate  float64

	startTime time.Duration
	duration  time.Duration

	pressed chart.KeyMask
	holds   []hitdata.HoldState

	// headJudge/headDelta record a hold head's computed (but possibly
	// not-yet-awarded) judgement, consulted when its release resolves
	// (spec.md §4.6).
	headJudge []*ruleset.JudgementID
	headDelta []time.Duration

	passiveCursor int
	activeCursor  int

	snapshotBucket int

	State     State
	Events    []HitEvent
	Snapshots []Snapshot

	// OnHit is the optional synchronous subscriber hook (spec.md §5).
	// It must not re-enter the engine.
	OnHit func(HitEvent)

	// LampAt computes the lamp name for a snapshot's interim state, set
	// by the caller to avoid a package import cycle with
	// internal/gradelamp (spec.md §4.8, §6.3). May be left nil.
	LampAt func(*State, *ruleset.Ruleset) string
}

// NewScorer builds a Scorer over table, scoring a run played back at the
// given rate (1.0 = normal speed).
func NewScorer(rs *ruleset.Ruleset, table *hitdata.Table, rate float64) *Scorer {
	s := &Scorer{
		rs:        rs,
		table:     table,
		rate:      rate,
		holds:     make([]hitdata.HoldState, table.Keys),
		headJudge: make([]*ruleset.JudgementID, table.Keys),
		headDelta: make([]time.Duration, table.Keys),
		State: State{
			JudgementCounts: make([]int, len(rs.Judgements)),
			Health:          rs.Health.Start,
		},
	}
	if len(table.Entries) > 0 {
		s.startTime = table.Entries[0].Time
		s.duration = table.Entries[len(table.Entries)-1].Time - s.startTime
	}
	return s
}

// Finished reports whether the passive cursor has retired every row
// (spec.md §6.3, property 1).
func (s *Scorer) Finished() bool {
	return s.passiveCursor >= len(s.table.Entries)
}

func (s *Scorer) divide(d time.Duration) time.Duration {
	if s.rate == 0 {
		return d
	}
	return time.Duration(math.Round(float64(d) / s.rate))
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func (s *Scorer) emit(e HitEvent) {
	s.Events = append(s.Events, e)
	if s.OnHit != nil {
		s.OnHit(e)
	}
}

// HandlePassive retires every HitData row whose time is at least the
// ruleset's miss window behind chartTime, resolving each unresolved cell
// as a miss (spec.md §4.3).
func (s *Scorer) HandlePassive(chartTime time.Duration) {
	threshold := chartTime - s.rs.MissWindow
	for s.passiveCursor < len(s.table.Entries) && s.table.Entries[s.passiveCursor].Time <= threshold {
		idx := s.passiveCursor
		entry := &s.table.Entries[idx]
		for lane := 0; lane < s.table.Keys; lane++ {
			cell := &entry.Cells[lane]
			switch cell.Status {
			case hitdata.HitRequired:
				delta := cell.Delta
				cell.Status = hitdata.HitAccepted
				s.resolveHit(entry.Time, lane, delta, true, false)

			case hitdata.HoldHeadRequired:
				delta := cell.Delta
				cell.Status = hitdata.HitAccepted
				s.holds[lane] = hitdata.HoldState{Kind: hitdata.HoldMissedHead, HeadRow: idx}
				s.resolveHit(entry.Time, lane, delta, true, true)

			case hitdata.ReleaseRequired:
				hs := s.holds[lane]
				overhold := (hs.Kind == hitdata.HoldHolding || hs.Kind == hitdata.HoldDropped) && s.pressed.Has(lane)
				dropped := hs.Kind == hitdata.HoldDropped || hs.Kind == hitdata.HoldMissedHead || hs.Kind == hitdata.HoldMissedHeadThenHeld
				delta := cell.Delta
				cell.Status = hitdata.ReleaseAccepted
				s.resolveRelease(entry.Time, lane, delta, true, overhold, dropped)
				if hs.HeadRow < idx {
					s.holds[lane] = hitdata.HoldState{Kind: hitdata.HoldNothing}
				}
			}
		}
		s.passiveCursor++
		s.maybeSnapshot(entry.Time)
	}
}

func (s *Scorer) maybeSnapshot(t time.Duration) {
	if s.duration <= 0 {
		return
	}
	clamped := t - s.startTime
	if clamped < 0 {
		clamped = 0
	}
	if clamped > s.duration {
		clamped = s.duration
	}
	bucket := int(math.Ceil(100 * float64(clamped) / float64(s.duration)))
	if bucket > 100 {
		bucket = 100
	}
	for s.snapshotBucket < bucket {
		s.snapshotBucket++
		lamp := ""
		if s.LampAt != nil {
			lamp = s.LampAt(&s.State, s.rs)
		}
		s.Snapshots = append(s.Snapshots, Snapshot{
			Time:            t,
			PointsScored:    s.State.PointsScored,
			MaxPointsScored: s.State.MaxPointsScored,
			Combo:           s.State.CurrentCombo,
			Lamp:            lamp,
		})
	}
}

// HandleKeyDown resolves a press on lane at time t against the HitData
// table, per spec.md §4.4 (the closest-note-with-absorption algorithm).
func (s *Scorer) HandleKeyDown(t time.Duration, lane int) {
	s.pressed |= 1 << uint(lane)
	s.HandlePassive(t)

	for s.activeCursor < len(s.table.Entries) && s.table.Entries[s.activeCursor].Time < t-s.rs.MissWindow {
		s.activeCursor++
	}

	earliestRow := -1
	var earliestDelta, earliestAbs time.Duration
	var cbrushAbs time.Duration
	cbrushSet := false

	for i := s.activeCursor; i < len(s.table.Entries); i++ {
		entry := &s.table.Entries[i]
		if entry.Time > t+s.rs.MissWindow {
			break
		}
		d := t - entry.Time
		ad := absDuration(d)
		cell := &entry.Cells[lane]

		switch cell.Status {
		case hitdata.HitRequired, hitdata.HoldHeadRequired:
			if earliestRow == -1 || ad < earliestAbs {
				earliestRow = i
				earliestDelta = d
				earliestAbs = ad
			}
		case hitdata.HitAccepted:
			if cell.Delta < -s.rs.CbrushWindow {
				if !cbrushSet || ad < cbrushAbs {
					cbrushAbs = ad
					cbrushSet = true
				}
			}
		}

		if earliestRow != -1 && earliestAbs < s.rs.CbrushWindow {
			break
		}
	}

	accept := earliestRow != -1 && (!cbrushSet || cbrushAbs >= earliestAbs)
	if accept {
		entry := &s.table.Entries[earliestRow]
		cell := &entry.Cells[lane]
		wasHold := cell.Status == hitdata.HoldHeadRequired
		divided := s.divide(earliestDelta)
		cell.Status = hitdata.HitAccepted
		cell.Delta = divided
		s.resolveHit(entry.Time, lane, divided, false, wasHold)
		if wasHold {
			s.holds[lane] = hitdata.HoldState{Kind: hitdata.HoldHolding, HeadRow: earliestRow}
		}
		return
	}

	if earliestRow == -1 && s.holds[lane].Kind == hitdata.HoldMissedHead {
		s.holds[lane] = hitdata.HoldState{Kind: hitdata.HoldMissedHeadThenHeld, HeadRow: s.holds[lane].HeadRow}
	}
}

// HandleKeyUp resolves a release on lane at time t, per spec.md §4.5.
func (s *Scorer) HandleKeyUp(t time.Duration, lane int) {
	s.pressed &^= 1 << uint(lane)
	s.HandlePassive(t)

	hs := s.holds[lane]
	switch hs.Kind {
	case hitdata.HoldHolding, hitdata.HoldDropped, hitdata.HoldMissedHeadThenHeld:
		found := -1
		for i := hs.HeadRow; i < len(s.table.Entries); i++ {
			entry := &s.table.Entries[i]
			if entry.Time > t+s.rs.MissWindow {
				break
			}
			if entry.Cells[lane].Status == hitdata.ReleaseRequired {
				found = i
				break
			}
		}

		if found != -1 {
			entry := &s.table.Entries[found]
			cell := &entry.Cells[lane]
			divided := s.divide(t - entry.Time)
			cell.Status = hitdata.ReleaseAccepted
			cell.Delta = divided
			dropped := hs.Kind == hitdata.HoldDropped || hs.Kind == hitdata.HoldMissedHeadThenHeld
			s.resolveRelease(entry.Time, lane, divided, false, false, dropped)
			s.holds[lane] = hitdata.HoldState{Kind: hitdata.HoldNothing}
			return
		}

		if hs.Kind == hitdata.HoldHolding {
			s.holds[lane] = hitdata.HoldState{Kind: hitdata.HoldDropped, HeadRow: hs.HeadRow}
			if s.rs.Hold.Kind == ruleset.HoldOsuStyle {
				s.State.breakCombo()
			}
		}

	case hitdata.HoldMissedHead, hitdata.HoldNothing:
		// ignore, per spec.md §4.5 step 3
	}
}
