package judge

import (
	"time"

	"git.lost.host/meutraa/keyjudge/internal/ruleset"
)

// awardJudgement folds judgement j, scored at delta, into the running
// totals: the judgement count, the points ratio, and the health bar
// (spec.md §4.6). It does not touch combo; callers decide combo
// separately since combo rules vary by hold behaviour.
func (s *Scorer) awardJudgement(j ruleset.JudgementID, delta time.Duration) {
	if idx := int(j); idx >= 0 && idx < len(s.State.JudgementCounts) {
		s.State.JudgementCounts[idx]++
	}
	s.State.PointsScored += s.rs.PointsFunc(delta, j)
	s.State.MaxPointsScored += 1.0
	s.applyHealth(j)
}

func (s *Scorer) applyHealth(j ruleset.JudgementID) {
	idx := int(j)
	if idx < 0 || idx >= len(s.rs.Health.Deltas) {
		return
	}
	h := s.State.Health + s.rs.Health.Deltas[idx]
	if h < 0 {
		h = 0
	}
	if h > 1 {
		h = 1
	}
	s.State.Health = h
	s.State.CurrentlyFailed = h <= s.rs.Health.ClearThreshold
	if s.State.CurrentlyFailed {
		s.State.HasFailed = true
	}
}

// applyComboForJudgement applies the default combo rule (break iff the
// judgement's ruleset entry says so) and counts the opportunity towards
// MaxPossibleCombo.
func (s *Scorer) applyComboForJudgement(j ruleset.JudgementID) {
	breaks := false
	if idx := int(j); idx >= 0 && idx < len(s.rs.Judgements) {
		breaks = s.rs.Judgements[idx].BreaksCombo
	}
	if breaks {
		s.State.breakCombo()
	} else {
		s.State.incrCombo()
	}
	s.State.MaxPossibleCombo++
}

// Failed reports whether the run should currently be considered a fail,
// per the ruleset's only_fail_at_end setting (spec.md §4.6).
func (s *Scorer) Failed() bool {
	if s.rs.Health.OnlyFailAtEnd {
		return s.State.CurrentlyFailed
	}
	return s.State.HasFailed
}

// resolveHit applies the Hit-event judgement logic of spec.md §4.6.
func (s *Scorer) resolveHit(t time.Duration, lane int, delta time.Duration, missed, isHold bool) {
	if !isHold {
		j := s.rs.WindowFunc(delta)
		s.awardJudgement(j, delta)
		s.applyComboForJudgement(j)
		s.emit(HitEvent{Time: t, Column: lane, Hit: &HitGuts{Judgement: &j, Delta: delta, Missed: missed, IsHold: false}})
		return
	}

	j := s.rs.WindowFunc(delta)
	jCopy := j
	s.headJudge[lane] = &jCopy
	s.headDelta[lane] = delta

	switch s.rs.Hold.Kind {
	case ruleset.HoldBreakComboOnly, ruleset.HoldJudgeReleases:
		s.awardJudgement(j, delta)
		s.applyComboForJudgement(j)
		s.emit(HitEvent{Time: t, Column: lane, Hit: &HitGuts{Judgement: &j, Delta: delta, Missed: missed, IsHold: true}})
	default: // HoldOsuStyle, HoldNormal, HoldOnlyJudgeReleases
		s.emit(HitEvent{Time: t, Column: lane, Hit: &HitGuts{Judgement: nil, Delta: delta, Missed: missed, IsHold: true}})
	}
}

// resolveRelease applies the Release-event judgement logic of spec.md
// §4.6, branching on the configured hold behaviour.
func (s *Scorer) resolveRelease(t time.Duration, lane int, delta time.Duration, missed, overhold, dropped bool) {
	headJ := s.headJudge[lane]
	headD := s.headDelta[lane]

	switch s.rs.Hold.Kind {
	case ruleset.HoldOsuStyle:
		j := osuJudgement(headD, delta, s.rs.Hold.OD, overhold, dropped)
		s.awardJudgement(j, delta)
		s.applyComboForJudgement(j)
		s.emit(HitEvent{Time: t, Column: lane, Release: &ReleaseGuts{Judgement: &j, Delta: delta, Missed: missed, Overhold: overhold, Dropped: dropped}})

	case ruleset.HoldBreakComboOnly:
		breaksNow := !overhold && (missed || dropped)
		if s.rs.Hold.BreakComboOnlyBreaksOnOverhold && overhold && dropped {
			breaksNow = true
		}
		if breaksNow {
			s.State.breakCombo()
		} else {
			s.State.incrCombo()
		}
		s.State.MaxPossibleCombo++
		s.emit(HitEvent{Time: t, Column: lane, Release: &ReleaseGuts{Judgement: nil, Delta: delta, Missed: missed, Overhold: overhold, Dropped: dropped}})

	case ruleset.HoldJudgeReleases:
		j := windowFuncGates(s.rs.Hold.ReleaseGates, s.rs.DefaultJudgement, delta)
		s.awardJudgement(j, delta)
		s.applyComboForJudgement(j)
		s.emit(HitEvent{Time: t, Column: lane, Release: &ReleaseGuts{Judgement: &j, Delta: delta, Missed: missed, Overhold: overhold, Dropped: dropped}})

	case ruleset.HoldNormal:
		j := ruleset.JudgementID(0)
		if headJ != nil {
			j = *headJ
		}
		if overhold {
			j = maxJudgement(j, s.rs.Hold.OverholdJudgement)
		} else if missed || dropped {
			j = maxJudgement(j, s.rs.Hold.DropJudgement)
		}
		s.awardJudgement(j, headD)
		s.applyComboForJudgement(j)
		s.emit(HitEvent{Time: t, Column: lane, Release: &ReleaseGuts{Judgement: &j, Delta: delta, Missed: missed, Overhold: overhold, Dropped: dropped}})

	case ruleset.HoldOnlyJudgeReleases:
		j := s.rs.WindowFunc(delta)
		s.awardJudgement(j, delta)
		s.applyComboForJudgement(j)
		s.emit(HitEvent{Time: t, Column: lane, Release: &ReleaseGuts{Judgement: &j, Delta: delta, Missed: missed, Overhold: overhold, Dropped: dropped}})
	}
}

// maxJudgement returns the numerically larger (i.e. worse) judgement id.
func maxJudgement(a, b ruleset.JudgementID) ruleset.JudgementID {
	if b > a {
		return b
	}
	return a
}

func windowFuncGates(gates []ruleset.Timegate, def ruleset.JudgementID, delta time.Duration) ruleset.JudgementID {
	ad := absDuration(delta)
	for _, g := range gates {
		if ad < g.Time {
			return g.Judgement
		}
	}
	return def
}
