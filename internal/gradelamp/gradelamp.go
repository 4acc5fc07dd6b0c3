// Package gradelamp classifies a finished (or in-progress) judge.State
// against a ruleset's grade and lamp tables (spec.md §4.8). It is kept
// separate from internal/judge to avoid an import cycle: judge.Scorer
// only needs a lamp name at Snapshot time, injected via its LampAt hook,
// rather than a direct dependency on this package's types.
package gradelamp

import (
	"git.lost.host/meutraa/keyjudge/internal/judge"
	"git.lost.host/meutraa/keyjudge/internal/ruleset"
)

// Grade returns the name of the best grade tier whose accuracy threshold
// the state's current accuracy meets or exceeds, walking the ruleset's
// grade list from best to worst as declared. The ruleset is expected to
// list grades in descending threshold order; if none match, the last
// (lowest) grade wins.
func Grade(s *judge.State, rs *ruleset.Ruleset) string {
	acc := s.Accuracy()
	for _, g := range rs.Grades {
		if acc >= g.AccuracyThreshold {
			return g.Name
		}
	}
	if len(rs.Grades) > 0 {
		return rs.Grades[len(rs.Grades)-1].Name
	}
	return ""
}

// LampName returns the name of the best lamp tier the state qualifies
// for, per spec.md §4.8: a lamp with Judgement == -1 is judged on combo
// breaks (threshold is the maximum allowed ComboBreaks), otherwise it
// thresholds the count of judgements at-or-worse than Judgement. Lamps
// are declared best-first; the first one the state qualifies for wins.
func LampName(s *judge.State, rs *ruleset.Ruleset) string {
	for _, l := range rs.Lamps {
		if lampQualifies(s, l) {
			return l.Name
		}
	}
	return ""
}

func lampQualifies(s *judge.State, l ruleset.LampDef) bool {
	if int(l.Judgement) < 0 {
		return s.ComboBreaks <= l.Threshold
	}
	count := 0
	for i := int(l.Judgement); i < len(s.JudgementCounts); i++ {
		count += s.JudgementCounts[i]
	}
	return count <= l.Threshold
}
