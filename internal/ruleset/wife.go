package ruleset

import (
	"math"
	"time"
)

// wifeCurve evaluates the continuous points curve variant of PointsSpec:
// a judge-integer-parameterised curve over |delta|, in the spirit of the
// "wife" scoring curves used by judge-based scroll rhythm games. Judge 1
// is the most lenient, higher judge numbers tighten the curve. The curve
// is 1.0 at delta=0 and falls off smoothly to -1.0 well past the miss
// window; Ruleset.MissWindow still gates whether a press can reach this
// function at all (spec.md §4.4).
//
// No library in the example pack implements this kind of curve, so it is
// hand-written against stdlib math.Erf rather than grounded on a
// third-party dependency.
func wifeCurve(absDelta time.Duration, judge int) float64 {
	if judge < 1 {
		judge = 1
	}
	ms := float64(absDelta) / float64(time.Millisecond)
	scale := 10.0 / float64(judge)
	z := ms / (scale * math.Sqrt2)
	// 1 at z=0, smoothly decaying to -1 as z grows.
	return 2*(1-math.Erf(z)) - 1
}
