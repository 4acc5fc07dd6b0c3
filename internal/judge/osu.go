package judge

import (
	"time"

	"git.lost.host/meutraa/keyjudge/internal/ruleset"
)

// osuJudgement computes the combined hold judgement used by HoldOsuStyle,
// per spec.md §6.4: `a = |releaseDelta|*0.5`, `h = |headDelta|`,
// `b = 151.5 - 3*od`, evaluated against six independently-thresholded
// tiers in order, the first match winning.
//
// JudgementID 0..5 here are the six spec.md §6.4 tiers in the ruleset's
// judgement order: 300g, 300, 200, 100, 50, MISS.
func osuJudgement(headDelta, releaseDelta time.Duration, od float64, overhold, dropped bool) ruleset.JudgementID {
	h := msAbs(headDelta)
	a := msAbs(releaseDelta) * 0.5
	b := 151.5 - 3*od
	lenient := overhold || h < b

	switch {
	case a < 19.8 && a+h < 39.6 && lenient && !dropped:
		return osu300g
	case a < (64.5-3*od)*1.1 && a+h < 2.2*(64.5-3*od) && lenient && !dropped:
		return osu300
	case a < 97.5-3*od && a+h < 2*(97.5-3*od) && lenient:
		return osu200
	case a < 127.5-3*od && a+h < 2*(127.5-3*od) && lenient:
		return osu100
	case lenient:
		return osu50
	default:
		return osuMiss
	}
}

const (
	osu300g ruleset.JudgementID = iota
	osu300
	osu200
	osu100
	osu50
	osuMiss
)

func msAbs(d time.Duration) float64 {
	if d < 0 {
		d = -d
	}
	return float64(d) / float64(time.Millisecond)
}
