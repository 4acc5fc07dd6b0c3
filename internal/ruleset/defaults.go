package ruleset

import "time"

// Default returns a reasonable standalone ruleset: five graded timing
// windows plus a miss, a weighted points table, and Normal-style hold
// judgement. It mirrors the shape of the teacher's hardcoded
// internal/config.Judgements table, generalized into data.
func Default() *Ruleset {
	r := &Ruleset{
		Name:         "standard",
		MissWindow:   180 * time.Millisecond,
		CbrushWindow: 90 * time.Millisecond,
		Timegates: []Timegate{
			{Time: 20 * time.Millisecond, Judgement: 0},
			{Time: 40 * time.Millisecond, Judgement: 1},
			{Time: 60 * time.Millisecond, Judgement: 2},
			{Time: 100 * time.Millisecond, Judgement: 3},
			{Time: 180 * time.Millisecond, Judgement: 4},
		},
		DefaultJudgement: 5,
		Points: PointsSpec{
			Kind:      PointsWeighted,
			MaxWeight: 100,
			Weights:   []float64{100, 65, 45, 20, 0, -60},
		},
		Hold: HoldBehaviour{
			Kind:              HoldNormal,
			DropJudgement:     4,
			OverholdJudgement: 3,
		},
		Health: HealthConfig{
			Start:          1.0,
			ClearThreshold: 0.0,
			OnlyFailAtEnd:  false,
			Deltas:         []float64{0.008, 0.005, 0.002, 0, -0.03, -0.08},
		},
		Judgements: []JudgementDef{
			{Name: "Marvelous", BreaksCombo: false, Color: "#99ddff"},
			{Name: "Perfect", BreaksCombo: false, Color: "#ffe066"},
			{Name: "Great", BreaksCombo: false, Color: "#66cc66"},
			{Name: "Good", BreaksCombo: false, Color: "#6699ff"},
			{Name: "Bad", BreaksCombo: true, Color: "#cc66cc"},
			{Name: "Miss", BreaksCombo: true, Color: "#ff4444"},
		},
		Grades: []GradeDef{
			{Name: "SSS", AccuracyThreshold: 0.99},
			{Name: "SS", AccuracyThreshold: 0.95},
			{Name: "S", AccuracyThreshold: 0.90},
			{Name: "A", AccuracyThreshold: 0.80},
			{Name: "B", AccuracyThreshold: 0.70},
			{Name: "C", AccuracyThreshold: 0.60},
		},
		Lamps: []LampDef{
			{Name: "Marvelous Full Combo", Judgement: 1, Threshold: 0},
			{Name: "Perfect Full Combo", Judgement: 3, Threshold: 0},
			{Name: "Full Combo", Judgement: -1, Threshold: 0},
			{Name: "Clear", Judgement: -1, Threshold: 1 << 30},
		},
	}
	return r
}
