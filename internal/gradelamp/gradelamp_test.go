package gradelamp

import (
	"testing"

	"git.lost.host/meutraa/keyjudge/internal/judge"
	"git.lost.host/meutraa/keyjudge/internal/ruleset"
)

func TestGrade(t *testing.T) {
	rs := ruleset.Default()
	tests := []struct {
		accuracy float64
		want     string
	}{
		{1.0, "SSS"},
		{0.96, "SS"},
		{0.85, "A"},
		{0.10, "C"},
	}
	for _, tt := range tests {
		s := &judge.State{PointsScored: tt.accuracy, MaxPointsScored: 1.0}
		if got := Grade(s, rs); got != tt.want {
			t.Errorf("Grade(accuracy=%v) = %q, want %q", tt.accuracy, got, tt.want)
		}
	}
}

func TestLampNameFullCombo(t *testing.T) {
	rs := ruleset.Default()
	s := &judge.State{
		JudgementCounts: make([]int, len(rs.Judgements)),
		ComboBreaks:     0,
	}
	if got, want := LampName(s, rs), "Marvelous Full Combo"; got != want {
		t.Errorf("LampName() = %q, want %q", got, want)
	}
}

func TestLampNameClearOnly(t *testing.T) {
	rs := ruleset.Default()
	s := &judge.State{
		JudgementCounts: []int{5, 3, 2, 1, 0, 0},
		ComboBreaks:     4,
	}
	if got, want := LampName(s, rs), "Clear"; got != want {
		t.Errorf("LampName() = %q, want %q", got, want)
	}
}
