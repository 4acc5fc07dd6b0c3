package ruleset

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
}

func TestValidateRejectsEmptyJudgements(t *testing.T) {
	r := Default()
	r.Judgements = nil
	if err := r.Validate(); !errors.Is(err, ErrNoJudgements) {
		t.Fatalf("Validate() = %v, want ErrNoJudgements", err)
	}
}

func TestValidateRejectsHealthMismatch(t *testing.T) {
	r := Default()
	r.Health.Deltas = r.Health.Deltas[:1]
	if err := r.Validate(); !errors.Is(err, ErrHealthDeltaMismatch) {
		t.Fatalf("Validate() = %v, want ErrHealthDeltaMismatch", err)
	}
}

func TestValidateRejectsUnsortedTimegates(t *testing.T) {
	r := Default()
	r.Timegates[0], r.Timegates[1] = r.Timegates[1], r.Timegates[0]
	if err := r.Validate(); !errors.Is(err, ErrTimegatesUnsorted) {
		t.Fatalf("Validate() = %v, want ErrTimegatesUnsorted", err)
	}
}

func TestWindowFunc(t *testing.T) {
	r := Default()
	tests := []struct {
		delta time.Duration
		want  JudgementID
	}{
		{0, 0},
		{19 * time.Millisecond, 0},
		{21 * time.Millisecond, 1},
		{41 * time.Millisecond, 2},
		{-41 * time.Millisecond, 2},
		{200 * time.Millisecond, 5},
	}
	for _, tt := range tests {
		if got := r.WindowFunc(tt.delta); got != tt.want {
			t.Errorf("WindowFunc(%v) = %d, want %d", tt.delta, got, tt.want)
		}
	}
}

func TestPointsFuncWeighted(t *testing.T) {
	r := Default()
	if got, want := r.PointsFunc(0, 0), 1.0; got != want {
		t.Errorf("PointsFunc(marvelous) = %v, want %v", got, want)
	}
	if got, want := r.PointsFunc(0, 5), -0.6; got != want {
		t.Errorf("PointsFunc(miss) = %v, want %v", got, want)
	}
}

func TestPointsFuncWife(t *testing.T) {
	r := Default()
	r.Points = PointsSpec{Kind: PointsWife, Judge: 4}
	exact := r.PointsFunc(0, 0)
	if exact <= 0.9 {
		t.Errorf("PointsFunc(0) = %v, want close to 1.0", exact)
	}
	late := r.PointsFunc(200*time.Millisecond, 5)
	if late >= exact {
		t.Errorf("PointsFunc(200ms) = %v, want < PointsFunc(0) = %v", late, exact)
	}
}
