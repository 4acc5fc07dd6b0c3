package replay

import (
	"testing"
	"time"

	"git.lost.host/meutraa/keyjudge/internal/chart"
)

type recordingScorer struct {
	downs []event
	ups   []event
}

type event struct {
	t    time.Duration
	lane int
}

func (r *recordingScorer) HandleKeyDown(t time.Duration, lane int) {
	r.downs = append(r.downs, event{t, lane})
}

func (r *recordingScorer) HandleKeyUp(t time.Duration, lane int) {
	r.ups = append(r.ups, event{t, lane})
}

func TestCursorDispatchesEdges(t *testing.T) {
	frames := []Frame{
		{Time: 0, Bits: 0b001},
		{Time: 10 * time.Millisecond, Bits: 0b011},
		{Time: 20 * time.Millisecond, Bits: 0b010},
	}
	rec := &recordingScorer{}
	c := NewCursor(NewSliceSource(frames), rec, 3)

	if err := c.AdvanceTo(20 * time.Millisecond); err != nil {
		t.Fatalf("AdvanceTo() error = %v", err)
	}
	if !c.Exhausted() {
		t.Error("Exhausted() = false, want true")
	}

	if len(rec.downs) != 2 {
		t.Fatalf("downs = %+v, want 2 events", rec.downs)
	}
	if rec.downs[0] != (event{0, 0}) {
		t.Errorf("downs[0] = %+v, want lane 0 at t=0", rec.downs[0])
	}
	if rec.downs[1] != (event{10 * time.Millisecond, 1}) {
		t.Errorf("downs[1] = %+v, want lane 1 at t=10ms", rec.downs[1])
	}
	if len(rec.ups) != 1 || rec.ups[0] != (event{20 * time.Millisecond, 0}) {
		t.Errorf("ups = %+v, want one event: lane 0 at t=20ms", rec.ups)
	}
}

func TestCursorFaultsOnOutOfOrder(t *testing.T) {
	frames := []Frame{
		{Time: 20 * time.Millisecond, Bits: 0b001},
		{Time: 10 * time.Millisecond, Bits: 0b010},
	}
	rec := &recordingScorer{}
	c := NewCursor(NewSliceSource(frames), rec, 2)

	if err := c.AdvanceTo(30 * time.Millisecond); err == nil {
		t.Fatal("AdvanceTo() error = nil, want ErrOutOfOrder")
	}
}

func TestKeyMaskLanesEmpty(t *testing.T) {
	var m chart.KeyMask
	if lanes := m.Lanes(4); len(lanes) != 0 {
		t.Errorf("Lanes() = %v, want empty", lanes)
	}
}
