package store

import (
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/keyjudge/internal/chart"
	"git.lost.host/meutraa/keyjudge/internal/personalbest"
	"git.lost.host/meutraa/keyjudge/internal/replay"
)

func testChart() *chart.Chart {
	return &chart.Chart{
		Keys: 4,
		Rows: []chart.Row{
			{Time: 0, Cells: []chart.Cell{chart.Normal, chart.Empty, chart.Empty, chart.Empty}},
		},
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbPath, nil)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoadAttempt(t *testing.T) {
	s := openTestStore(t)
	c := testChart()
	frames := []replay.Frame{{Time: 5 * time.Millisecond, Bits: 1}}

	if err := s.SaveAttempt(c, frames, 1.0, time.Unix(1000, 0)); err != nil {
		t.Fatalf("SaveAttempt() failed: %v", err)
	}

	attempts, err := s.LoadAttempts(c)
	if err != nil {
		t.Fatalf("LoadAttempts() failed: %v", err)
	}
	if len(attempts) != 1 {
		t.Fatalf("len(attempts) = %d, want 1", len(attempts))
	}
	if len(attempts[0].Frames) != 1 || attempts[0].Frames[0].Bits != 1 {
		t.Errorf("attempts[0].Frames = %+v, want one frame with bits=1", attempts[0].Frames)
	}

	src := attempts[0].Replay()
	frame, ok := src.Next()
	if !ok || frame.Bits != 1 {
		t.Errorf("Replay().Next() = %+v, %v, want the saved frame", frame, ok)
	}
}

func TestRecordAttemptTracksFrontier(t *testing.T) {
	s := openTestStore(t)
	c := testChart()

	imp, err := s.RecordAttempt(c, 90, 100, 1.0)
	if err != nil {
		t.Fatalf("RecordAttempt() failed: %v", err)
	}
	if imp != personalbest.ImprovementNew {
		t.Fatalf("first RecordAttempt() improvement = %v, want ImprovementNew", imp)
	}

	imp, err = s.RecordAttempt(c, 80, 100, 1.0)
	if err != nil {
		t.Fatalf("RecordAttempt() failed: %v", err)
	}
	if imp != personalbest.ImprovementNone {
		t.Fatalf("worse RecordAttempt() improvement = %v, want ImprovementNone", imp)
	}

	frontier, err := s.LoadFrontier(c)
	if err != nil {
		t.Fatalf("LoadFrontier() failed: %v", err)
	}
	if len(frontier) != 1 || frontier[0].Value.PointsScored != 90 {
		t.Errorf("frontier = %+v, want single entry with 90 points", frontier)
	}
}

func TestHashChartStable(t *testing.T) {
	c1 := testChart()
	c2 := testChart()
	if HashChart(c1) != HashChart(c2) {
		t.Error("HashChart() differs for structurally identical charts")
	}
	c2.Rows[0].Time = time.Millisecond
	if HashChart(c1) == HashChart(c2) {
		t.Error("HashChart() matches for charts with different row times")
	}
}
