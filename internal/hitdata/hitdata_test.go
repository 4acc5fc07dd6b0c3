package hitdata

import (
	"testing"
	"time"

	"git.lost.host/meutraa/keyjudge/internal/chart"
)

func TestBuild(t *testing.T) {
	c := &chart.Chart{
		Keys: 2,
		Rows: []chart.Row{
			{Time: 0, Cells: []chart.Cell{chart.Normal, chart.HoldHead}},
			{Time: 100 * time.Millisecond, Cells: []chart.Cell{chart.Empty, chart.HoldBody}},
			{Time: 200 * time.Millisecond, Cells: []chart.Cell{chart.Empty, chart.HoldTail}},
		},
	}
	table := Build(c, 180*time.Millisecond)

	if got, want := len(table.Entries), 3; got != want {
		t.Fatalf("len(Entries) = %d, want %d", got, want)
	}
	if got, want := table.Entries[0].Cells[0].Status, HitRequired; got != want {
		t.Errorf("row 0 lane 0 status = %v, want %v", got, want)
	}
	if got, want := table.Entries[0].Cells[1].Status, HoldHeadRequired; got != want {
		t.Errorf("row 0 lane 1 status = %v, want %v", got, want)
	}
	if got, want := table.Entries[1].Cells[1].Status, HoldBodyRequired; got != want {
		t.Errorf("row 1 lane 1 status = %v, want %v", got, want)
	}
	if got, want := table.Entries[2].Cells[1].Status, ReleaseRequired; got != want {
		t.Errorf("row 2 lane 1 status = %v, want %v", got, want)
	}
	if got, want := table.Entries[0].Cells[0].Delta, 180*time.Millisecond; got != want {
		t.Errorf("unresolved cell delta = %v, want sentinel %v", got, want)
	}
}
