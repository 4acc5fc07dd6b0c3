// Package hitdata holds the mutable per-note, per-lane scoring ledger that
// the judgement state machine writes into as a replay is consumed
// (spec.md §3 C5, §4.1).
package hitdata

import (
	"time"

	"git.lost.host/meutraa/keyjudge/internal/chart"
)

// Status is the per-(row,lane) scoring cell state (spec.md §3).
type Status int

const (
	Nothing Status = iota
	HitRequired
	HoldHeadRequired
	HoldBodyRequired
	ReleaseRequired
	HitAccepted
	ReleaseAccepted
)

// Cell is one (row, lane) scoring entry.
type Cell struct {
	Status Status
	// Delta is the recorded input-minus-note time divided by rate, or the
	// ruleset's miss window sentinel while unresolved.
	Delta time.Duration
}

// Entry is one HitData row: the chart row time plus its per-lane cells.
type Entry struct {
	Time  time.Duration
	Cells []Cell
}

// Table is the ordered HitData array, one Entry per chart row (spec.md §3).
type Table struct {
	Keys    int
	Entries []Entry
}

// Build seeds a Table from a validated chart, per spec.md §4.1.
func Build(c *chart.Chart, missWindow time.Duration) *Table {
	t := &Table{Keys: c.Keys, Entries: make([]Entry, len(c.Rows))}
	for i, row := range c.Rows {
		cells := make([]Cell, c.Keys)
		for lane, cellType := range row.Cells {
			var st Status
			switch cellType {
			case chart.Normal:
				st = HitRequired
			case chart.HoldHead:
				st = HoldHeadRequired
			case chart.HoldBody:
				st = HoldBodyRequired
			case chart.HoldTail:
				st = ReleaseRequired
			default:
				st = Nothing
			}
			cells[lane] = Cell{Status: st, Delta: missWindow}
		}
		t.Entries[i] = Entry{Time: row.Time, Cells: cells}
	}
	return t
}

// HoldStateKind is the per-lane hold tracking state (spec.md §3).
type HoldStateKind int

const (
	HoldNothing HoldStateKind = iota
	HoldHolding
	HoldDropped
	HoldMissedHead
	HoldMissedHeadThenHeld
)

// HoldState tracks one lane's current hold, tagged with the HitData row
// index of the hold head it refers to.
type HoldState struct {
	Kind     HoldStateKind
	HeadRow  int
}
