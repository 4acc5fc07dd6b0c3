// Package chartio loads charts and replays from a small JSON
// on-disk format. Chart parsing proper is out of scope for the scoring
// engine itself; this is the thin demo/CLI-facing loader the command
// binaries use to get a Chart and a replay.Source onto the wire.
package chartio

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"git.lost.host/meutraa/keyjudge/internal/chart"
	"git.lost.host/meutraa/keyjudge/internal/replay"
)

type jsonRow struct {
	TimeMs int64 `json:"time_ms"`
	Cells  []int `json:"cells"`
}

type jsonChart struct {
	Keys int       `json:"keys"`
	Rows []jsonRow `json:"rows"`
}

// LoadChart reads a chart from its JSON encoding at path.
func LoadChart(path string) (*chart.Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("chartio: read %s: %w", path, err)
	}
	var jc jsonChart
	if err := json.Unmarshal(data, &jc); err != nil {
		return nil, fmt.Errorf("chartio: decode %s: %w", path, err)
	}
	rows := make([]chart.Row, len(jc.Rows))
	for i, r := range jc.Rows {
		cells := make([]chart.Cell, len(r.Cells))
		for j, c := range r.Cells {
			cells[j] = chart.Cell(c)
		}
		rows[i] = chart.Row{Time: time.Duration(r.TimeMs) * time.Millisecond, Cells: cells}
	}
	return &chart.Chart{Keys: jc.Keys, Rows: rows}, nil
}

type jsonFrame struct {
	TimeMs int64  `json:"time_ms"`
	Bits   uint16 `json:"bits"`
}

// LoadReplay reads a replay frame stream from its JSON encoding at path.
func LoadReplay(path string) ([]replay.Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("chartio: read %s: %w", path, err)
	}
	var jf []jsonFrame
	if err := json.Unmarshal(data, &jf); err != nil {
		return nil, fmt.Errorf("chartio: decode %s: %w", path, err)
	}
	frames := make([]replay.Frame, len(jf))
	for i, f := range jf {
		frames[i] = replay.Frame{Time: time.Duration(f.TimeMs) * time.Millisecond, Bits: chart.KeyMask(f.Bits)}
	}
	return frames, nil
}
