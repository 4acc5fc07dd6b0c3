package chart

import "errors"

// These are the chart-construction faults spec.md §7 lists as fatal:
// the run cannot continue once either is hit.
var (
	ErrEmptyChart       = errors.New("chart has zero rows")
	ErrUnterminatedHold = errors.New("hold head has no matching tail")
)
