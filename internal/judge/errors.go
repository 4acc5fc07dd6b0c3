package judge

import "fmt"

// FaultKind is the closed set of fatal engine faults from spec.md §7: each
// one means the run cannot be scored at all, as opposed to an individual
// miss or drop which is ordinary scoring output.
type FaultKind int

const (
	FaultFramesOutOfOrder FaultKind = iota
	FaultEmptyChart
	FaultBadRuleset
	FaultUnterminatedHold
)

func (k FaultKind) String() string {
	switch k {
	case FaultFramesOutOfOrder:
		return "frames out of order"
	case FaultEmptyChart:
		return "empty chart"
	case FaultBadRuleset:
		return "bad ruleset"
	case FaultUnterminatedHold:
		return "unterminated hold"
	default:
		return "unknown fault"
	}
}

// Fault wraps a FaultKind with the underlying error, if any, that
// triggered it.
type Fault struct {
	Kind FaultKind
	Err  error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("judge: %s: %v", f.Kind, f.Err)
	}
	return fmt.Sprintf("judge: %s", f.Kind)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

func newFault(kind FaultKind, err error) *Fault {
	return &Fault{Kind: kind, Err: err}
}
