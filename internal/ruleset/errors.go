package ruleset

import "errors"

// These are the ruleset structural-validation faults spec.md §7 lists as
// fatal.
var (
	ErrNoJudgements        = errors.New("judgements must be nonempty")
	ErrNoGrades            = errors.New("grades must be nonempty")
	ErrHealthDeltaMismatch = errors.New("health.deltas length must equal judgements length")
	ErrTimegatesUnsorted   = errors.New("timegates must be sorted ascending by time")
)
