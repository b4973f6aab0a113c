package generator

import "codeberg.org/snonux/zhuyinaudio/internal/plan"

// Outcome is what happened to one task.
type Outcome int

const (
	// Cached means the artifact already existed and nothing was called.
	Cached Outcome = iota
	// Generated means the artifact was synthesized and written.
	Generated
	// Failed means synthesis or the write failed. No artifact exists.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Cached:
		return "cached"
	case Generated:
		return "generated"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result records the outcome of one task.
type Result struct {
	Task    plan.Task
	Outcome Outcome
	Err     error // set when Outcome is Failed
	Bytes   int   // size written when Outcome is Generated
}

// Reason is the failure text, or "" for successful tasks.
func (r Result) Reason() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Counts summarizes a batch.
type Counts struct {
	Generated int
	Cached    int
	Failed    int
	// Cancelled is the number of planned tasks never processed because the
	// batch was interrupted.
	Cancelled int
}

// Total is the number of planned tasks.
func (c Counts) Total() int {
	return c.Generated + c.Cached + c.Failed + c.Cancelled
}

// Results is the ordered list of task results of one batch.
type Results struct {
	Planned int
	Items   []Result
}

// Counts tallies the results per outcome.
func (r Results) Counts() Counts {
	var c Counts
	for _, item := range r.Items {
		switch item.Outcome {
		case Cached:
			c.Cached++
		case Generated:
			c.Generated++
		case Failed:
			c.Failed++
		}
	}
	c.Cancelled = r.Planned - len(r.Items)
	return c
}

// Failures returns the failed results in task order.
func (r Results) Failures() []Result {
	var failed []Result
	for _, item := range r.Items {
		if item.Outcome == Failed {
			failed = append(failed, item)
		}
	}
	return failed
}
