package scenario

import "github.com/headkey/memory-test-harness/framework"

// StepStatus is the outcome of a single step.
type StepStatus int

const (
	StepPassed StepStatus = iota
	StepWarned
	StepFailed
	StepSkipped
)

func (s StepStatus) String() string {
	switch s {
	case StepPassed:
		return "passed"
	case StepWarned:
		return "passed with warnings"
	case StepFailed:
		return "failed"
	case StepSkipped:
		return "skipped"
	}
	return "unknown"
}

type StepResult struct {
	Name        string
	Status      StepStatus
	Errors      []error
	Warnings    []string
	DebugOutput framework.CapturedOutput
}

// Results aggregates the outcome of a whole scenario run. Failures contains
// only failures of fatal steps; failures of non-fatal steps are recorded in
// NonFatalFailures and do not affect OK().
type Results struct {
	Steps            []StepResult
	Failures         []StepResult
	NonFatalFailures []StepResult
}

// OK reports whether the run as a whole succeeded, meaning no fatal step
// failed. The process exit code is derived from this.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

func (r *Results) record(result StepResult, fatal bool) {
	r.Steps = append(r.Steps, result)
	if result.Status == StepFailed {
		if fatal {
			r.Failures = append(r.Failures, result)
		} else {
			r.NonFatalFailures = append(r.NonFatalFailures, result)
		}
	}
}
