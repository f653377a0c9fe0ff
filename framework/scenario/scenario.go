// Package scenario implements a linear, partially short-circuiting sequence of
// test steps. Each step either passes, fails, or finishes with warnings; a
// failed step marked Fatal ends the run and all remaining steps are skipped.
package scenario

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/headkey/memory-test-harness/framework"
)

// Step is one stage of a scenario. Fatal controls whether a failure of this
// step aborts the rest of the run or is merely recorded.
type Step struct {
	Name  string
	Fatal bool
	Run   func(*T)
}

// Config contains options for a scenario run.
type Config struct {
	// Logger receives status information about each step. If nil, output is
	// discarded.
	Logger StepLogger
}

// T represents the scope of a single running step. It is deliberately close to
// Go's testing.T: assertion helpers report through Errorf, and FailNow
// terminates the step via a panic that the runner recovers.
type T struct {
	name        string
	logger      StepLogger
	debugLogger framework.CapturingLogger
	failed      bool
	errors      []error
	warnings    []string
}

// Run executes the steps in order and returns the aggregated results. A
// panicking step is converted into a step failure rather than crashing the
// process, so transport-level errors surfacing as panics in helper code are
// contained here.
func Run(config Config, steps []Step) Results {
	logger := config.Logger
	if logger == nil {
		logger = nullStepLogger{}
	}

	var results Results
	aborted := false
	for _, step := range steps {
		if aborted {
			logger.StepSkipped(step.Name, "aborted by earlier failure")
			results.record(StepResult{Name: step.Name, Status: StepSkipped}, step.Fatal)
			continue
		}
		logger.StepStarted(step.Name)
		result := runStep(step, logger)
		logger.StepFinished(step.Name, result, result.DebugOutput)
		results.record(result, step.Fatal)
		if step.Fatal && result.Status == StepFailed {
			aborted = true
		}
	}
	return results
}

func runStep(step Step, logger StepLogger) (result StepResult) {
	t := &T{name: step.Name, logger: logger}
	result.Name = step.Name

	func() {
		defer func() {
			if r := recover(); r != nil {
				t.failed = true
				var addError error
				if _, ok := r.(*T); ok {
					if len(t.errors) == 0 {
						addError = errors.New("step failed with no failure message")
					}
				} else {
					addError = fmt.Errorf("unexpected panic in step: %+v\n%s", r, string(debug.Stack()))
				}
				if addError != nil {
					t.errors = append(t.errors, addError)
					logger.StepError(step.Name, addError)
				}
			}
		}()
		step.Run(t)
	}()

	result.Errors = t.errors
	result.Warnings = t.warnings
	result.DebugOutput = t.debugLogger.Output()
	switch {
	case t.failed:
		result.Status = StepFailed
	case len(t.warnings) > 0:
		result.Status = StepWarned
	default:
		result.Status = StepPassed
	}
	return result
}

// Name returns the name of the current step.
func (t *T) Name() string { return t.name }

// Errorf reports a step failure without terminating the step. It satisfies
// assert.TestingT so testify-style helpers can be used inside steps.
func (t *T) Errorf(format string, args ...interface{}) {
	t.failed = true
	err := fmt.Errorf(format, args...)
	t.errors = append(t.errors, err)
	t.logger.StepError(t.name, err)
}

// FailNow terminates the step immediately and marks it failed.
func (t *T) FailNow() {
	panic(t)
}

// Warnf records a non-fatal warning for this step. A step that only warns
// still counts as successful for the run.
func (t *T) Warnf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	t.warnings = append(t.warnings, message)
	t.logger.StepWarning(t.name, message)
}

// Debug writes a message to the captured output for this step.
func (t *T) Debug(message string, args ...interface{}) {
	t.debugLogger.Printf(message, args...)
}

// DebugLogger returns a Logger whose output is captured for this step and
// shown or suppressed according to the runner's verbosity settings.
func (t *T) DebugLogger() framework.Logger {
	return &t.debugLogger
}
