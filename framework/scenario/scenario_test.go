package scenario

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(t *T) {}

func TestAllStepsPass(t *testing.T) {
	var order []string
	record := func(name string) func(*T) {
		return func(*T) { order = append(order, name) }
	}
	results := Run(Config{}, []Step{
		{Name: "a", Fatal: true, Run: record("a")},
		{Name: "b", Fatal: false, Run: record("b")},
		{Name: "c", Fatal: false, Run: record("c")},
	})

	assert.True(t, results.OK())
	assert.Equal(t, []string{"a", "b", "c"}, order)
	require.Len(t, results.Steps, 3)
	for _, s := range results.Steps {
		assert.Equal(t, StepPassed, s.Status)
	}
}

func TestFatalStepFailureSkipsRemainingSteps(t *testing.T) {
	ran := make(map[string]bool)
	results := Run(Config{}, []Step{
		{Name: "a", Fatal: true, Run: func(t *T) {
			ran["a"] = true
			t.Errorf("boom")
			t.FailNow()
		}},
		{Name: "b", Fatal: false, Run: func(*T) { ran["b"] = true }},
		{Name: "c", Fatal: true, Run: func(*T) { ran["c"] = true }},
	})

	assert.False(t, results.OK())
	assert.True(t, ran["a"])
	assert.False(t, ran["b"])
	assert.False(t, ran["c"])
	require.Len(t, results.Steps, 3)
	assert.Equal(t, StepFailed, results.Steps[0].Status)
	assert.Equal(t, StepSkipped, results.Steps[1].Status)
	assert.Equal(t, StepSkipped, results.Steps[2].Status)
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "a", results.Failures[0].Name)
}

func TestNonFatalStepFailureContinuesAndRunStillOK(t *testing.T) {
	ran := make(map[string]bool)
	results := Run(Config{}, []Step{
		{Name: "a", Fatal: true, Run: func(*T) { ran["a"] = true }},
		{Name: "b", Fatal: false, Run: func(t *T) {
			ran["b"] = true
			t.Errorf("non-fatal problem")
		}},
		{Name: "c", Fatal: false, Run: func(*T) { ran["c"] = true }},
	})

	assert.True(t, results.OK())
	assert.True(t, ran["c"])
	require.Len(t, results.NonFatalFailures, 1)
	assert.Equal(t, "b", results.NonFatalFailures[0].Name)
	assert.Empty(t, results.Failures)
}

func TestErrorfWithoutFailNowStillFailsStep(t *testing.T) {
	results := Run(Config{}, []Step{
		{Name: "a", Fatal: true, Run: func(t *T) { t.Errorf("oops") }},
		{Name: "b", Fatal: false, Run: noop},
	})

	assert.False(t, results.OK())
	assert.Equal(t, StepFailed, results.Steps[0].Status)
	assert.Equal(t, StepSkipped, results.Steps[1].Status)
}

func TestWarningsDoNotFailStep(t *testing.T) {
	results := Run(Config{}, []Step{
		{Name: "a", Fatal: true, Run: func(t *T) { t.Warnf("heads up: %d", 1) }},
		{Name: "b", Fatal: false, Run: noop},
	})

	assert.True(t, results.OK())
	assert.Equal(t, StepWarned, results.Steps[0].Status)
	assert.Equal(t, []string{"heads up: 1"}, results.Steps[0].Warnings)
	assert.Equal(t, StepPassed, results.Steps[1].Status)
}

func TestUnexpectedPanicBecomesStepFailure(t *testing.T) {
	results := Run(Config{}, []Step{
		{Name: "a", Fatal: false, Run: func(*T) { panic(errors.New("transport blew up")) }},
		{Name: "b", Fatal: false, Run: noop},
	})

	assert.True(t, results.OK()) // non-fatal step, run continues
	require.Len(t, results.NonFatalFailures, 1)
	require.Len(t, results.NonFatalFailures[0].Errors, 1)
	assert.Contains(t, results.NonFatalFailures[0].Errors[0].Error(), "transport blew up")
	assert.Equal(t, StepPassed, results.Steps[1].Status)
}

func TestFailNowWithoutMessageAddsGenericError(t *testing.T) {
	results := Run(Config{}, []Step{
		{Name: "a", Fatal: true, Run: func(t *T) { t.FailNow() }},
	})

	require.Len(t, results.Failures, 1)
	require.Len(t, results.Failures[0].Errors, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "no failure message")
}

func TestDebugOutputIsCapturedPerStep(t *testing.T) {
	results := Run(Config{}, []Step{
		{Name: "a", Fatal: false, Run: func(t *T) { t.Debug("sent %d bytes", 42) }},
	})

	require.Len(t, results.Steps[0].DebugOutput, 1)
	assert.Equal(t, "sent 42 bytes", results.Steps[0].DebugOutput[0].Message)
}
