package scenario

import (
	"fmt"
	"os"
	"strings"

	"github.com/headkey/memory-test-harness/framework"

	"github.com/fatih/color"
)

var consoleStepErrorColor = color.New(color.FgRed)                 //nolint:gochecknoglobals
var consoleStepWarningColor = color.New(color.FgYellow)            //nolint:gochecknoglobals
var consoleStepPassedColor = color.New(color.FgGreen)              //nolint:gochecknoglobals
var consoleStepSkippedColor = color.New(color.Faint, color.FgBlue) //nolint:gochecknoglobals
var consoleDebugOutputColor = color.New(color.Faint)               //nolint:gochecknoglobals

// StepLogger receives status information as a scenario run progresses.
type StepLogger interface {
	StepStarted(name string)
	StepError(name string, err error)
	StepWarning(name string, message string)
	StepFinished(name string, result StepResult, debugOutput framework.CapturedOutput)
	StepSkipped(name string, reason string)
	EndLog(results Results) error
}

type nullStepLogger struct{}

func (n nullStepLogger) StepStarted(string)                                       {}
func (n nullStepLogger) StepError(string, error)                                  {}
func (n nullStepLogger) StepWarning(string, string)                               {}
func (n nullStepLogger) StepFinished(string, StepResult, framework.CapturedOutput) {}
func (n nullStepLogger) StepSkipped(string, string)                               {}
func (n nullStepLogger) EndLog(Results) error                                     { return nil }

// ConsoleStepLogger prints step progress to standard output as the run
// proceeds, using colors to distinguish failures, warnings, and skips.
type ConsoleStepLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c ConsoleStepLogger) StepStarted(name string) {
	fmt.Printf("\n[%s]\n", name)
}

func (c ConsoleStepLogger) StepError(name string, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		_, _ = consoleStepErrorColor.Printf("  %s\n", line)
	}
}

func (c ConsoleStepLogger) StepWarning(name string, message string) {
	_, _ = consoleStepWarningColor.Printf("  WARNING: %s\n", message)
}

func (c ConsoleStepLogger) StepFinished(name string, result StepResult, debugOutput framework.CapturedOutput) {
	failed := result.Status == StepFailed
	if failed {
		_, _ = consoleStepErrorColor.Printf("  FAILED: %s\n", name)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		_, _ = consoleDebugOutputColor.Println(debugOutput.ToString("    DEBUG "))
	}
}

func (c ConsoleStepLogger) StepSkipped(name string, reason string) {
	if reason == "" {
		_, _ = consoleStepSkippedColor.Printf("\n[%s]\n  SKIPPED\n", name)
	} else {
		_, _ = consoleStepSkippedColor.Printf("\n[%s]\n  SKIPPED (%s)\n", name, reason)
	}
}

func (c ConsoleStepLogger) EndLog(results Results) error {
	fmt.Println()
	if results.OK() {
		_, _ = consoleStepPassedColor.Println("Scenario passed")
		for _, f := range results.NonFatalFailures {
			_, _ = consoleStepWarningColor.Printf("  non-fatal failure: %s\n", f.Name)
		}
	} else {
		_, _ = consoleStepErrorColor.Fprintf(os.Stderr, "SCENARIO FAILED (%d fatal step(s)):\n", len(results.Failures))
		for _, f := range results.Failures {
			_, _ = consoleStepErrorColor.Fprintf(os.Stderr, "  * %s\n", f.Name)
		}
	}
	return nil
}

// MultiStepLogger broadcasts to several loggers, for instance the console plus
// a JUnit file writer.
type MultiStepLogger struct {
	Loggers []StepLogger
}

func (m *MultiStepLogger) StepStarted(name string) {
	for _, l := range m.Loggers {
		l.StepStarted(name)
	}
}

func (m *MultiStepLogger) StepError(name string, err error) {
	for _, l := range m.Loggers {
		l.StepError(name, err)
	}
}

func (m *MultiStepLogger) StepWarning(name string, message string) {
	for _, l := range m.Loggers {
		l.StepWarning(name, message)
	}
}

func (m *MultiStepLogger) StepFinished(name string, result StepResult, debugOutput framework.CapturedOutput) {
	for _, l := range m.Loggers {
		l.StepFinished(name, result, debugOutput)
	}
}

func (m *MultiStepLogger) StepSkipped(name string, reason string) {
	for _, l := range m.Loggers {
		l.StepSkipped(name, reason)
	}
}

func (m *MultiStepLogger) EndLog(results Results) error {
	var firstErr error
	for _, l := range m.Loggers {
		if err := l.EndLog(results); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
