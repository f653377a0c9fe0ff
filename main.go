// Command memory-test-harness runs an end-to-end scenario against a memory
// ingestion service: health check, input validation, dry-run belief analysis,
// ingestion, belief-graph query, and statistics, in that order. It exits 0
// iff the health check and input validation both passed.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/headkey/memory-test-harness/beliefs"
	"github.com/headkey/memory-test-harness/framework"
	"github.com/headkey/memory-test-harness/framework/scenario"
	"github.com/headkey/memory-test-harness/harness"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupted
		_, _ = color.New(color.FgYellow).Fprintln(os.Stderr, "\nTest interrupted by user")
		os.Exit(1)
	}()

	ok, err := run(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		os.Exit(1)
	}
}

func run(params commandParams) (bool, error) {
	profile, err := params.buildProfile()
	if err != nil {
		return false, err
	}

	fmt.Printf("Memory ingestion end-to-end test\n")
	fmt.Printf("  Base URL:   %s\n", profile.BaseURL)
	fmt.Printf("  Agent ID:   %s\n", profile.AgentID)
	fmt.Printf("  Input file: %s\n", profile.InputFile)

	client := harness.NewClient(profile.BaseURL,
		time.Duration(params.timeoutSeconds)*time.Second, framework.NullLogger())

	consoleLogger := scenario.ConsoleStepLogger{
		DebugOutputOnFailure: true,
		DebugOutputOnSuccess: params.verbose,
	}
	var stepLogger scenario.StepLogger = consoleLogger
	if params.jUnitFile != "" {
		stepLogger = &scenario.MultiStepLogger{Loggers: []scenario.StepLogger{
			consoleLogger,
			scenario.NewJUnitStepLogger(params.jUnitFile, "memory ingestion e2e"),
		}}
	}

	results := beliefs.RunSuite(beliefs.SuiteConfig{
		Profile: profile,
		Client:  client,
		Out:     os.Stdout,
	}, stepLogger)

	if err := stepLogger.EndLog(results); err != nil {
		return false, fmt.Errorf("error writing log: %v", err)
	}
	return results.OK(), nil
}
