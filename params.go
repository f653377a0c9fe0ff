package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/headkey/memory-test-harness/config"
)

type commandParams struct {
	baseURL         string
	agentID         string
	inputFile       string
	configFile      string
	jUnitFile       string
	timeoutSeconds  int
	includeInactive bool
	verbose         bool

	flagsSet map[string]bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	defaults := config.Default()
	fs.StringVar(&c.baseURL, "base-url", defaults.BaseURL, "base URL of the memory service")
	fs.StringVar(&c.agentID, "agent-id", defaults.AgentID, "agent ID to ingest under")
	fs.StringVar(&c.inputFile, "input-file", defaults.InputFile, "path of the content file to ingest")
	fs.StringVar(&c.configFile, "config", "", "optional YAML run profile")
	fs.StringVar(&c.jUnitFile, "junit", "", "write JUnit XML output to the specified path")
	fs.IntVar(&c.timeoutSeconds, "timeout", 0, "per-request timeout in seconds (0 = no timeout)")
	fs.BoolVar(&c.includeInactive, "include-inactive", false, "include inactive beliefs in the graph query")
	fs.BoolVar(&c.verbose, "verbose", false, "show request/response detail for every step")
	fs.BoolVar(&c.verbose, "v", false, "alias for -verbose")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	c.flagsSet = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { c.flagsSet[f.Name] = true })
	return true
}

// buildProfile layers the parts of a run profile: built-in defaults, then the
// YAML file if given, then any flags the user set explicitly.
func (c *commandParams) buildProfile() (config.RunProfile, error) {
	profile := config.Default()
	if c.configFile != "" {
		loaded, err := config.LoadFile(c.configFile)
		if err != nil {
			return profile, err
		}
		profile = loaded
	}
	if c.flagsSet["base-url"] {
		profile.BaseURL = c.baseURL
	}
	if c.flagsSet["agent-id"] {
		profile.AgentID = c.agentID
	}
	if c.flagsSet["input-file"] {
		profile.InputFile = c.inputFile
	}
	if c.flagsSet["include-inactive"] {
		profile.IncludeInactive = c.includeInactive
	}
	return profile, nil
}
