// Package config defines the run profile for a scenario: where the service
// is, which agent to ingest under, what content to send, and the request
// metadata attached to it. A profile can be loaded from a YAML file and is
// immutable for the duration of a run.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultMaxContentLength is the content truncation ceiling. The service's
// own validation limit is configured server-side; this ceiling is a client
// constant and is never inferred from observed server behavior.
const DefaultMaxContentLength = 9800

type RunProfile struct {
	BaseURL          string                 `yaml:"baseUrl"`
	AgentID          string                 `yaml:"agentId"`
	InputFile        string                 `yaml:"inputFile"`
	Source           string                 `yaml:"source"`
	MaxContentLength int                    `yaml:"maxContentLength"`
	IncludeInactive  bool                   `yaml:"includeInactive"`
	Metadata         map[string]interface{} `yaml:"metadata"`
}

// Default returns the built-in profile, which drives a local service with the
// Dune chapter 1 sample document.
func Default() RunProfile {
	return RunProfile{
		BaseURL:          "http://localhost:8080",
		AgentID:          "test-agent-dune-ch1",
		InputFile:        "data/input/dune-ch1.md",
		Source:           "file",
		MaxContentLength: DefaultMaxContentLength,
		Metadata: map[string]interface{}{
			"file_name":    "dune-ch1.md",
			"content_type": "literary_text",
			"chapter":      "1",
			"book":         "Dune",
			"author":       "Frank Herbert",
		},
	}
}

// LoadFile reads a YAML profile, layered over the defaults: fields omitted
// from the file keep their default values.
func LoadFile(path string) (RunProfile, error) {
	profile := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("cannot read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return profile, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}
	if profile.MaxContentLength <= 0 {
		return profile, fmt.Errorf("maxContentLength must be positive in %s", path)
	}
	return profile, nil
}
