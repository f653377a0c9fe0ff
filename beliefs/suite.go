// Package beliefs contains the end-to-end scenario for the memory ingestion
// API: health check, content loading, input validation, dry-run analysis,
// ingestion, belief-graph query, statistics, and a closing summary. The
// ordering and the fatal/non-fatal classification of each step are the
// contract: a failed fatal step aborts the run, anything else is reported and
// the run moves on.
package beliefs

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/headkey/memory-test-harness/apidef"
	"github.com/headkey/memory-test-harness/config"
	"github.com/headkey/memory-test-harness/framework/scenario"
	"github.com/headkey/memory-test-harness/harness"
)

// SuiteConfig carries everything a scenario run needs. Out receives the
// human-oriented narrative (belief listings, summary); step status lines are
// the StepLogger's business.
type SuiteConfig struct {
	Profile config.RunProfile
	Client  *harness.Client
	Out     io.Writer
	Now     func() time.Time
}

// RunSuite executes the full scenario and returns its results. The process
// exit code should be 0 iff Results.OK(), which holds exactly when the health
// check and input validation both passed.
func RunSuite(cfg SuiteConfig, logger scenario.StepLogger) scenario.Results {
	return scenario.Run(scenario.Config{Logger: logger}, Steps(cfg))
}

// Steps returns the ordered step list. Exposed separately so tests can run
// the sequence under their own scenario configuration.
func Steps(cfg SuiteConfig) []scenario.Step {
	s := newSuite(cfg)
	return []scenario.Step{
		{Name: "health check", Fatal: true, Run: s.checkHealth},
		{Name: "load content", Fatal: true, Run: s.loadContent},
		{Name: "validate input", Fatal: true, Run: s.validateInput},
		{Name: "dry-run analysis", Fatal: false, Run: s.dryRunAnalysis},
		{Name: "memory ingestion", Fatal: false, Run: s.ingest},
		{Name: "query beliefs", Fatal: false, Run: s.queryBeliefs},
		{Name: "statistics", Fatal: false, Run: s.statistics},
		{Name: "summary", Fatal: false, Run: s.summarize},
	}
}

type suite struct {
	profile config.RunProfile
	client  *harness.Client
	out     io.Writer
	now     func() time.Time

	// carried between steps; the run is strictly sequential
	content      Content
	dryRunResult *apidef.IngestResponse
	ingestResult *apidef.IngestResponse
	graph        *apidef.KnowledgeGraph
}

func newSuite(cfg SuiteConfig) *suite {
	s := &suite{
		profile: cfg.Profile,
		client:  cfg.Client,
		out:     cfg.Out,
		now:     cfg.Now,
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *suite) checkHealth(t *scenario.T) {
	s.client.SetLogger(t.DebugLogger())
	env, err := s.client.CheckHealth()
	if err != nil {
		t.Errorf("server is not reachable at %s: %s", s.client.BaseURL(), err)
		t.FailNow()
	}
	if env.StatusCode != http.StatusOK {
		t.Errorf("server health check failed with status %d", env.StatusCode)
		t.FailNow()
	}
	fmt.Fprintln(s.out, "Server is running")
}

func (s *suite) loadContent(t *scenario.T) {
	content, err := LoadContent(s.profile.InputFile, s.profile.MaxContentLength)
	if err != nil {
		t.Errorf("%s", err)
		t.FailNow()
	}
	s.content = content
	if content.Truncated {
		t.Warnf("content truncated from %d to %d characters due to the configured ceiling",
			content.OriginalLength, content.Length())
	}
	fmt.Fprintf(s.out, "Content loaded from %s (%d characters)\n", s.profile.InputFile, content.Length())
}

func (s *suite) validateInput(t *scenario.T) {
	s.client.SetLogger(t.DebugLogger())
	env, err := s.client.Validate(s.ingestRequest(false, nil))
	if err != nil {
		t.Errorf("validation request failed: %s", err)
		t.FailNow()
	}
	switch env.StatusCode {
	case http.StatusOK:
		fmt.Fprintln(s.out, "Input validation passed")
	case http.StatusBadRequest:
		t.Errorf("input validation rejected the content (status 400) - check content length and format")
		t.FailNow()
	default:
		t.Errorf("input validation failed with status %d", env.StatusCode)
		t.FailNow()
	}
}

func (s *suite) dryRunAnalysis(t *scenario.T) {
	s.client.SetLogger(t.DebugLogger())
	req := s.ingestRequest(true, map[string]interface{}{"test_run": true})
	env, err := s.client.Ingest(req)
	if err != nil {
		t.Errorf("dry run request failed: %s", err)
		return
	}
	if env.StatusCode != http.StatusOK {
		t.Errorf("dry run failed with status %d", env.StatusCode)
		return
	}
	var resp apidef.IngestResponse
	if err := env.Decode(&resp); err != nil {
		t.Errorf("cannot parse dry run response: %s", err)
		return
	}
	s.dryRunResult = &resp
	displayAnalysis(s.out, resp.BeliefUpdateResult, "Dry Run")
}

func (s *suite) ingest(t *scenario.T) {
	s.client.SetLogger(t.DebugLogger())
	req := s.ingestRequest(false, map[string]interface{}{
		"importance": "high",
		"tags":       []string{"dune", "science_fiction", "literature", "chapter_1"},
		"test_run":   true,
	})
	env, err := s.client.Ingest(req)
	if err != nil {
		t.Errorf("ingestion request failed: %s", err)
		return
	}
	if env.StatusCode != http.StatusCreated {
		t.Errorf("memory ingestion failed with status %d", env.StatusCode)
		return
	}
	var resp apidef.IngestResponse
	if err := env.Decode(&resp); err != nil {
		t.Errorf("cannot parse ingestion response: %s", err)
		return
	}
	s.ingestResult = &resp
	displayAnalysis(s.out, resp.BeliefUpdateResult, "Ingestion")
}

func (s *suite) queryBeliefs(t *scenario.T) {
	s.client.SetLogger(t.DebugLogger())
	env, err := s.client.SnapshotGraph(s.profile.AgentID, s.profile.IncludeInactive)
	if err != nil {
		t.Warnf("knowledge graph snapshot endpoint not available or accessible: %s", err)
		return
	}
	if env.StatusCode != http.StatusOK {
		t.Warnf("knowledge graph snapshot endpoint not available or accessible (status %d)", env.StatusCode)
		return
	}
	var graph apidef.KnowledgeGraph
	if err := env.Decode(&graph); err != nil {
		t.Warnf("cannot parse knowledge graph snapshot: %s", err)
		return
	}
	s.graph = &graph
	displayKnowledgeGraph(s.out, graph)
}

func (s *suite) statistics(t *scenario.T) {
	s.client.SetLogger(t.DebugLogger())
	env, err := s.client.Statistics()
	if err != nil {
		t.Errorf("statistics request failed: %s", err)
		return
	}
	if env.StatusCode != http.StatusOK {
		t.Errorf("failed to retrieve statistics (status %d)", env.StatusCode)
		return
	}
	fmt.Fprintf(s.out, "System statistics:\n%s\n", env.JSONString())
}

func (s *suite) summarize(t *scenario.T) {
	displaySummary(s.out, summaryData{
		AgentID:       s.profile.AgentID,
		ContentSource: s.profile.InputFile,
		ContentLength: s.content.Length(),
		Timestamp:     s.now(),
		IngestResult:  s.ingestResult,
		Graph:         s.graph,
	})
}

// ingestRequest builds the request body shared by the validate and ingest
// endpoints. extraMetadata is layered over the profile's metadata without
// mutating it.
func (s *suite) ingestRequest(dryRun bool, extraMetadata map[string]interface{}) apidef.IngestRequest {
	metadata := make(map[string]interface{}, len(s.profile.Metadata)+len(extraMetadata))
	for k, v := range s.profile.Metadata {
		metadata[k] = v
	}
	for k, v := range extraMetadata {
		metadata[k] = v
	}
	return apidef.IngestRequest{
		AgentID:  s.profile.AgentID,
		Content:  s.content.Text,
		Source:   s.profile.Source,
		Metadata: metadata,
		DryRun:   dryRun,
	}
}
