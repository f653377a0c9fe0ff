package beliefs

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/headkey/memory-test-harness/apidef"
	"github.com/headkey/memory-test-harness/framework/opt"
)

func TestSummaryCountsComeFromResultLists(t *testing.T) {
	resp := &apidef.IngestResponse{
		MemoryID: opt.Some("mem-1"),
		BeliefUpdateResult: apidef.BeliefUpdateResult{
			NewBeliefs: []apidef.Belief{
				{ID: "a", Statement: "statement a"},
				{ID: "b", Statement: "statement b"},
			},
			Conflicts: []apidef.Conflict{},
		},
	}

	var buf bytes.Buffer
	displaySummary(&buf, summaryData{
		AgentID:       "agent-1",
		ContentSource: "input.md",
		ContentLength: 42,
		Timestamp:     time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
		IngestResult:  resp,
	})

	out := buf.String()
	assert.Contains(t, out, "New Beliefs Created: 2")
	assert.Contains(t, out, "Beliefs Reinforced: 0")
	assert.Contains(t, out, "Beliefs Weakened: 0")
	assert.Contains(t, out, "Conflicts Detected: 0")
	assert.Contains(t, out, "Memory ID: mem-1")
	assert.Contains(t, out, "Content Length: 42 characters")
}

func TestSummaryWithoutIngestResultOmitsAnalysisSection(t *testing.T) {
	var buf bytes.Buffer
	displaySummary(&buf, summaryData{AgentID: "agent-1", Timestamp: time.Now()})
	assert.NotContains(t, buf.String(), "New Beliefs Created")
}

func TestSummarySubstitutesNAForAbsentMemoryID(t *testing.T) {
	var buf bytes.Buffer
	displaySummary(&buf, summaryData{
		AgentID:      "agent-1",
		Timestamp:    time.Now(),
		IngestResult: &apidef.IngestResponse{},
	})
	assert.Contains(t, buf.String(), "Memory ID: N/A")
}

func TestDisplayAnalysisSubstitutesNAForAbsentStatistics(t *testing.T) {
	var buf bytes.Buffer
	displayAnalysis(&buf, apidef.BeliefUpdateResult{}, "Dry Run")

	out := buf.String()
	assert.Contains(t, out, "Dry Run Belief Analysis Results")
	assert.Contains(t, out, "Processing Time: N/Ams")
	assert.Contains(t, out, "Total Beliefs Examined: N/A")
	assert.Contains(t, out, "Summary: No summary available")
	assert.Contains(t, out, "New Beliefs: 0 beliefs")
}

func TestDisplayKnowledgeGraphShowsActiveStatus(t *testing.T) {
	graph := apidef.KnowledgeGraph{
		AgentID: "agent-1",
		Beliefs: map[string]apidef.GraphBelief{
			"b1": {ID: "b1", Statement: "active one", Active: opt.Some(true)},
			"b2": {ID: "b2", Statement: "inactive one", Active: opt.Some(false)},
			"b3": {ID: "b3", Statement: "default is active"},
		},
		Relationships: map[string]apidef.Relationship{
			"r1": {ID: "r1", SourceBeliefID: "b1", TargetBeliefID: "b2", RelationshipType: "SUPPORTS"},
		},
	}

	var buf bytes.Buffer
	displayKnowledgeGraph(&buf, graph)

	out := buf.String()
	assert.Contains(t, out, "Knowledge Graph: 3 beliefs")
	assert.Contains(t, out, "inactive one | Confidence: N/A | Status: Inactive")
	assert.Contains(t, out, "default is active | Confidence: N/A | Status: Active")
	assert.Contains(t, out, "Relationships: 1")
}
