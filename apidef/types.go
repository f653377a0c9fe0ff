package apidef

import (
	"github.com/headkey/memory-test-harness/framework/opt"
)

// IngestRequest is the body for both the validate and ingest endpoints. The
// ingest endpoint treats DryRun=true as a request to compute belief updates
// without persisting anything.
type IngestRequest struct {
	AgentID  string                 `json:"agent_id"`
	Content  string                 `json:"content"`
	Source   string                 `json:"source"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	DryRun   bool                   `json:"dry_run,omitempty"`
}

// IngestResponse is returned by the ingest endpoint for both dry runs (200)
// and real ingestion (201).
type IngestResponse struct {
	MemoryID           opt.Maybe[string]  `json:"memory_id"`
	AgentID            string             `json:"agent_id"`
	Status             string             `json:"status,omitempty"`
	BeliefUpdateResult BeliefUpdateResult `json:"belief_update_result"`
}

// BeliefUpdateResult describes what the belief analysis did with one piece of
// ingested content. All fields are optional on the wire; absent lists read as
// empty and absent scalars display as "N/A".
type BeliefUpdateResult struct {
	NewBeliefs           []Belief           `json:"new_beliefs,omitempty"`
	ReinforcedBeliefs    []Belief           `json:"reinforced_beliefs,omitempty"`
	WeakenedBeliefs      []Belief           `json:"weakened_beliefs,omitempty"`
	Conflicts            []Conflict         `json:"conflicts,omitempty"`
	ProcessingTimeMS     opt.Maybe[float64] `json:"processing_time_ms"`
	TotalBeliefsExamined opt.Maybe[int]     `json:"total_beliefs_examined"`
	MemoriesAnalyzed     opt.Maybe[int]     `json:"memories_analyzed"`
	OverallConfidence    opt.Maybe[float64] `json:"overall_confidence"`
	Summary              opt.Maybe[string]  `json:"summary"`
}

// Belief is a statement-confidence record. The harness treats it as opaque
// beyond the fields it displays.
type Belief struct {
	ID         string             `json:"id"`
	Statement  string             `json:"statement"`
	Confidence opt.Maybe[float64] `json:"confidence"`
	Active     opt.Maybe[bool]    `json:"active"`
}

// Conflict describes a contradiction the analysis found between beliefs.
type Conflict struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Resolved bool   `json:"resolved"`
}

// KnowledgeGraph is the snapshot-graph response: all of one agent's beliefs
// and the relationships between them, keyed by id. Unlike the ingest family,
// this resource uses camelCase property names.
type KnowledgeGraph struct {
	AgentID       string                  `json:"agentId"`
	Beliefs       map[string]GraphBelief  `json:"beliefs"`
	Relationships map[string]Relationship `json:"relationships"`
}

// GraphBelief is a belief as represented inside a knowledge-graph snapshot.
type GraphBelief struct {
	ID         string             `json:"id"`
	Statement  string             `json:"statement"`
	Confidence opt.Maybe[float64] `json:"confidence"`
	Active     opt.Maybe[bool]    `json:"active"`
}

// Relationship is a typed, weighted edge between two beliefs.
type Relationship struct {
	ID               string             `json:"id"`
	SourceBeliefID   string             `json:"sourceBeliefId"`
	TargetBeliefID   string             `json:"targetBeliefId"`
	RelationshipType string             `json:"relationshipType"`
	Strength         opt.Maybe[float64] `json:"strength"`
}
