// Package apidef defines the HTTP endpoints and JSON wire types of the memory
// ingestion API that the harness drives. The belief-analysis engine behind
// these endpoints is an external collaborator; only its wire contract is
// modeled here.
package apidef

import "fmt"

const (
	MemoryBasePath = "/api/v1/memory"

	HealthPath     = MemoryBasePath + "/health"
	ValidatePath   = MemoryBasePath + "/validate"
	IngestPath     = MemoryBasePath + "/ingest"
	StatisticsPath = MemoryBasePath + "/statistics"
)

// SnapshotGraphPath returns the path of the knowledge-graph snapshot resource
// for one agent. This is the preferred belief query endpoint; the service also
// exposes the deprecated variants below.
func SnapshotGraphPath(agentID string, includeInactive bool) string {
	path := fmt.Sprintf("/api/v1/agents/%s/belief-relationships/snapshot-graph", agentID)
	if includeInactive {
		path += "?includeInactive=true"
	}
	return path
}

// KnowledgeGraphPath returns the deprecated full-graph endpoint, kept for
// rehearsing against older service versions.
func KnowledgeGraphPath(agentID string) string {
	return fmt.Sprintf("/api/v1/agents/%s/belief-relationships/knowledge-graph", agentID)
}

// ActiveKnowledgeGraphPath returns the deprecated active-only graph endpoint.
func ActiveKnowledgeGraphPath(agentID string) string {
	return fmt.Sprintf("/api/v1/agents/%s/belief-relationships/active-knowledge-graph", agentID)
}
