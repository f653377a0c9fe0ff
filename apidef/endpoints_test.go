package apidef

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotGraphPath(t *testing.T) {
	assert.Equal(t,
		"/api/v1/agents/agent-1/belief-relationships/snapshot-graph",
		SnapshotGraphPath("agent-1", false))
	assert.Equal(t,
		"/api/v1/agents/agent-1/belief-relationships/snapshot-graph?includeInactive=true",
		SnapshotGraphPath("agent-1", true))
}

func TestDeprecatedGraphPaths(t *testing.T) {
	assert.Equal(t,
		"/api/v1/agents/a/belief-relationships/knowledge-graph",
		KnowledgeGraphPath("a"))
	assert.Equal(t,
		"/api/v1/agents/a/belief-relationships/active-knowledge-graph",
		ActiveKnowledgeGraphPath("a"))
}
