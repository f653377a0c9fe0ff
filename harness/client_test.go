package harness

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/headkey/memory-test-harness/apidef"
)

func TestCheckHealthRequestsHealthEndpoint(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(
		httphelpers.HandlerWithJSONResponse(map[string]string{"status": "UP"}, nil))
	server := httptest.NewServer(handler)
	defer server.Close()

	client := NewClient(server.URL, 0, nil)
	env, err := client.CheckHealth()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, env.StatusCode)

	received := <-requests
	assert.Equal(t, "GET", received.Request.Method)
	assert.Equal(t, apidef.HealthPath, received.Request.URL.Path)
}

func TestIngestSendsExpectedBody(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(201))
	server := httptest.NewServer(handler)
	defer server.Close()

	client := NewClient(server.URL, 0, nil)
	_, err := client.Ingest(apidef.IngestRequest{
		AgentID:  "agent-1",
		Content:  "some content",
		Source:   "file",
		Metadata: map[string]interface{}{"book": "Dune"},
	})
	require.NoError(t, err)

	received := <-requests
	assert.Equal(t, "POST", received.Request.Method)
	assert.Equal(t, apidef.IngestPath, received.Request.URL.Path)
	assert.Equal(t, "application/json", received.Request.Header.Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(received.Body, &body))
	assert.Equal(t, "agent-1", body["agent_id"])
	assert.Equal(t, "some content", body["content"])
	assert.Equal(t, "file", body["source"])
	_, hasDryRun := body["dry_run"]
	assert.False(t, hasDryRun, "dry_run should be omitted for a real ingestion")
}

func TestDryRunFlagIsSentWhenSet(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	server := httptest.NewServer(handler)
	defer server.Close()

	client := NewClient(server.URL, 0, nil)
	_, err := client.Ingest(apidef.IngestRequest{AgentID: "a", Content: "c", Source: "file", DryRun: true})
	require.NoError(t, err)

	var body map[string]interface{}
	received := <-requests
	require.NoError(t, json.Unmarshal(received.Body, &body))
	assert.Equal(t, true, body["dry_run"])
}

func TestSnapshotGraphQueryFlag(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	server := httptest.NewServer(handler)
	defer server.Close()

	client := NewClient(server.URL, 0, nil)

	_, err := client.SnapshotGraph("agent-1", false)
	require.NoError(t, err)
	received := <-requests
	assert.Equal(t, "/api/v1/agents/agent-1/belief-relationships/snapshot-graph", received.Request.URL.Path)
	assert.Empty(t, received.Request.URL.Query().Get("includeInactive"))

	_, err = client.SnapshotGraph("agent-1", true)
	require.NoError(t, err)
	received = <-requests
	assert.Equal(t, "true", received.Request.URL.Query().Get("includeInactive"))
}

func TestNonSuccessStatusIsNotATransportError(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(400))
	defer server.Close()

	client := NewClient(server.URL, 0, nil)
	env, err := client.Validate(apidef.IngestRequest{AgentID: "a", Content: "c", Source: "file"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, env.StatusCode)
}

func TestTransportErrorIsReturned(t *testing.T) {
	server := httptest.NewServer(httphelpers.BrokenConnectionHandler())
	defer server.Close()

	client := NewClient(server.URL, 0, nil)
	_, err := client.CheckHealth()
	assert.Error(t, err)
}

func TestEnvelopeDecode(t *testing.T) {
	env := Envelope{StatusCode: 201, Body: []byte(`{"agent_id":"a","belief_update_result":{"new_beliefs":[{"id":"b1","statement":"s"}]}}`)}
	var resp apidef.IngestResponse
	require.NoError(t, env.Decode(&resp))
	assert.Equal(t, "a", resp.AgentID)
	require.Len(t, resp.BeliefUpdateResult.NewBeliefs, 1)
	assert.Equal(t, "b1", resp.BeliefUpdateResult.NewBeliefs[0].ID)

	empty := Envelope{StatusCode: 204}
	assert.Error(t, empty.Decode(&resp))
}

func TestEnvelopeJSONString(t *testing.T) {
	env := Envelope{Body: []byte(`{"a":1}`)}
	assert.Equal(t, "{\n  \"a\": 1\n}", env.JSONString())

	plain := Envelope{Body: []byte("not json")}
	assert.Equal(t, "not json", plain.JSONString())
}
