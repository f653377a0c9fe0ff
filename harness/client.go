// Package harness provides the HTTP client used to drive the memory service
// under test. It deliberately performs no retries and, by default, sets no
// per-request timeout: a hung service hangs the run, and any external deadline
// is the caller's responsibility.
package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/headkey/memory-test-harness/apidef"
	"github.com/headkey/memory-test-harness/framework"
)

// Envelope carries one response from the service under test. Status
// interpretation (which codes count as success for which step) belongs to the
// scenario steps, not to the client; only transport-level failures are
// returned as errors.
type Envelope struct {
	StatusCode int
	Body       []byte
}

// Decode unmarshals the response body into out.
func (e Envelope) Decode(out interface{}) error {
	if len(e.Body) == 0 {
		return fmt.Errorf("expected a response body but got none")
	}
	return json.Unmarshal(e.Body, out)
}

// JSONString returns the body pretty-printed if it is JSON, or the raw text
// otherwise.
func (e Envelope) JSONString() string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, e.Body, "", "  "); err != nil {
		return string(e.Body)
	}
	return buf.String()
}

// Client talks to one memory service instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     framework.Logger
}

// NewClient creates a Client for the given base URL. A timeout of zero means
// requests block until the server responds or the connection fails.
func NewClient(baseURL string, timeout time.Duration, logger framework.Logger) *Client {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// SetLogger redirects the client's request/response logging, so each scenario
// step can capture the traffic it caused.
func (c *Client) SetLogger(logger framework.Logger) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	c.logger = logger
}

// CheckHealth queries the health endpoint.
func (c *Client) CheckHealth() (Envelope, error) {
	return c.doRequest("GET", apidef.HealthPath, nil)
}

// Validate submits the content for validation without ingesting it.
func (c *Client) Validate(req apidef.IngestRequest) (Envelope, error) {
	return c.doRequest("POST", apidef.ValidatePath, req)
}

// Ingest submits the content for ingestion. With req.DryRun set, the service
// computes belief updates but persists nothing and responds 200; a real
// ingestion responds 201.
func (c *Client) Ingest(req apidef.IngestRequest) (Envelope, error) {
	return c.doRequest("POST", apidef.IngestPath, req)
}

// SnapshotGraph fetches the knowledge-graph snapshot for an agent.
func (c *Client) SnapshotGraph(agentID string, includeInactive bool) (Envelope, error) {
	return c.doRequest("GET", apidef.SnapshotGraphPath(agentID, includeInactive), nil)
}

// Statistics fetches the service-wide ingestion statistics.
func (c *Client) Statistics() (Envelope, error) {
	return c.doRequest("GET", apidef.StatisticsPath, nil)
}

func (c *Client) doRequest(method, path string, body interface{}) (Envelope, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return Envelope{}, err
		}
		bodyReader = bytes.NewBuffer(data)
	}
	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return Envelope{}, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Printf("%s %s", method, path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Envelope{}, fmt.Errorf("request to %s failed: %w", c.baseURL+path, err)
	}
	var respBody []byte
	if resp.Body != nil {
		respBody, _ = io.ReadAll(resp.Body)
		_ = resp.Body.Close()
	}

	env := Envelope{StatusCode: resp.StatusCode, Body: respBody}
	if len(respBody) > 0 {
		c.logger.Printf("response %d:\n%s", resp.StatusCode, env.JSONString())
	} else {
		c.logger.Printf("response %d (no body)", resp.StatusCode)
	}
	return env, nil
}
