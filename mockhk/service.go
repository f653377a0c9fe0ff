// Package mockhk is an in-process simulation of the memory ingestion API,
// used to test the harness itself and to rehearse scenario runs without a real
// deployment. Its belief "analysis" is deterministic: it promotes the leading
// sentences of the ingested content to belief statements.
package mockhk

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/headkey/memory-test-harness/apidef"
	"github.com/headkey/memory-test-harness/framework"
	"github.com/headkey/memory-test-harness/framework/opt"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const defaultValidationMaxLength = 10000
const maxBeliefsPerIngest = 3

// Service is a mock memory service. The zero value is not usable; create one
// with NewService.
type Service struct {
	validationMaxLength int
	graphAvailable      bool
	statisticsAvailable bool
	healthy             bool
	cannedConflicts     []apidef.Conflict

	handler http.Handler
	logger  framework.Logger

	beliefs       map[string]apidef.GraphBelief
	relationships map[string]apidef.Relationship
	agents        map[string]bool
	totalMemories int
	lock          sync.Mutex
}

type ServiceOption func(*Service)

// WithValidationMaxLength sets the content length above which the validate
// and ingest endpoints reject the request with a 400.
func WithValidationMaxLength(n int) ServiceOption {
	return func(s *Service) { s.validationMaxLength = n }
}

// WithoutSnapshotGraph makes the snapshot-graph endpoint respond 404, as an
// older service without the belief-relationships resource would.
func WithoutSnapshotGraph() ServiceOption {
	return func(s *Service) { s.graphAvailable = false }
}

// WithoutStatistics makes the statistics endpoint respond 500.
func WithoutStatistics() ServiceOption {
	return func(s *Service) { s.statisticsAvailable = false }
}

// Unhealthy makes the health endpoint respond 503.
func Unhealthy() ServiceOption {
	return func(s *Service) { s.healthy = false }
}

// WithConflicts makes every analysis report the given conflicts.
func WithConflicts(conflicts ...apidef.Conflict) ServiceOption {
	return func(s *Service) { s.cannedConflicts = conflicts }
}

func NewService(logger framework.Logger, options ...ServiceOption) *Service {
	if logger == nil {
		logger = framework.NullLogger()
	}
	s := &Service{
		validationMaxLength: defaultValidationMaxLength,
		graphAvailable:      true,
		statisticsAvailable: true,
		healthy:             true,
		logger:              logger,
		beliefs:             make(map[string]apidef.GraphBelief),
		relationships:       make(map[string]apidef.Relationship),
		agents:              make(map[string]bool),
	}
	for _, o := range options {
		o(s)
	}

	router := mux.NewRouter()
	router.HandleFunc(apidef.HealthPath, s.serveHealth).Methods("GET")
	router.HandleFunc(apidef.ValidatePath, s.serveValidate).Methods("POST")
	router.HandleFunc(apidef.IngestPath, s.serveIngest).Methods("POST")
	router.HandleFunc(apidef.StatisticsPath, s.serveStatistics).Methods("GET")
	router.HandleFunc("/api/v1/agents/{agentId}/belief-relationships/snapshot-graph",
		s.serveSnapshotGraph).Methods("GET")
	s.handler = router
	return s
}

func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.logger.Printf("mock service received %s %s", r.Method, r.URL)
	s.handler.ServeHTTP(w, r)
}

func (s *Service) serveHealth(w http.ResponseWriter, r *http.Request) {
	if !s.healthy {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{"status": "DOWN"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "UP",
		"checks": []map[string]interface{}{
			{"name": "memory-system", "status": "UP"},
		},
	})
}

func (s *Service) serveValidate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeIngestRequest(w, r)
	if !ok {
		return
	}
	if problems := s.validationProblems(req); len(problems) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"valid":  false,
			"errors": problems,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"valid": true})
}

func (s *Service) serveIngest(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeIngestRequest(w, r)
	if !ok {
		return
	}
	if problems := s.validationProblems(req); len(problems) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"valid":  false,
			"errors": problems,
		})
		return
	}

	result := s.analyze(req.Content)

	if req.DryRun {
		writeJSON(w, http.StatusOK, apidef.IngestResponse{
			AgentID:            req.AgentID,
			Status:             "dry_run_complete",
			BeliefUpdateResult: result,
		})
		return
	}

	s.lock.Lock()
	s.agents[req.AgentID] = true
	s.totalMemories++
	var prevID string
	for _, b := range result.NewBeliefs {
		s.beliefs[b.ID] = apidef.GraphBelief{
			ID:         b.ID,
			Statement:  b.Statement,
			Confidence: b.Confidence,
			Active:     opt.Some(true),
		}
		if prevID != "" {
			relID := uuid.NewString()
			s.relationships[relID] = apidef.Relationship{
				ID:               relID,
				SourceBeliefID:   prevID,
				TargetBeliefID:   b.ID,
				RelationshipType: "SUPPORTS",
				Strength:         opt.Some(0.8),
			}
		}
		prevID = b.ID
	}
	s.lock.Unlock()

	writeJSON(w, http.StatusCreated, apidef.IngestResponse{
		MemoryID:           opt.Some(uuid.NewString()),
		AgentID:            req.AgentID,
		Status:             "ingested",
		BeliefUpdateResult: result,
	})
}

func (s *Service) serveSnapshotGraph(w http.ResponseWriter, r *http.Request) {
	if !s.graphAvailable {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	agentID := mux.Vars(r)["agentId"]
	includeInactive := r.URL.Query().Get("includeInactive") == "true"

	graph := apidef.KnowledgeGraph{
		AgentID:       agentID,
		Beliefs:       make(map[string]apidef.GraphBelief),
		Relationships: make(map[string]apidef.Relationship),
	}
	s.lock.Lock()
	for id, b := range s.beliefs {
		if !includeInactive && !b.Active.OrElse(true) {
			continue
		}
		graph.Beliefs[id] = b
	}
	for id, rel := range s.relationships {
		graph.Relationships[id] = rel
	}
	s.lock.Unlock()

	writeJSON(w, http.StatusOK, graph)
}

func (s *Service) serveStatistics(w http.ResponseWriter, r *http.Request) {
	if !s.statisticsAvailable {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error": "statistics backend unavailable",
		})
		return
	}
	s.lock.Lock()
	stats := map[string]interface{}{
		"total_memories": s.totalMemories,
		"total_agents":   len(s.agents),
		"total_beliefs":  len(s.beliefs),
	}
	s.lock.Unlock()
	writeJSON(w, http.StatusOK, stats)
}

// DeactivateBelief marks a stored belief inactive, so tests can exercise the
// includeInactive query flag.
func (s *Service) DeactivateBelief(id string) {
	s.lock.Lock()
	if b, ok := s.beliefs[id]; ok {
		b.Active = opt.Some(false)
		s.beliefs[id] = b
	}
	s.lock.Unlock()
}

// BeliefCount returns the number of beliefs currently in the graph.
func (s *Service) BeliefCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.beliefs)
}

// MemoryCount returns the number of non-dry-run ingestions performed.
func (s *Service) MemoryCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.totalMemories
}

func (s *Service) decodeIngestRequest(w http.ResponseWriter, r *http.Request) (apidef.IngestRequest, bool) {
	var req apidef.IngestRequest
	body, err := io.ReadAll(r.Body)
	if err == nil {
		err = json.Unmarshal(body, &req)
	}
	if err != nil {
		s.logger.Printf("mock service could not parse request body: %s", err)
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "malformed request body"})
		return apidef.IngestRequest{}, false
	}
	return req, true
}

func (s *Service) validationProblems(req apidef.IngestRequest) []string {
	var problems []string
	if req.AgentID == "" {
		problems = append(problems, "agent_id is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		problems = append(problems, "content must not be empty")
	}
	if len(req.Content) > s.validationMaxLength {
		problems = append(problems, fmt.Sprintf("content exceeds maximum length of %d characters",
			s.validationMaxLength))
	}
	return problems
}

func (s *Service) analyze(content string) apidef.BeliefUpdateResult {
	statements := leadingSentences(content, maxBeliefsPerIngest)
	result := apidef.BeliefUpdateResult{
		Conflicts:            s.cannedConflicts,
		ProcessingTimeMS:     opt.Some(1.0),
		TotalBeliefsExamined: opt.Some(len(statements)),
		MemoriesAnalyzed:     opt.Some(1),
		OverallConfidence:    opt.Some(0.75),
		Summary:              opt.Some(fmt.Sprintf("extracted %d beliefs", len(statements))),
	}
	for _, statement := range statements {
		result.NewBeliefs = append(result.NewBeliefs, apidef.Belief{
			ID:         uuid.NewString(),
			Statement:  statement,
			Confidence: opt.Some(0.75),
			Active:     opt.Some(true),
		})
	}
	return result
}

func leadingSentences(content string, max int) []string {
	var sentences []string
	for _, part := range strings.SplitAfter(content, ".") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		sentences = append(sentences, trimmed)
		if len(sentences) == max {
			break
		}
	}
	return sentences
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	data, _ := json.Marshal(body)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
