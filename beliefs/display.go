package beliefs

import (
	"fmt"
	"io"
	"time"

	"github.com/headkey/memory-test-harness/apidef"
)

// Presentation of already-known values. Nothing here talks to the network or
// affects the outcome of a run.

func displayBeliefs(out io.Writer, beliefs []apidef.Belief, label string) {
	fmt.Fprintf(out, "   %s: %d beliefs\n", label, len(beliefs))
	for _, b := range beliefs {
		fmt.Fprintf(out, "      * ID: %s | Statement: %s | Confidence: %s\n",
			orNA(b.ID), orNA(b.Statement), b.Confidence.FormatOr("N/A"))
	}
}

func displayConflicts(out io.Writer, conflicts []apidef.Conflict) {
	fmt.Fprintf(out, "   Conflicts Detected: %d\n", len(conflicts))
	for _, c := range conflicts {
		fmt.Fprintf(out, "      * Type: %s | Severity: %s | Resolved: %v\n",
			orNA(c.Type), orNA(c.Severity), c.Resolved)
	}
}

func displayAnalysis(out io.Writer, result apidef.BeliefUpdateResult, resultType string) {
	fmt.Fprintf(out, "\n%s Belief Analysis Results:\n", resultType)
	displayBeliefs(out, result.NewBeliefs, "New Beliefs")
	displayBeliefs(out, result.ReinforcedBeliefs, "Reinforced Beliefs")
	displayBeliefs(out, result.WeakenedBeliefs, "Weakened Beliefs")
	displayConflicts(out, result.Conflicts)

	fmt.Fprintf(out, "\n   Analysis Statistics:\n")
	fmt.Fprintf(out, "      * Processing Time: %sms\n", result.ProcessingTimeMS.FormatOr("N/A"))
	fmt.Fprintf(out, "      * Total Beliefs Examined: %s\n", result.TotalBeliefsExamined.FormatOr("N/A"))
	fmt.Fprintf(out, "      * Memories Analyzed: %s\n", result.MemoriesAnalyzed.FormatOr("N/A"))
	fmt.Fprintf(out, "      * Overall Confidence: %s\n", result.OverallConfidence.FormatOr("N/A"))
	fmt.Fprintf(out, "\n   Summary: %s\n", result.Summary.OrElse("No summary available"))
}

func displayKnowledgeGraph(out io.Writer, graph apidef.KnowledgeGraph) {
	fmt.Fprintf(out, "   Knowledge Graph: %d beliefs\n", len(graph.Beliefs))
	for id, b := range graph.Beliefs {
		status := "Active"
		if !b.Active.OrElse(true) {
			status = "Inactive"
		}
		fmt.Fprintf(out, "      * ID: %s | Statement: %s | Confidence: %s | Status: %s\n",
			id, orNA(b.Statement), b.Confidence.FormatOr("N/A"), status)
	}
	if len(graph.Relationships) > 0 {
		fmt.Fprintf(out, "   Relationships: %d\n", len(graph.Relationships))
	}
}

type summaryData struct {
	AgentID       string
	ContentSource string
	ContentLength int
	Timestamp     time.Time
	IngestResult  *apidef.IngestResponse
	Graph         *apidef.KnowledgeGraph
}

func displaySummary(out io.Writer, data summaryData) {
	fmt.Fprintf(out, "\nTest Summary:\n")
	fmt.Fprintf(out, "   * Agent ID: %s\n", data.AgentID)
	fmt.Fprintf(out, "   * Content Source: %s\n", data.ContentSource)
	fmt.Fprintf(out, "   * Content Length: %d characters\n", data.ContentLength)
	fmt.Fprintf(out, "   * Test Timestamp: %s\n", data.Timestamp.Format("2006-01-02 15:04:05"))

	if data.IngestResult != nil {
		result := data.IngestResult.BeliefUpdateResult
		fmt.Fprintf(out, "\nBelief Analysis Results:\n")
		fmt.Fprintf(out, "   * New Beliefs Created: %d\n", len(result.NewBeliefs))
		fmt.Fprintf(out, "   * Beliefs Reinforced: %d\n", len(result.ReinforcedBeliefs))
		fmt.Fprintf(out, "   * Beliefs Weakened: %d\n", len(result.WeakenedBeliefs))
		fmt.Fprintf(out, "   * Conflicts Detected: %d\n", len(result.Conflicts))
		fmt.Fprintf(out, "   * Memory ID: %s\n", data.IngestResult.MemoryID.FormatOr("N/A"))
	}

	if data.Graph != nil {
		fmt.Fprintf(out, "\nKnowledge Graph Status:\n")
		fmt.Fprintf(out, "   * Total Beliefs in Graph: %d\n", len(data.Graph.Beliefs))
		fmt.Fprintf(out, "   * Total Relationships: %d\n", len(data.Graph.Relationships))
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
