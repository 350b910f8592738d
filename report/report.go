// Package report flattens a graph run's heterogeneous node outputs into one
// deterministic, UI-consumable report.
package report

import (
	"strings"

	"github.com/agentgraph/agentgraph/core"
	"github.com/agentgraph/agentgraph/graph"
)

// NoContentSentinel fills the report's full-text field when no node produced
// any text, so downstream consumers can distinguish "ran but produced
// nothing" from "did not run".
const NoContentSentinel = "no content"

// defaultUsageMarkers are the capability-usage indicators scanned for in
// node text. "___" is the gateway's tool namespace separator; the others are
// runtime-side tool invocation traces. Matching any of them is a heuristic
// signal that an external capability was used, not a guarantee.
var defaultUsageMarkers = []string{"Tool #", "tool_use", "___"}

// Message is one rendered output unit of an agent node.
type Message struct {
	Type    string `json:"type"` // "text" or "json"
	Content any    `json:"content"`
}

// AgentReport summarizes one node's execution.
type AgentReport struct {
	Name            string    `json:"name"`
	Messages        []Message `json:"messages"`
	ExecutionTimeMS int64     `json:"execution_time_ms"`
	Status          string    `json:"status"`
	TokensUsed      int       `json:"tokens_used"`
	Error           string    `json:"error,omitempty"`
}

// Metadata carries run-level counters and correlation for the report.
type Metadata struct {
	SessionID      string `json:"session_id"`
	TotalNodes     int    `json:"total_nodes"`
	CompletedNodes int    `json:"completed_nodes"`
	FailedNodes    int    `json:"failed_nodes"`
}

// Report is the aggregated, deterministic summary of a graph run.
type Report struct {
	Status               string        `json:"status"`
	Agents               []AgentReport `json:"agents"`
	TotalExecutionTimeMS int64         `json:"total_execution_time_ms"`
	TotalTokens          int           `json:"total_tokens"`
	MCPToolsUsed         bool          `json:"mcp_tools_used"`
	FullText             string        `json:"full_text"`
	Metadata             Metadata      `json:"metadata"`
}

// Options configures an Aggregator.
type Options struct {
	// UsageMarkers overrides the capability-usage indicator set.
	UsageMarkers []string
}

// Aggregator flattens graph runs into Reports. The zero-configured
// aggregator uses the default usage marker set.
type Aggregator struct {
	markers []string
}

// NewAggregator constructs an Aggregator with optional overrides.
func NewAggregator(optFns ...func(o *Options)) *Aggregator {
	opts := Options{UsageMarkers: defaultUsageMarkers}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Aggregator{markers: opts.UsageMarkers}
}

// Aggregate produces the report for a finished run. Given a fixed run, the
// output is deterministic: iteration follows completion order and no map
// iteration leaks into the result.
func (a *Aggregator) Aggregate(run *graph.Run, rc *core.RequestContext) *Report {
	rep := &Report{
		Status:               statusLabel(run.Status),
		TotalExecutionTimeMS: run.Duration.Milliseconds(),
		TotalTokens:          run.Usage.TotalTokens,
		Metadata: Metadata{
			SessionID:      rc.SessionID,
			TotalNodes:     run.TotalNodes(),
			CompletedNodes: run.CompletedNodes(),
			FailedNodes:    run.FailedNodes(),
		},
	}

	var fullText []string
	for _, nr := range run.NodeResults {
		agent := AgentReport{
			Name:            nr.Node,
			ExecutionTimeMS: nr.Duration.Milliseconds(),
			Status:          string(nr.Status),
			TokensUsed:      nr.Usage.TotalTokens,
		}
		if nr.Err != nil {
			agent.Error = nr.Err.Error()
		}

		var nodeTexts []string
		for _, inv := range nr.Invocations {
			texts, data := flattenBlocks(inv.Blocks, 0)
			if joined := strings.TrimSpace(strings.Join(texts, "\n")); joined != "" {
				agent.Messages = append(agent.Messages, Message{Type: "text", Content: joined})
				nodeTexts = append(nodeTexts, joined)
			}
			for _, d := range data {
				agent.Messages = append(agent.Messages, Message{Type: "json", Content: d})
			}
		}

		if len(nodeTexts) > 0 {
			nodeText := strings.Join(nodeTexts, "\n")
			fullText = append(fullText, "## "+nr.Node+"\n"+nodeText)
			if !rep.MCPToolsUsed && a.containsUsageMarker(nodeText) {
				rep.MCPToolsUsed = true
			}
		}

		rep.Agents = append(rep.Agents, agent)
	}

	if len(fullText) == 0 {
		rep.FullText = NoContentSentinel
	} else {
		rep.FullText = strings.Join(fullText, "\n")
	}

	return rep
}

// flattenBlocks splits a block sequence into text and structured buckets.
// Nested tool-result blocks are flattened recursively into the same buckets;
// recursion stops at the depth cap so malformed nesting cannot run away.
func flattenBlocks(blocks []core.ContentBlock, depth int) ([]string, []map[string]any) {
	var texts []string
	var data []map[string]any
	for _, b := range blocks {
		switch block := b.(type) {
		case core.TextBlock:
			if block.Text != "" {
				texts = append(texts, block.Text)
			}
		case core.DataBlock:
			if block.Data != nil {
				data = append(data, block.Data)
			}
		case core.ToolResultBlock:
			if depth >= core.MaxBlockDepth {
				continue
			}
			nestedTexts, nestedData := flattenBlocks(block.Blocks, depth+1)
			texts = append(texts, nestedTexts...)
			data = append(data, nestedData...)
		}
	}
	return texts, data
}

func (a *Aggregator) containsUsageMarker(text string) bool {
	for _, marker := range a.markers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

func statusLabel(s core.RunStatus) string {
	if s == core.RunCompleted {
		return "completed"
	}
	return "failed"
}
