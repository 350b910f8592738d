package core

import "time"

// Status tracks the lifecycle of a single node within a graph run.
type Status string

const (
	// StatusPending marks a node that has not started executing.
	StatusPending Status = "pending"
	// StatusRunning marks a node currently executing.
	StatusRunning Status = "running"
	// StatusCompleted marks a node that executed successfully.
	StatusCompleted Status = "completed"
	// StatusFailed marks a node whose execution returned an error.
	StatusFailed Status = "failed"
	// StatusSkipped marks a node that was never executed because no edge
	// fired toward it (false condition, terminal edge or upstream failure).
	StatusSkipped Status = "skipped"
)

// RunStatus tracks the lifecycle of an entire graph run.
type RunStatus string

const (
	// RunPending marks a run that has not started.
	RunPending RunStatus = "pending"
	// RunRunning marks a run in progress.
	RunRunning RunStatus = "running"
	// RunCompleted marks a run in which no node failed.
	RunCompleted RunStatus = "completed"
	// RunFailed marks a run in which at least one node failed or the run
	// was cancelled.
	RunFailed RunStatus = "failed"
)

// TokenUsage captures token usage counters for an invocation, node or run.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Add accumulates another usage record into u.
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.TotalTokens += other.TotalTokens
}

// InvocationResult is one message payload produced by a single logical call
// into the agent runtime: an ordered sequence of content blocks plus the
// usage the call consumed.
type InvocationResult struct {
	Blocks []ContentBlock
	Usage  TokenUsage
}

// Texts returns the text of every top-level TextBlock in order. Nested
// tool-result text is intentionally not included here; flattening across
// nesting levels is the aggregator's concern.
func (r InvocationResult) Texts() []string {
	var texts []string
	for _, b := range r.Blocks {
		if tb, ok := b.(TextBlock); ok && tb.Text != "" {
			texts = append(texts, tb.Text)
		}
	}
	return texts
}

// NodeResult records the outcome of executing one node exactly once. A node
// may internally invoke the agent runtime more than once; every invocation
// is retained in order.
type NodeResult struct {
	Node        string
	Invocations []InvocationResult
	Status      Status
	Duration    time.Duration
	Usage       TokenUsage
	Err         error
}
