package graph

import (
	"strings"
	"time"

	"github.com/agentgraph/agentgraph/core"
)

// Run is one execution instance of a Graph against a specific input. Node
// results are recorded in completion order; skipped nodes are appended once
// execution settles. A Run is not safe for concurrent mutation but is
// read-only once Graph.Run returns.
type Run struct {
	EntryInput  string
	NodeResults []*core.NodeResult
	Status      core.RunStatus
	Usage       core.TokenUsage
	Duration    time.Duration
	// Err carries a run-level cause (e.g. cancellation) distinct from
	// individual node errors.
	Err error

	byName map[string]*core.NodeResult
	total  int
}

func newRun(total int, input string) *Run {
	return &Run{
		EntryInput: input,
		Status:     core.RunPending,
		byName:     map[string]*core.NodeResult{},
		total:      total,
	}
}

func (r *Run) record(nr *core.NodeResult) {
	r.NodeResults = append(r.NodeResults, nr)
	r.byName[nr.Node] = nr
	r.Usage.Add(nr.Usage)
}

func (r *Run) executed(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Result returns the recorded result for a node, or nil if none exists.
func (r *Run) Result(name string) *core.NodeResult { return r.byName[name] }

// TotalNodes returns the number of nodes in the graph.
func (r *Run) TotalNodes() int { return r.total }

// CompletedNodes counts nodes that finished successfully.
func (r *Run) CompletedNodes() int { return r.countStatus(core.StatusCompleted) }

// FailedNodes counts nodes whose execution failed.
func (r *Run) FailedNodes() int { return r.countStatus(core.StatusFailed) }

// SkippedNodes counts nodes that were never executed.
func (r *Run) SkippedNodes() int { return r.countStatus(core.StatusSkipped) }

func (r *Run) countStatus(s core.Status) int {
	n := 0
	for _, nr := range r.NodeResults {
		if nr.Status == s {
			n++
		}
	}
	return n
}

// NodeText returns the newline-joined top-level text of every invocation of
// the named node, trimmed of surrounding whitespace.
func (r *Run) NodeText(name string) string {
	nr := r.byName[name]
	if nr == nil {
		return ""
	}
	return joinedText(nr)
}

func joinedText(nr *core.NodeResult) string {
	var texts []string
	for _, inv := range nr.Invocations {
		texts = append(texts, inv.Texts()...)
	}
	return strings.TrimSpace(strings.Join(texts, "\n"))
}

// State returns the snapshot edge conditions evaluate against: counters plus
// per-node status and text keyed by node name. The snapshot is rebuilt per
// evaluation so predicates always see the latest accumulated results.
func (r *Run) State() map[string]any {
	nodes := map[string]any{}
	for _, nr := range r.NodeResults {
		nodes[nr.Node] = map[string]any{
			"status": string(nr.Status),
			"text":   joinedText(nr),
		}
	}
	return map[string]any{
		"initial_input": r.EntryInput,
		"completed":     r.CompletedNodes(),
		"failed":        r.FailedNodes(),
		"nodes":         nodes,
	}
}
