package graph

import (
	"fmt"
	"time"

	"github.com/agentgraph/agentgraph/core"
)

// Graph is an immutable directed graph of nodes and edges with one
// designated entry node. Construct through Builder; a built Graph may be run
// any number of times, each run producing an independent Run instance.
type Graph struct {
	nodes     map[string]Node
	order     []string // declaration order, used for stable skip reporting
	edgesFrom map[string][]Edge
	entry     string
}

// Entry returns the entry node name.
func (g *Graph) Entry() string { return g.entry }

// Nodes returns the node names in declaration order.
func (g *Graph) Nodes() []string { return append([]string(nil), g.order...) }

// workItem pairs a scheduled node with the input resolved by the edge that
// fired toward it.
type workItem struct {
	node  string
	input string
}

// Run executes the graph strictly sequentially, seeded at the entry node
// with initialInput. It never returns an error: node failures are recorded
// on the corresponding NodeResult, descendants reachable only through a
// failed node end skipped, and the run status reflects the outcome. The
// aggregator can always produce a best-effort report from the returned Run.
func (g *Graph) Run(rc *core.RequestContext, initialInput string) *Run {
	run := newRun(len(g.nodes), initialInput)
	run.Status = core.RunRunning
	start := time.Now()
	logger := rc.Logger()

	queue := []workItem{{node: g.entry, input: initialInput}}
	scheduled := map[string]bool{g.entry: true}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if err := rc.Err(); err != nil {
			run.Err = fmt.Errorf("graph run cancelled: %w", err)
			break
		}

		node := g.nodes[item.node]
		logger.Debug("node execution started", "node", item.node)

		nodeStart := time.Now()
		invocations, err := node.Run(rc, item.input)
		nr := &core.NodeResult{
			Node:        item.node,
			Invocations: invocations,
			Duration:    time.Since(nodeStart),
		}
		for _, inv := range invocations {
			nr.Usage.Add(inv.Usage)
		}

		if err != nil {
			nr.Status = core.StatusFailed
			nr.Err = &NodeExecutionError{Node: item.node, Cause: err}
			run.record(nr)
			logger.Error("node execution failed", "node", item.node, "error", err)
			// Outgoing edges of a failed node never fire; descendants
			// reachable only through it end skipped.
			continue
		}

		nr.Status = core.StatusCompleted
		run.record(nr)
		logger.Info("node execution completed",
			"node", item.node, "duration", nr.Duration, "invocations", len(invocations))

		state := run.State()
		for _, e := range g.edgesFrom[item.node] {
			if e.Terminal {
				logger.Debug("terminal edge reached, propagation stops", "from", e.From, "to", e.To)
				continue
			}
			if scheduled[e.To] {
				continue
			}
			if e.Condition != nil {
				fire, condErr := e.Condition.Evaluate(state)
				if condErr != nil {
					// A broken predicate must not fail the run; the edge
					// simply does not fire.
					logger.Warn("edge condition evaluation failed",
						"from", e.From, "to", e.To, "error", condErr)
					continue
				}
				if !fire {
					logger.Debug("edge condition false", "from", e.From, "to", e.To)
					continue
				}
			}
			scheduled[e.To] = true
			queue = append(queue, workItem{node: e.To, input: g.resolveInput(e, nr, initialInput)})
		}
	}

	// Everything never executed ends skipped, in declaration order.
	for _, name := range g.order {
		if !run.executed(name) {
			run.record(&core.NodeResult{Node: name, Status: core.StatusSkipped})
		}
	}

	if run.Err == nil && rc.Err() != nil {
		run.Err = fmt.Errorf("graph run cancelled: %w", rc.Err())
	}

	run.Duration = time.Since(start)
	if run.Err != nil || run.FailedNodes() > 0 {
		run.Status = core.RunFailed
	} else {
		run.Status = core.RunCompleted
	}

	logger.Info("graph run finished",
		"status", string(run.Status),
		"completed", run.CompletedNodes(),
		"failed", run.FailedNodes(),
		"skipped", run.SkippedNodes(),
		"duration", run.Duration)

	return run
}

// resolveInput computes the input for a fired edge's target: an explicit
// edge prompt wins, then the source node's joined text output when upstream
// threading is requested, then the run's initial input.
func (g *Graph) resolveInput(e Edge, source *core.NodeResult, initialInput string) string {
	if e.Input != "" {
		return e.Input
	}
	if e.UseUpstreamOutput {
		if text := joinedText(source); text != "" {
			return text
		}
	}
	return initialInput
}
