package graph

import (
	"github.com/agentgraph/agentgraph/core"
	"github.com/agentgraph/agentgraph/gateway"
	"github.com/agentgraph/agentgraph/runtime"
)

// Node is one agent-execution unit in the graph. Run is called exactly once
// per graph run with the input resolved by the fired edge (or the initial
// input for the entry node) and returns the ordered agent invocation results.
type Node interface {
	Name() string
	Run(rc *core.RequestContext, input string) ([]core.InvocationResult, error)
}

// AgentNode wraps one capability subset and system instructions into an
// executable unit backed by the external agent runtime.
type AgentNode struct {
	name         string
	rt           runtime.Runtime
	capabilities []gateway.Capability
	instructions string
}

// NewAgentNode builds an agent node. The capability subset and instructions
// are fixed for the lifetime of the node.
func NewAgentNode(name string, rt runtime.Runtime, capabilities []gateway.Capability, instructions string) *AgentNode {
	return &AgentNode{
		name:         name,
		rt:           rt,
		capabilities: capabilities,
		instructions: instructions,
	}
}

// Name returns the node identifier, unique within a graph.
func (n *AgentNode) Name() string { return n.name }

// Capabilities returns the capability subset assigned to this node.
func (n *AgentNode) Capabilities() []gateway.Capability { return n.capabilities }

// Run performs a single logical call into the agent runtime. Failures from
// the runtime propagate to the executor, which records them on the node's
// result.
func (n *AgentNode) Run(rc *core.RequestContext, input string) ([]core.InvocationResult, error) {
	res, err := n.rt.Invoke(rc.Context, runtime.Request{
		Instructions: n.instructions,
		Prompt:       input,
		Capabilities: n.capabilities,
	})
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}
	return []core.InvocationResult{*res}, nil
}

// NoopNode is the valid degenerate node with no capabilities and no prompt.
// Its Run immediately returns an empty result; it models pipeline
// termination points.
type NoopNode struct {
	name string
}

// NewNoopNode builds a terminal no-op node.
func NewNoopNode(name string) *NoopNode { return &NoopNode{name: name} }

// Name returns the node identifier.
func (n *NoopNode) Name() string { return n.name }

// Run returns an empty result without touching the agent runtime.
func (n *NoopNode) Run(*core.RequestContext, string) ([]core.InvocationResult, error) {
	return nil, nil
}
