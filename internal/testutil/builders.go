package testutil

import (
	"github.com/agentgraph/agentgraph/core"
)

// InvocationBuilder provides a fluent helper for constructing invocation
// results in tests. Example:
//
//	res := NewInvocation().Text("hello").Data(map[string]any{"k": "v"}).Build()
//
// Chain only the parts you need.
type InvocationBuilder struct {
	blocks []core.ContentBlock
	usage  core.TokenUsage
}

// NewInvocation creates an empty invocation builder.
func NewInvocation() *InvocationBuilder { return &InvocationBuilder{} }

// Text appends a text block (chainable).
func (b *InvocationBuilder) Text(t string) *InvocationBuilder {
	b.blocks = append(b.blocks, core.TextBlock{Text: t})
	return b
}

// Data appends a structured block (chainable).
func (b *InvocationBuilder) Data(d map[string]any) *InvocationBuilder {
	b.blocks = append(b.blocks, core.DataBlock{Data: d})
	return b
}

// ToolResult appends a nested tool-result block (chainable).
func (b *InvocationBuilder) ToolResult(tool string, nested ...core.ContentBlock) *InvocationBuilder {
	b.blocks = append(b.blocks, core.ToolResultBlock{ToolName: tool, Blocks: nested})
	return b
}

// Tokens sets usage counters (chainable).
func (b *InvocationBuilder) Tokens(in, out int) *InvocationBuilder {
	b.usage = core.TokenUsage{InputTokens: in, OutputTokens: out, TotalTokens: in + out}
	return b
}

// Build produces the invocation result.
func (b *InvocationBuilder) Build() core.InvocationResult {
	return core.InvocationResult{Blocks: b.blocks, Usage: b.usage}
}

// StaticNode is a graph node returning fixed invocation results (or a fixed
// error). It records how it was called for assertions.
type StaticNode struct {
	NodeName    string
	Invocations []core.InvocationResult
	Err         error

	// Calls records the inputs passed to Run, in order.
	Calls []string
}

// Name implements graph.Node.
func (n *StaticNode) Name() string { return n.NodeName }

// Run implements graph.Node.
func (n *StaticNode) Run(_ *core.RequestContext, input string) ([]core.InvocationResult, error) {
	n.Calls = append(n.Calls, input)
	if n.Err != nil {
		return nil, n.Err
	}
	return n.Invocations, nil
}
