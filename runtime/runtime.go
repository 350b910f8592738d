// Package runtime defines the boundary to the external agent runtime
// collaborator. The graph engine drives nodes through the Runtime interface;
// model invocation and the tool-calling loop live behind it.
package runtime

import (
	"context"

	"github.com/agentgraph/agentgraph/core"
	"github.com/agentgraph/agentgraph/gateway"
)

// Request is one logical agent invocation: system instructions, the user
// prompt and the capability subset the agent may call.
type Request struct {
	Instructions string
	Prompt       string
	Capabilities []gateway.Capability
}

// Runtime executes one logical agent invocation. Implementations must honor
// context cancellation and return the full ordered block sequence of the
// final message.
type Runtime interface {
	Invoke(ctx context.Context, req Request) (*core.InvocationResult, error)
}
