// Package openai implements the agent runtime boundary on the OpenAI Chat
// Completions API, mirroring the Anthropic adapter's translation of
// capability subsets and response content.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/agentgraph/agentgraph/core"
	"github.com/agentgraph/agentgraph/gateway"
	"github.com/agentgraph/agentgraph/runtime"
)

// Options configure the OpenAI runtime adapter.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Runtime wraps the OpenAI Chat Completions API behind the runtime.Runtime interface.
type Runtime struct {
	client *openai.Client
	opts   Options
}

// New creates an OpenAI runtime using the official client.
func New(optFns ...func(o *Options)) *Runtime {
	client := openai.NewClient()
	return NewFromClient(&client, optFns...)
}

// NewFromClient creates an OpenAI runtime from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Runtime {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Runtime{client: client, opts: opts}
}

// Invoke implements runtime.Runtime with a single non-streaming completion.
func (r *Runtime) Invoke(ctx context.Context, req runtime.Request) (*core.InvocationResult, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.Instructions != "" {
		messages = append(messages, openai.SystemMessage(req.Instructions))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               r.opts.Model,
		Temperature:         openai.Float(r.opts.Temperature),
		MaxCompletionTokens: openai.Int(r.opts.MaxCompletionTokens),
	}
	if len(req.Capabilities) > 0 {
		params.Tools = buildTools(req.Capabilities)
	}

	resp, err := r.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}

	ch0 := resp.Choices[0]
	var blocks []core.ContentBlock
	if ch0.Message.Content != "" {
		blocks = append(blocks, core.TextBlock{Text: ch0.Message.Content})
	}
	for _, tc := range ch0.Message.ToolCalls {
		blocks = append(blocks, core.DataBlock{Data: map[string]any{
			"type":      "tool_use",
			"id":        tc.ID,
			"name":      tc.Function.Name,
			"arguments": tc.Function.Arguments,
		}})
	}

	usage := core.TokenUsage{
		InputTokens:  int(resp.Usage.PromptTokens),
		OutputTokens: int(resp.Usage.CompletionTokens),
		TotalTokens:  int(resp.Usage.TotalTokens),
	}

	return &core.InvocationResult{Blocks: blocks, Usage: usage}, nil
}

// buildTools converts gateway capabilities to OpenAI tool definitions.
func buildTools(capabilities []gateway.Capability) []openai.ChatCompletionToolParam {
	tools := make([]openai.ChatCompletionToolParam, len(capabilities))
	for i, capability := range capabilities {
		parameters := capability.InputSchema
		if parameters == nil {
			parameters = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		tools[i] = openai.ChatCompletionToolParam{
			Type: "function",
			Function: openai.FunctionDefinitionParam{
				Name:        capability.Name,
				Description: openai.String(capability.Description),
				Parameters:  parameters,
			},
		}
	}
	return tools
}
