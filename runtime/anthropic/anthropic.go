// Package anthropic implements the agent runtime boundary on the Anthropic
// Messages API. Capability subsets become provider tool definitions; the
// final message's blocks are translated into core content blocks.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"

	"github.com/agentgraph/agentgraph/core"
	"github.com/agentgraph/agentgraph/gateway"
	"github.com/agentgraph/agentgraph/runtime"
)

// Options configures the Anthropic runtime adapter.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Runtime wraps the Anthropic Messages API behind the runtime.Runtime interface.
type Runtime struct {
	client *anthropic.Client
	opts   Options
}

// New creates an Anthropic runtime using the official client.
func New(optFns ...func(o *Options)) *Runtime {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Runtime{client: &client, opts: opts}
}

// NewFromClient creates an Anthropic runtime from an existing client.
func NewFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Runtime {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Runtime{client: client, opts: opts}
}

// Invoke implements runtime.Runtime with a single non-streaming message call.
func (r *Runtime) Invoke(ctx context.Context, req runtime.Request) (*core.InvocationResult, error) {
	params := anthropic.MessageNewParams{
		Model:       r.opts.Model,
		MaxTokens:   r.opts.MaxTokens,
		Temperature: anthropic.Float(r.opts.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.Instructions != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.Instructions}}
	}
	if len(req.Capabilities) > 0 {
		params.Tools = buildTools(req.Capabilities)
	}

	resp, err := r.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	var blocks []core.ContentBlock
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			textBlock := block.AsText()
			if textBlock.Text != "" {
				blocks = append(blocks, core.TextBlock{Text: textBlock.Text})
			}
		case "tool_use":
			toolBlock := block.AsToolUse()
			data := map[string]any{
				"type": "tool_use",
				"id":   toolBlock.ID,
				"name": toolBlock.Name,
			}
			if toolBlock.Input != nil {
				var input any
				if raw, err := json.Marshal(toolBlock.Input); err == nil {
					if err := json.Unmarshal(raw, &input); err == nil {
						data["input"] = input
					}
				}
			}
			blocks = append(blocks, core.DataBlock{Data: data})
		}
	}

	usage := core.TokenUsage{
		InputTokens:  int(resp.Usage.InputTokens),
		OutputTokens: int(resp.Usage.OutputTokens),
		TotalTokens:  int(resp.Usage.InputTokens + resp.Usage.OutputTokens),
	}

	return &core.InvocationResult{Blocks: blocks, Usage: usage}, nil
}

// buildTools converts gateway capabilities to Anthropic tool definitions.
func buildTools(capabilities []gateway.Capability) []anthropic.ToolUnionParam {
	tools := make([]anthropic.ToolUnionParam, len(capabilities))

	for i, capability := range capabilities {
		inputSchema := anthropic.ToolInputSchemaParam{
			Type: constant.Object("object"),
		}
		if capability.InputSchema != nil {
			if properties, exists := capability.InputSchema["properties"]; exists {
				inputSchema.Properties = properties
			}
			if required, exists := capability.InputSchema["required"]; exists {
				switch req := required.(type) {
				case []string:
					inputSchema.Required = req
				case []any:
					var reqStrings []string
					for _, r := range req {
						if s, ok := r.(string); ok {
							reqStrings = append(reqStrings, s)
						}
					}
					inputSchema.Required = reqStrings
				}
			}
		}
		tools[i] = anthropic.ToolUnionParamOfTool(inputSchema, capability.Name)
	}

	return tools
}
