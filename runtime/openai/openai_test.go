package openai

import (
	"testing"

	"github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentgraph/agentgraph/gateway"
)

func TestNew_Defaults(t *testing.T) {
	rt := New()
	assert.Equal(t, openai.ChatModelGPT4oMini, rt.opts.Model)
	assert.Equal(t, 0.7, rt.opts.Temperature)
	assert.EqualValues(t, 4096, rt.opts.MaxCompletionTokens)
}

func TestNew_Overrides(t *testing.T) {
	rt := New(func(o *Options) {
		o.Model = openai.ChatModelGPT4o
		o.Temperature = 0.2
	})
	assert.Equal(t, openai.ChatModelGPT4o, rt.opts.Model)
	assert.Equal(t, 0.2, rt.opts.Temperature)
}

func TestBuildTools(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url": map[string]any{"type": "string"},
		},
	}
	caps := []gateway.Capability{
		{Name: "tavily___extract", Description: "Extract page content", InputSchema: schema},
		{Name: "slack___get_messages"},
	}

	tools := buildTools(caps)
	require.Len(t, tools, 2)

	assert.Equal(t, "tavily___extract", tools[0].Function.Name)
	assert.EqualValues(t, schema, tools[0].Function.Parameters)

	// Missing schemas are defaulted to an empty object schema.
	assert.Equal(t, "slack___get_messages", tools[1].Function.Name)
	require.NotNil(t, tools[1].Function.Parameters)
	assert.Equal(t, "object", tools[1].Function.Parameters["type"])
}
