package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentgraph/agentgraph/decode"
)

func TestInvoke_StructuredReport(t *testing.T) {
	var gotPath, gotSession string
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSession = r.Header.Get("X-Session-Id")
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":    "completed",
			"full_text": "## slack_agent\nfound links",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Invoke(context.Background(), "sess-1", "find links")
	require.NoError(t, err)

	assert.Equal(t, "/invocations", gotPath)
	assert.Equal(t, "sess-1", gotSession)

	input, ok := gotPayload["input"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "find links", input["prompt"])
	assert.Equal(t, "sess-1", input["session_id"])

	require.Equal(t, decode.KindStructured, res.Kind)
	data, ok := res.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "completed", data["status"])
}

func TestInvoke_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":    "tools/list call failed",
			"category": "connectivity",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Invoke(context.Background(), "", "prompt")
	require.NoError(t, err)

	// Error envelopes come back through the decoder, not as transport errors.
	assert.Equal(t, decode.KindError, res.Kind)
	assert.Equal(t, "tools/list call failed", res.Message)
}

func TestInvoke_PlainTextResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("plain text answer"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Invoke(context.Background(), "", "prompt")
	require.NoError(t, err)
	assert.Equal(t, decode.KindText, res.Kind)
	assert.Equal(t, "plain text answer", res.Message)
}

func TestInvoke_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := New(srv.URL)
	_, err := c.Invoke(context.Background(), "", "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invocation call failed")
}
