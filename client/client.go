// Package client is the invoker-side counterpart of the server: it posts an
// invocation payload and classifies whatever bytes come back through the
// tolerant response decoder, so callers cope uniformly with structured
// reports, error envelopes, event streams and plain text.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/agentgraph/agentgraph/decode"
)

// Options configures a Client.
type Options struct {
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client invokes a running pipeline server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New constructs a Client for the given server base URL.
func New(baseURL string, optFns ...func(o *Options)) *Client {
	opts := Options{Timeout: 10 * time.Minute}
	for _, fn := range optFns {
		fn(&opts)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

type invocationPayload struct {
	Input invocationInput `json:"input"`
}

type invocationInput struct {
	Prompt    string `json:"prompt"`
	SessionID string `json:"session_id,omitempty"`
}

// Invoke posts a prompt and decodes the response body. Transport failures
// return an error; everything the server actually said, including error
// envelopes, is surfaced through the decoded result.
func (c *Client) Invoke(ctx context.Context, sessionID, prompt string) (decode.Result, error) {
	payload, err := json.Marshal(invocationPayload{
		Input: invocationInput{Prompt: prompt, SessionID: sessionID},
	})
	if err != nil {
		return decode.Result{}, fmt.Errorf("encode invocation payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/invocations", bytes.NewReader(payload))
	if err != nil {
		return decode.Result{}, fmt.Errorf("build invocation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("X-Session-Id", sessionID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decode.Result{}, fmt.Errorf("invocation call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decode.Result{}, fmt.Errorf("read invocation response: %w", err)
	}

	return decode.Decode(body), nil
}
