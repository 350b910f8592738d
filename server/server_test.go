package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/agentgraph/agentgraph/config"
	"github.com/agentgraph/agentgraph/gateway"
	"github.com/agentgraph/agentgraph/graph"
	"github.com/agentgraph/agentgraph/report"
)

// stubInvoker returns a canned report or error and records the call.
type stubInvoker struct {
	rep       *report.Report
	err       error
	sessionID string
	prompt    string
	calls     int
}

func (s *stubInvoker) Invoke(_ context.Context, sessionID, prompt string) (*report.Report, error) {
	s.calls++
	s.sessionID = sessionID
	s.prompt = prompt
	if s.err != nil {
		return nil, s.err
	}
	return s.rep, nil
}

func doPost(t *testing.T, handler http.Handler, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/invocations", strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Ping(t *testing.T) {
	srv := New(&stubInvoker{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", gjson.Get(rec.Body.String(), "status").String())
}

func TestHandler_InvocationSuccess(t *testing.T) {
	stub := &stubInvoker{rep: &report.Report{Status: "completed", FullText: "## slack_agent\nhi"}}
	srv := New(stub, nil)

	rec := doPost(t, srv.Handler(), `{"input":{"prompt":"find links"}}`,
		map[string]string{"X-Session-Id": "sess-7"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, "sess-7", stub.sessionID)
	assert.Equal(t, "find links", stub.prompt)

	body := rec.Body.String()
	assert.Equal(t, "completed", gjson.Get(body, "status").String())
	assert.Equal(t, "## slack_agent\nhi", gjson.Get(body, "full_text").String())
}

func TestHandler_SessionGeneratedWhenAbsent(t *testing.T) {
	stub := &stubInvoker{rep: &report.Report{Status: "completed"}}
	srv := New(stub, nil)

	rec := doPost(t, srv.Handler(), `{"prompt":"hello"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, stub.sessionID)
}

func TestHandler_MissingPrompt(t *testing.T) {
	stub := &stubInvoker{}
	srv := New(stub, nil)

	rec := doPost(t, srv.Handler(), `{"input":{}}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, stub.calls)

	body := rec.Body.String()
	assert.Equal(t, CategoryConfiguration, gjson.Get(body, "category").String())
	assert.NotEmpty(t, gjson.Get(body, "error").String())
}

func TestHandler_PipelineErrorEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		category   string
		wantStatus int
	}{
		{
			"missing env",
			&config.MissingEnvError{Var: "GATEWAY_URL"},
			CategoryConfiguration,
			http.StatusBadRequest,
		},
		{
			"catalog failure",
			&gateway.CatalogError{Cause: gateway.ErrEmptyCatalog},
			CategoryCapability,
			http.StatusInternalServerError,
		},
		{
			"network failure",
			&url.Error{Op: "Post", URL: "https://gateway", Err: errors.New("connection refused")},
			CategoryConnectivity,
			http.StatusBadGateway,
		},
		{
			"unclassified",
			errors.New("something else"),
			CategoryGeneric,
			http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := New(&stubInvoker{err: tt.err}, nil)
			rec := doPost(t, srv.Handler(), `{"prompt":"hello"}`, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := rec.Body.String()
			assert.Equal(t, tt.category, gjson.Get(body, "category").String())
			assert.Equal(t, tt.err.Error(), gjson.Get(body, "error").String())
		})
	}
}

func TestCategorize(t *testing.T) {
	assert.Equal(t, CategoryConfiguration, Categorize(&config.MissingEnvError{Var: "X"}))
	assert.Equal(t, CategoryConfiguration, Categorize(&graph.ValidationError{Msg: "bad graph"}))
	assert.Equal(t, CategoryCapability, Categorize(&gateway.CatalogError{Cause: gateway.ErrEmptyCatalog}))
	assert.Equal(t, CategoryConnectivity, Categorize(&gateway.CatalogError{
		Cause: &url.Error{Op: "Post", URL: "https://g", Err: errors.New("refused")},
	}))
	assert.Equal(t, CategoryConnectivity, Categorize(context.DeadlineExceeded))
	assert.Equal(t, CategoryGeneric, Categorize(errors.New("misc")))
}
