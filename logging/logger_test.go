package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newBufferedLogger(level slog.Level) (*PipelineLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	l := NewPipelineLogger(&Config{Level: level, Format: "json", Output: buf, Component: "test"})
	return l, buf
}

func TestPipelineLogger_KeyValueArgs(t *testing.T) {
	l, buf := newBufferedLogger(slog.LevelInfo)

	l.Info("catalog routed", "keyword", "slack", "matched", 2)

	out := buf.String()
	assert.Equal(t, "catalog routed", gjson.Get(out, "msg").String())
	assert.Equal(t, "test", gjson.Get(out, "component").String())
	assert.Equal(t, "slack", gjson.Get(out, "keyword").String())
	assert.EqualValues(t, 2, gjson.Get(out, "matched").Int())
}

func TestPipelineLogger_LevelFiltering(t *testing.T) {
	l, buf := newBufferedLogger(slog.LevelInfo)

	l.Debug("hidden")
	assert.Empty(t, buf.String())

	l.Warn("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestPipelineLogger_ContextualCloning(t *testing.T) {
	base, buf := newBufferedLogger(slog.LevelInfo)

	scoped := base.WithComponent("gateway").WithSession("sess-1", "corr-1").WithContext("attempt", 3)
	scoped.Info("session opened")

	out := buf.String()
	assert.Equal(t, "gateway", gjson.Get(out, "component").String())
	assert.Equal(t, "sess-1", gjson.Get(out, "session_id").String())
	assert.Equal(t, "corr-1", gjson.Get(out, "correlation_id").String())
	assert.EqualValues(t, 3, gjson.Get(out, "attempt").Int())

	// The parent logger is untouched by derived scopes.
	buf.Reset()
	base.Info("base entry")
	out = buf.String()
	assert.Equal(t, "test", gjson.Get(out, "component").String())
	assert.False(t, gjson.Get(out, "session_id").Exists())
}

func TestPipelineLogger_LogNodeRun(t *testing.T) {
	l, buf := newBufferedLogger(slog.LevelInfo)

	l.LogNodeRun("slack_agent", 120*time.Millisecond, true, nil)
	out := buf.String()
	assert.Equal(t, "Node execution completed", gjson.Get(out, "msg").String())
	assert.Equal(t, "slack_agent", gjson.Get(out, "node").String())
	assert.True(t, gjson.Get(out, "success").Bool())

	buf.Reset()
	l.LogNodeRun("tavily_agent", time.Millisecond, false, errors.New("timeout"))
	out = buf.String()
	assert.Equal(t, "Node execution failed", gjson.Get(out, "msg").String())
	assert.Equal(t, "timeout", gjson.Get(out, "error").String())
}

func TestPipelineLogger_LogTokenExchangeRedaction(t *testing.T) {
	l, buf := newBufferedLogger(slog.LevelInfo)

	token := "secret-token-value-that-must-not-leak"
	l.LogTokenExchange(token, false)

	out := buf.String()
	assert.NotContains(t, out, token)
	assert.Equal(t, "secret-t", gjson.Get(out, "token_prefix").String())
	assert.EqualValues(t, len(token), gjson.Get(out, "token_length").Int())
}

func TestNoOpLogger(t *testing.T) {
	var l Logger = NoOpLogger{}
	require.NotPanics(t, func() {
		l.Debug("a")
		l.Info("b", "k", "v")
		l.Warn("c")
		l.Error("d", "err", errors.New("x"))
	})
}
