package core

import (
	"context"

	"github.com/google/uuid"

	"github.com/agentgraph/agentgraph/logging"
)

// NewID generates a new unique identifier for requests and correlation.
func NewID() string { return uuid.NewString() }

// RequestContext carries the per-request scope through the pipeline: the
// ambient cancellation context, session and user identity, a correlation id
// and the request logger. It is passed explicitly from catalog fetch through
// graph execution to aggregation; there is no ambient global state, so two
// concurrent requests never share a context.
type RequestContext struct {
	Context       context.Context
	SessionID     string
	UserID        string
	CorrelationID string

	logger logging.Logger
}

// NewRequestContext constructs a RequestContext with a fresh correlation id.
// A nil logger defaults to the no-op logger.
func NewRequestContext(ctx context.Context, sessionID, userID string, logger logging.Logger) *RequestContext {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &RequestContext{
		Context:       ctx,
		SessionID:     sessionID,
		UserID:        userID,
		CorrelationID: NewID(),
		logger:        logger,
	}
}

// Done returns a channel closed when the underlying context is cancelled.
func (rc *RequestContext) Done() <-chan struct{} { return rc.Context.Done() }

// Err returns the cancellation error (if any) from the underlying context.
func (rc *RequestContext) Err() error { return rc.Context.Err() }

// Logger returns the request-scoped logger.
func (rc *RequestContext) Logger() logging.Logger { return rc.logger }
