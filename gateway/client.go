package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agentgraph/agentgraph/logging"
)

// maxListPages bounds catalog pagination against a misbehaving remote that
// keeps returning continuation cursors.
const maxListPages = 10000

// Options configures a gateway Client.
type Options struct {
	// HTTPClient overrides the transport used for gateway calls.
	HTTPClient *http.Client
	// Timeout applies when no HTTPClient is supplied.
	Timeout time.Duration
	// Logger receives client-level diagnostics.
	Logger logging.Logger
}

// Client talks JSON-RPC to the tool gateway endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	tokens     TokenSource
	logger     logging.Logger
	nextID     atomic.Int64
}

// NewClient constructs a Client for the given gateway endpoint. Tokens are
// obtained from src on session open.
func NewClient(endpoint string, src TokenSource, optFns ...func(o *Options)) *Client {
	opts := Options{
		Timeout: 120 * time.Second,
		Logger:  logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		tokens:     src,
		logger:     opts.Logger,
	}
}

// OpenSession acquires a bearer token and returns an authenticated session.
// The caller owns the session and must Close it on every exit path.
func (c *Client) OpenSession(ctx context.Context) (*Session, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("open gateway session: %w", err)
	}
	c.logger.Debug("gateway session opened", "endpoint", c.endpoint)
	return &Session{client: c, token: token}, nil
}

// Session is the scoped, authenticated connection to the gateway. It must
// remain open across catalog fetch and all node executions; Close releases
// it and invalidates further use.
type Session struct {
	client *Client
	token  string

	mu     sync.Mutex
	closed bool
}

// Close releases the session. Idempotent; subsequent gateway calls through
// the session fail with ErrSessionClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.token = ""
	s.client.logger.Debug("gateway session closed")
	return nil
}

// Token returns the bearer token held by the session, for collaborators
// (e.g. the agent runtime) that call the gateway through their own transport.
func (s *Session) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrSessionClosed
	}
	return s.token, nil
}

// FetchAll repeatedly calls the remote tools/list operation, starting with
// no cursor, appending every returned capability and advancing the cursor
// until it is absent. An empty final catalog yields ErrEmptyCatalog (wrapped
// in CatalogError); runaway pagination fails with PaginationOverflowError.
func (s *Session) FetchAll(ctx context.Context) (Catalog, error) {
	start := time.Now()
	var catalog Catalog
	cursor := ""
	pages := 0

	for {
		if pages >= maxListPages {
			return nil, &CatalogError{Cause: &PaginationOverflowError{Pages: pages}}
		}
		page, next, err := s.listTools(ctx, cursor)
		if err != nil {
			return nil, &CatalogError{Cause: err}
		}
		pages++
		catalog = append(catalog, page...)
		if next == "" {
			break
		}
		cursor = next
	}

	if len(catalog) == 0 {
		return nil, &CatalogError{Cause: ErrEmptyCatalog}
	}

	s.client.logger.Info("tool catalog assembled",
		"pages", pages, "capabilities", len(catalog), "duration", time.Since(start))
	return catalog, nil
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type listToolsParams struct {
	Cursor string `json:"cursor,omitempty"`
}

type listToolsResult struct {
	Tools      []Capability `json:"tools"`
	NextCursor string       `json:"nextCursor,omitempty"`
}

// listTools performs one page of the tools/list operation.
func (s *Session) listTools(ctx context.Context, cursor string) ([]Capability, string, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, "", ErrSessionClosed
	}
	token := s.token
	s.mu.Unlock()

	reqBody := rpcRequest{
		JSONRPC: "2.0",
		ID:      s.client.nextID.Add(1),
		Method:  "tools/list",
		Params:  listToolsParams{Cursor: cursor},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, "", fmt.Errorf("encode tools/list request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.client.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, "", fmt.Errorf("build tools/list request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("tools/list call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read tools/list response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("tools/list returned status %d", resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return nil, "", fmt.Errorf("decode tools/list response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, "", fmt.Errorf("tools/list rpc error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}

	var result listToolsResult
	if err := json.Unmarshal(rpcResp.Result, &result); err != nil {
		return nil, "", fmt.Errorf("decode tools/list result: %w", err)
	}
	return result.Tools, result.NextCursor, nil
}
