package gateway

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/oauth2/clientcredentials"
)

// TokenSource supplies bearer tokens for authenticated gateway access.
// Implementations must be safe for concurrent use.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource returns a fixed token. Useful for tests and environments
// where the surrounding runtime injects a pre-minted token.
type StaticTokenSource string

// Token implements TokenSource.
func (s StaticTokenSource) Token(context.Context) (string, error) {
	if s == "" {
		return "", fmt.Errorf("static token source is empty")
	}
	return string(s), nil
}

// ClientCredentialsTokenSource performs an OAuth2 machine-to-machine token
// exchange against the identity provider's token endpoint.
type ClientCredentialsTokenSource struct {
	cfg clientcredentials.Config
}

// NewClientCredentialsTokenSource builds a token source for the M2M flow.
func NewClientCredentialsTokenSource(tokenURL, clientID, clientSecret string, scopes ...string) *ClientCredentialsTokenSource {
	return &ClientCredentialsTokenSource{
		cfg: clientcredentials.Config{
			TokenURL:     tokenURL,
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Scopes:       scopes,
		},
	}
}

// Token implements TokenSource by requesting a fresh access token.
func (s *ClientCredentialsTokenSource) Token(ctx context.Context) (string, error) {
	tok, err := s.cfg.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("token exchange failed: %w", err)
	}
	return tok.AccessToken, nil
}

// CachedTokenSource wraps another TokenSource and caches the first
// successful token, making acquisition idempotent and re-entrant within a
// request. Failures are not cached.
type CachedTokenSource struct {
	src TokenSource

	mu    sync.Mutex
	token string
}

// NewCachedTokenSource wraps src with per-instance caching. Scope one
// instance to one request; caching across requests is not required.
func NewCachedTokenSource(src TokenSource) *CachedTokenSource {
	return &CachedTokenSource{src: src}
}

// Token implements TokenSource.
func (c *CachedTokenSource) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" {
		return c.token, nil
	}
	tok, err := c.src.Token(ctx)
	if err != nil {
		return "", err
	}
	c.token = tok
	return tok, nil
}
