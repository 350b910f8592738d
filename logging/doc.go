// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug any
// structured logger. It also offers a richer PipelineLogger with contextual
// helpers (session, correlation, component) and domain specific helpers for
// node execution, catalog fetches and token exchange.
package logging
