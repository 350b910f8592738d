// Package gateway implements the authenticated tool gateway boundary: token
// acquisition, a scoped session over the gateway's JSON-RPC tool listing
// operation, paginated catalog assembly and keyword-based capability routing.
//
// A Session is a scoped resource. It must be opened once per request, held
// open for the full lifetime of tool discovery and all node executions that
// use the discovered capabilities, and closed unconditionally on every exit
// path. Closing early invalidates in-flight tool calls.
package gateway
