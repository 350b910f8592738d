// Package testutil contains helper builders and stub nodes used across tests
// to reduce boilerplate when constructing invocation results and small
// graphs. These helpers are intentionally minimal and not intended for
// production usage.
package testutil
