package gateway

import (
	"errors"
	"fmt"
)

// ErrEmptyCatalog signals that the gateway returned zero capabilities and no
// continuation cursor. Callers must treat this as fatal for the request
// rather than looping or silently proceeding without tools.
var ErrEmptyCatalog = errors.New("gateway returned no capabilities")

// ErrSessionClosed signals use of a Session after Close.
var ErrSessionClosed = errors.New("gateway session is closed")

// CatalogError wraps any failure to assemble the tool catalog (transport
// errors, malformed listings, emptiness). Fatal for the request.
type CatalogError struct {
	Cause error
}

func (e *CatalogError) Error() string { return fmt.Sprintf("catalog error: %v", e.Cause) }

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *CatalogError) Unwrap() error { return e.Cause }

// PaginationOverflowError signals that the remote listing kept returning
// continuation cursors past the defensive page cap.
type PaginationOverflowError struct {
	Pages int
}

func (e *PaginationOverflowError) Error() string {
	return fmt.Sprintf("tool listing exceeded %d pages without terminating", e.Pages)
}
