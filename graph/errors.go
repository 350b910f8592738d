package graph

import "fmt"

// ValidationError reports a malformed graph construction. It is a
// programming error and surfaces at build time, never at run time.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return "graph validation: " + e.Msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NodeExecutionError reports that one node's underlying agent invocation
// failed. It carries the node id and the underlying cause; the cause is
// never swallowed.
type NodeExecutionError struct {
	Node  string
	Cause error
}

func (e *NodeExecutionError) Error() string {
	return fmt.Sprintf("node %q execution failed: %v", e.Node, e.Cause)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *NodeExecutionError) Unwrap() error { return e.Cause }
