package core

// MaxBlockDepth bounds recursion when walking nested tool-result blocks.
// The agent runtime's own contract keeps nesting at or below this depth;
// anything deeper is truncated rather than followed.
const MaxBlockDepth = 3

// ContentBlock represents a polymorphic segment of agent output. Concrete
// block types implement the unexported isBlock marker enabling a closed set.
type ContentBlock interface{ isBlock() }

// TextBlock is a plain text output segment.
type TextBlock struct {
	Text string // Plain UTF-8 text
}

// isBlock implements the ContentBlock interface for TextBlock.
func (TextBlock) isBlock() {}

// DataBlock is a structured (JSON-like) output segment.
type DataBlock struct {
	Data map[string]any // Structured key/value payload
}

// isBlock implements the ContentBlock interface for DataBlock.
func (DataBlock) isBlock() {}

// ToolResultBlock wraps the output of a tool invocation. Its sub-blocks are
// themselves text or structured segments (or further tool results, bounded
// by MaxBlockDepth).
type ToolResultBlock struct {
	ToolName string         // Name of the capability that produced the result
	Blocks   []ContentBlock // Ordered nested segments
}

// isBlock implements the ContentBlock interface for ToolResultBlock.
func (ToolResultBlock) isBlock() {}
