package gateway

// Capability is a single externally invocable operation exposed by the
// gateway. Read-only once fetched.
type Capability struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"inputSchema,omitempty"`
}

// Catalog is the ordered set of capabilities available for a session. It is
// assembled incrementally across paginated fetches and immutable afterwards.
type Catalog []Capability

// Names returns the capability display names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, cap := range c {
		names[i] = cap.Name
	}
	return names
}

// Len returns the number of capabilities in the catalog.
func (c Catalog) Len() int { return len(c) }
