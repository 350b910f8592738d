package gateway

import "strings"

// Routed is the outcome of partitioning a catalog by keyword affinity.
type Routed struct {
	Keyword      string
	Capabilities []Capability
	// FellBack reports that no capability matched and the entire catalog
	// was assigned instead. Callers must log this so operators can detect
	// catalog drift; it is a permissive default, not silent data loss.
	FellBack bool
}

// Route returns the capabilities whose display name contains keyword
// (case-insensitive), preserving catalog order. An empty match falls back to
// the entire catalog, never an empty set.
func Route(catalog Catalog, keyword string) Routed {
	needle := strings.ToLower(keyword)
	var matched []Capability
	for _, cap := range catalog {
		if strings.Contains(strings.ToLower(cap.Name), needle) {
			matched = append(matched, cap)
		}
	}
	if len(matched) == 0 {
		return Routed{Keyword: keyword, Capabilities: append(Catalog(nil), catalog...), FellBack: true}
	}
	return Routed{Keyword: keyword, Capabilities: matched}
}
