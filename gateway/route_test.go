package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleCatalog() Catalog {
	return Catalog{
		{Name: "slack___get_messages"},
		{Name: "tavily___search"},
		{Name: "slack___post_message"},
		{Name: "tavily___extract"},
	}
}

func TestRoute_PartitionsByKeyword(t *testing.T) {
	catalog := sampleCatalog()

	slack := Route(catalog, "slack")
	assert.False(t, slack.FellBack)
	assert.Equal(t, []string{"slack___get_messages", "slack___post_message"}, Catalog(slack.Capabilities).Names())

	tavily := Route(catalog, "tavily")
	assert.False(t, tavily.FellBack)
	assert.Equal(t, []string{"tavily___search", "tavily___extract"}, Catalog(tavily.Capabilities).Names())
}

func TestRoute_CaseInsensitive(t *testing.T) {
	catalog := Catalog{{Name: "Slack___Get_Messages"}}

	routed := Route(catalog, "SLACK")
	assert.False(t, routed.FellBack)
	assert.Len(t, routed.Capabilities, 1)
}

func TestRoute_FallbackOnNoMatch(t *testing.T) {
	catalog := sampleCatalog()

	routed := Route(catalog, "github")
	assert.True(t, routed.FellBack)
	// Fallback is the whole catalog in original order, not an empty set.
	assert.Equal(t, catalog.Names(), Catalog(routed.Capabilities).Names())
}

func TestRoute_FallbackIsACopy(t *testing.T) {
	catalog := sampleCatalog()

	routed := Route(catalog, "nomatch")
	routed.Capabilities[0].Name = "mutated"
	assert.Equal(t, "slack___get_messages", catalog[0].Name)
}

func TestRoute_PreservesCatalogOrder(t *testing.T) {
	catalog := Catalog{
		{Name: "tavily___extract"},
		{Name: "slack___get_messages"},
		{Name: "tavily___search"},
	}

	routed := Route(catalog, "tavily")
	assert.Equal(t, []string{"tavily___extract", "tavily___search"}, Catalog(routed.Capabilities).Names())
}
