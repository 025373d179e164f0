package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bryanwahyu/marineiq/internal/domain/roles"
)

func alertIDs(as []Alert) []string {
	ids := make([]string, 0, len(as))
	for _, a := range as {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestFilterAlertsKeepsOrder(t *testing.T) {
	c := fixture()
	assert.Equal(t, []string{"1", "3"}, alertIDs(FilterAlerts(c.Alerts, roles.Fisheries)))
	assert.Equal(t, []string{"2"}, alertIDs(FilterAlerts(c.Alerts, roles.Biodiversity)))
	assert.Equal(t, []string{"1"}, alertIDs(FilterAlerts(c.Alerts, roles.Researcher)))
	assert.Empty(t, FilterAlerts(c.Alerts, roles.Role("nobody")))
}

func TestExcludeDataset(t *testing.T) {
	c := fixture()
	out := ExcludeDataset(c.Datasets, "b")
	assert.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "c", out[1].ID)

	assert.Len(t, ExcludeDataset(c.Datasets, ""), 3)
}
