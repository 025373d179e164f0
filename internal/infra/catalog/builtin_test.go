package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
	"github.com/bryanwahyu/marineiq/internal/domain/roles"
)

func TestBuiltinIsValid(t *testing.T) {
	c := Builtin()
	require.NoError(t, c.Validate())
	assert.Len(t, c.Datasets, 6)
	assert.Len(t, c.Alerts, 6)
	assert.Len(t, c.Regions, 7)
}

func TestBuiltinAlertsPerRole(t *testing.T) {
	want := map[roles.Role][]string{
		roles.Fisheries:    {"1", "3", "6"},
		roles.Biodiversity: {"1", "2", "4", "5", "6"},
		roles.Researcher:   {"1", "2", "3", "4", "5", "6"},
	}
	all := Builtin().Alerts
	for r, ids := range want {
		var got []string
		for _, a := range catalog.FilterAlerts(all, r) {
			got = append(got, a.ID)
		}
		assert.Equal(t, ids, got, r)
	}
}

func TestBuiltinRegionTiers(t *testing.T) {
	m := NewBuiltin()
	rs, err := m.Regions(context.Background())
	require.NoError(t, err)

	tiers := map[string]catalog.ActivityTier{}
	for _, r := range rs {
		tiers[r.Name] = r.Tier()
	}
	assert.Equal(t, catalog.TierHigh, tiers["Indian Ocean"])
	assert.Equal(t, catalog.TierElevated, tiers["North Pacific Ocean"])
	assert.Equal(t, catalog.TierModerate, tiers["Southern Ocean"])
	assert.Equal(t, catalog.TierLow, tiers["Arctic Ocean"])
}
