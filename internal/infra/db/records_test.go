package db

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/marineiq/internal/domain/roles"
	infracat "github.com/bryanwahyu/marineiq/internal/infra/catalog"
)

func TestRowsMapBackToCatalog(t *testing.T) {
	c := infracat.Builtin()

	ds := Datasets(DatasetRows(c.Datasets))
	as, err := Alerts(AlertRows(c.Alerts))
	require.NoError(t, err)
	rs := Regions(RegionRows(c.Regions))

	if diff := cmp.Diff(c.Datasets, ds); diff != "" {
		t.Errorf("datasets (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(c.Alerts, as); diff != "" {
		t.Errorf("alerts (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(c.Regions, rs); diff != "" {
		t.Errorf("regions (-want +got):\n%s", diff)
	}
}

func TestRowPositionsFollowCatalogOrder(t *testing.T) {
	rows := AlertRows(infracat.Builtin().Alerts)
	for i, r := range rows {
		assert.Equal(t, i, r.Position)
	}
	assert.Equal(t, "biodiversity,researcher", rows[1].RelevantRoles)
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, AlertKeys(rows))
}

func TestSplitRoles(t *testing.T) {
	got, err := SplitRoles("fisheries, researcher,")
	require.NoError(t, err)
	assert.Equal(t, []roles.Role{roles.Fisheries, roles.Researcher}, got)

	_, err = SplitRoles("fisheries,pirate")
	assert.ErrorIs(t, err, roles.ErrUnknownRole)

	got, err = SplitRoles("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = AlertRow{ID: "9", RelevantRoles: "pirate"}.Domain()
	assert.Error(t, err)
}
