package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
)

func TestMemoryDatasetLookup(t *testing.T) {
	m := NewBuiltin()
	ctx := context.Background()

	d, err := m.Dataset(ctx, "sst_north_pacific")
	require.NoError(t, err)
	assert.Equal(t, catalog.CategoryEnvironmental, d.Category)

	_, err = m.Dataset(ctx, "kelp_forest")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestMemoryReplaceRejectsInvalid(t *testing.T) {
	m := NewBuiltin()
	bad := Builtin()
	bad.Datasets = append(bad.Datasets, bad.Datasets[0])

	assert.ErrorIs(t, m.Replace(bad), catalog.ErrInvalid)
	ds, _ := m.Datasets(context.Background())
	assert.Len(t, ds, 6)
}

func TestMemoryReturnsCopies(t *testing.T) {
	m := NewBuiltin()
	ctx := context.Background()

	as, _ := m.Alerts(ctx)
	as[0].RelevantRoles[0] = "nobody"
	as2, _ := m.Alerts(ctx)
	assert.NotEqual(t, "nobody", string(as2[0].RelevantRoles[0]))
}

func TestMemoryCheck(t *testing.T) {
	assert.NoError(t, NewBuiltin().Check(context.Background()))

	empty, err := NewMemory(catalog.Catalog{})
	require.NoError(t, err)
	assert.Error(t, empty.Check(context.Background()))
}
