package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/marineiq/internal/domain/roles"
)

func ids(ws []Widget) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.ID
	}
	return out
}

func TestForRole(t *testing.T) {
	assert.Equal(t, []string{"fleet-status", "top-species", "effort-catch"}, ids(ForRole(roles.Fisheries)))
	assert.Equal(t, []string{"conservation-status", "edna-diversity", "ecosystem-health"}, ids(ForRole(roles.Biodiversity)))
	assert.Equal(t, []string{"research-analytics", "multi-parameter", "data-integration"}, ids(ForRole(roles.Researcher)))
	assert.Nil(t, ForRole(roles.Role("guest")))
}

func TestForRoleIsPure(t *testing.T) {
	a := ForRole(roles.Fisheries)
	a[1].Series[0].Points[0].Y = -1
	b := ForRole(roles.Fisheries)
	assert.Equal(t, 7000.0, b[1].Series[0].Points[0].Y)
}

func TestMultiParameterUsesSecondaryAxis(t *testing.T) {
	w, err := Find(roles.Researcher, "multi-parameter")
	require.NoError(t, err)
	require.Len(t, w.Series, 2)
	assert.Equal(t, AxisSecondary, w.Series[1].Axis)
	assert.Len(t, w.Series[1].Points, 12)
	assert.Equal(t, 29.4, w.Series[1].Points[7].Y)
	require.NotNil(t, w.Y2Range)
	assert.Equal(t, Range{Min: 25, Max: 30}, *w.Y2Range)
}

func TestFindUnknown(t *testing.T) {
	_, err := Find(roles.Fisheries, "multi-parameter")
	assert.ErrorIs(t, err, ErrUnknownWidget)
}

func TestChartKinds(t *testing.T) {
	for _, r := range roles.All() {
		for _, w := range ForRole(r) {
			if w.Kind.Chart() {
				assert.NotEmpty(t, w.Series, w.ID)
			}
		}
	}
	assert.False(t, KindStats.Chart())
	assert.False(t, KindSummary.Chart())
}
