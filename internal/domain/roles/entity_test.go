package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	r, err := Parse(" Researcher ")
	require.NoError(t, err)
	assert.Equal(t, Researcher, r)

	_, err = Parse("admiral")
	assert.ErrorIs(t, err, ErrUnknownRole)

	_, err = Parse("")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestDefaultIsFisheries(t *testing.T) {
	assert.Equal(t, Fisheries, Default)
	assert.True(t, Default.Valid())
}

func TestProfilesFollowSwitcherOrder(t *testing.T) {
	ps := Profiles()
	require.Len(t, ps, 3)
	for i, r := range All() {
		assert.Equal(t, r, ps[i].Role)
		assert.NotEmpty(t, ps[i].Name)
		assert.NotEmpty(t, ps[i].Headline)
	}

	p, ok := ProfileOf(Researcher)
	require.True(t, ok)
	assert.Equal(t, "Scientific Research Workbench", p.Headline)

	_, ok = ProfileOf(Role("x"))
	assert.False(t, ok)
}
