package toml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/cfpwatch"
	"github.com/fwojciec/cfpwatch/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[[venues]]
name = "IEEE Network"
base = "https://www.comsoc.org"
url = "https://www.comsoc.org/publications/magazines/ieee-network/cfp"
element = '<div  class="main-content main-content--with-sidebar">'
content = '<div class="field--name-body">'

[[venues]]
name = "IEEE Wireless Communications"
url = "https://www.comsoc.org/publications/magazines/ieee-wireless-communications/cfp"
enabled = false

[[venues]]
name = ""
url = ""
`

func TestDecodeVenues(t *testing.T) {
	t.Parallel()

	venues, warnings, err := toml.DecodeVenues(sample)
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "#3")

	v := venues[0]
	assert.Equal(t, "IEEE Network", v.Name)
	assert.Equal(t, "https://www.comsoc.org", v.BaseURL())
	require.NotNil(t, v.Element)
	assert.Equal(t, "div", v.Element.Tag())
	assert.Equal(t, []string{"main-content", "main-content--with-sidebar"}, v.Element.Classes())
	require.NotNil(t, v.Content)
	assert.Equal(t, []string{"field--name-body"}, v.Content.Classes())
}

func TestDecodeVenues_NoElementMeansWholePage(t *testing.T) {
	t.Parallel()

	venues, _, err := toml.DecodeVenues(`
[[venues]]
name = "plain"
url = "https://example.com/cfp"
`)
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Nil(t, venues[0].Element)
	assert.Nil(t, venues[0].Content)
}

func TestDecodeVenues_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{
			name: "malformed toml",
			data: `[[venues]`,
		},
		{
			name: "bad selector",
			data: `
[[venues]]
name = "a"
url = "https://example.com/cfp"
element = "not a tag"
`,
		},
		{
			name: "relative url",
			data: `
[[venues]]
name = "a"
url = "/cfp"
`,
		},
		{
			name: "duplicate name",
			data: `
[[venues]]
name = "a"
url = "https://example.com/one"

[[venues]]
name = "a"
url = "https://example.com/two"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := toml.DecodeVenues(tt.data)
			require.Error(t, err)
			assert.Equal(t, cfpwatch.EINVALID, cfpwatch.ErrorCode(err))
		})
	}
}

func TestLoadVenues(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "venues.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	venues, _, err := toml.LoadVenues(path)
	require.NoError(t, err)
	assert.Len(t, venues, 1)
}

func TestLoadVenues_MissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := toml.LoadVenues(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestVenueConfig_IsEnabled(t *testing.T) {
	t.Parallel()

	yes, no := true, false
	assert.True(t, toml.VenueConfig{}.IsEnabled())
	assert.True(t, toml.VenueConfig{Enabled: &yes}.IsEnabled())
	assert.False(t, toml.VenueConfig{Enabled: &no}.IsEnabled())
}
