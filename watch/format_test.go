package watch_test

import (
	"testing"

	"github.com/fwojciec/cfpwatch"
	"github.com/fwojciec/cfpwatch/watch"
	"github.com/stretchr/testify/assert"
)

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	const long = "https://www.comsoc.org/publications/journals/ieee-twc/cfp/isac"

	tests := []struct {
		name   string
		url    string
		maxLen int
		want   string
	}{
		{"shorter than max", "https://x.com", 50, "https://x.com"},
		{"exactly max", "https://x.com", 13, "https://x.com"},
		{"keeps the tail", long, 20, "...ieee-twc/cfp/isac"},
		{"zero max", long, 0, ""},
		{"negative max", long, -1, ""},
		{"too small for ellipsis", long, 3, "htt"},
		{"short url small max", "ab", 3, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := watch.TruncateURL(tt.url, tt.maxLen)

			assert.Equal(t, tt.want, got)
			if tt.maxLen > 0 {
				assert.LessOrEqual(t, len(got), tt.maxLen)
			}
		})
	}
}

func TestComputeHash(t *testing.T) {
	t.Parallel()

	page := `<div class="main-content"><a href="/cfp/6g">6G</a></div>`

	assert.Equal(t, watch.ComputeHash(page), watch.ComputeHash(page))
	assert.NotEqual(t, watch.ComputeHash(page), watch.ComputeHash(page+" "))
	assert.Regexp(t, `^[0-9a-f]+$`, watch.ComputeHash(page))
}

func TestFormatScore(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "4/4", watch.FormatScore(4))
	assert.Equal(t, "0/4", watch.FormatScore(0))
	assert.Equal(t, "-", watch.FormatScore(cfpwatch.NoScore))
}
