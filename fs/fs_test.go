package fs_test

import (
	"testing"

	"github.com/fwojciec/sitesnap"
	"github.com/fwojciec/sitesnap/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPagePaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		html string
		text string
	}{
		{"nests files under each path segment", "https://example.org/about/team", "html/about/team/team.html", "text/about/team/team.txt"},
		{"maps the site root to index", "https://example.org", "html/index/index.html", "text/index/index.txt"},
		{"maps a bare slash to index", "https://example.org/", "html/index/index.html", "text/index/index.txt"},
		{"ignores trailing slashes", "https://example.org/a/", "html/a/a.html", "text/a/a.txt"},
		{"neutralizes dot segments", "https://example.org/a/../b", "html/a/_/b/b.html", "text/a/_/b/b.txt"},
		{"replaces reserved characters", "https://example.org/a:b", "html/a_b/a_b.html", "text/a_b/a_b.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			html, text, err := fs.PagePaths(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.html, html)
			assert.Equal(t, tt.text, text)
		})
	}

	t.Run("rejects malformed URLs", func(t *testing.T) {
		t.Parallel()
		_, _, err := fs.PagePaths("http://[::1")
		assert.Equal(t, sitesnap.EMALFORMED, sitesnap.ErrorCode(err))
	})
}
