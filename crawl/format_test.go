package crawl_test

import (
	"testing"
	"time"

	"github.com/fwojciec/sitesnap/crawl"
	"github.com/stretchr/testify/assert"
)

func TestDisplayPath(t *testing.T) {
	t.Parallel()

	t.Run("shows only the path of a URL", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "/about/team", crawl.DisplayPath("https://example.org/about/team", 50))
	})

	t.Run("shows slash for the site root", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "/", crawl.DisplayPath("https://example.org", 50))
	})

	t.Run("keeps the end of long paths", func(t *testing.T) {
		t.Parallel()
		result := crawl.DisplayPath("https://example.org/very/long/path/to/resources", 16)
		assert.Equal(t, ".../to/resources", result)
		assert.Len(t, result, 16)
	})

	t.Run("returns empty string when maxLen is not positive", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.DisplayPath("https://example.org/a", 0))
		assert.Empty(t, crawl.DisplayPath("https://example.org/a", -1))
	})

	t.Run("returns a prefix when maxLen is very small", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "/ab", crawl.DisplayPath("https://example.org/abc", 3))
	})
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	t.Run("formats bytes as B", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "512 B", crawl.FormatBytes(512))
	})

	t.Run("formats kilobytes as KB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "1.5 KB", crawl.FormatBytes(1536))
	})

	t.Run("formats megabytes as MB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "2.0 MB", crawl.FormatBytes(2*1024*1024))
	})
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	r := &crawl.Result{Saved: 3, Failed: 1, Skipped: 2, Bytes: 2048}
	assert.Equal(t, "Saved 3 pages (2.0 KB), 1 failed, 2 skipped in 1.5s",
		crawl.FormatSummary(r, 1500*time.Millisecond))
}
