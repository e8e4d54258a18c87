package crawl_test

import (
	"context"
	"sync"
	"testing"

	"github.com/fwojciec/sitesnap"
	"github.com/fwojciec/sitesnap/crawl"
	"github.com/fwojciec/sitesnap/goquery"
	"github.com/fwojciec/sitesnap/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// site serves pages from a map and records the order of fetches.
type site struct {
	mu      sync.Mutex
	pages   map[string]string
	fetched []string
}

func (s *site) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.fetched = append(s.fetched, url)
			html, ok := s.pages[url]
			if !ok {
				return "", sitesnap.Errorf(sitesnap.EFETCH, "status 404 for %s", url)
			}
			return html, nil
		},
		CloseFn: func() error { return nil },
	}
}

func links(hrefs ...string) string {
	html := "<html><body><main>"
	for _, h := range hrefs {
		html += `<a href="` + h + `">link</a>`
	}
	return html + "</main></body></html>"
}

func newDiscoverer(t *testing.T, s *site) *crawl.Discoverer {
	t.Helper()
	le, err := goquery.NewLinkExtractor(nil)
	require.NoError(t, err)
	return &crawl.Discoverer{Fetcher: s.fetcher(), Links: le}
}

// shape converts a tree into nested maps for comparison.
func shape(n *sitesnap.SiteNode) map[string]any {
	children := map[string]any{}
	for _, c := range n.Children {
		children[c.URL] = shape(c)[c.URL]
	}
	return map[string]any{n.URL: children}
}

func TestDiscoverer_Discover(t *testing.T) {
	t.Parallel()

	t.Run("keeps nested links and drops links outside the root path", func(t *testing.T) {
		t.Parallel()

		s := &site{pages: map[string]string{
			"https://example.org/a":   links("/a/b", "/other"),
			"https://example.org/a/b": links(),
		}}
		d := newDiscoverer(t, s)

		root, err := d.Discover(context.Background(), "https://example.org/a", "/a")

		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"https://example.org/a": map[string]any{
				"https://example.org/a/b": map[string]any{},
			},
		}, shape(root))
		assert.NotContains(t, s.fetched, "https://example.org/other")
	})

	t.Run("terminates on link cycles and visits each page once", func(t *testing.T) {
		t.Parallel()

		s := &site{pages: map[string]string{
			"https://example.org/a":   links("/a/b"),
			"https://example.org/a/b": links("/a", "/a/c"),
			"https://example.org/a/c": links("/a/b", "/a/c"),
		}}
		d := newDiscoverer(t, s)

		root, err := d.Discover(context.Background(), "https://example.org/a", "")

		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"https://example.org/a": map[string]any{
				"https://example.org/a/b": map[string]any{
					"https://example.org/a/c": map[string]any{},
				},
			},
		}, shape(root))
		assert.ElementsMatch(t, []string{
			"https://example.org/a",
			"https://example.org/a/b",
			"https://example.org/a/c",
		}, s.fetched)
	})

	t.Run("attaches a page to the first page that discovered it", func(t *testing.T) {
		t.Parallel()

		s := &site{pages: map[string]string{
			"https://example.org/a":   links("/a/b", "/a/c"),
			"https://example.org/a/b": links("/a/c"),
			"https://example.org/a/c": links(),
		}}
		d := newDiscoverer(t, s)

		root, err := d.Discover(context.Background(), "https://example.org/a", "")

		require.NoError(t, err)
		require.Len(t, root.Children, 2)
		assert.Empty(t, root.Children[0].Children)
		assert.Equal(t, 3, root.Len())
	})

	t.Run("sorts children lexicographically", func(t *testing.T) {
		t.Parallel()

		s := &site{pages: map[string]string{
			"https://example.org/a": links("/a/z", "/a/m", "/a/b"),
		}}
		d := newDiscoverer(t, s)

		root, err := d.Discover(context.Background(), "https://example.org/a", "")

		require.NoError(t, err)
		var got []string
		for _, c := range root.Children {
			got = append(got, c.URL)
		}
		assert.Equal(t, []string{
			"https://example.org/a/b",
			"https://example.org/a/m",
			"https://example.org/a/z",
		}, got)
	})

	t.Run("skips blocked extensions case-insensitively", func(t *testing.T) {
		t.Parallel()

		s := &site{pages: map[string]string{
			"https://example.org/a":   links("/a/report.PDF", "/a/data.csv", "/a/b"),
			"https://example.org/a/b": links(),
		}}
		d := newDiscoverer(t, s)

		root, err := d.Discover(context.Background(), "https://example.org/a", "")

		require.NoError(t, err)
		require.Len(t, root.Children, 1)
		assert.Equal(t, "https://example.org/a/b", root.Children[0].URL)
	})

	t.Run("ignores other origins", func(t *testing.T) {
		t.Parallel()

		s := &site{pages: map[string]string{
			"https://example.org/a": links("https://other.org/a/b", "http://example.org/a/c"),
		}}
		d := newDiscoverer(t, s)

		root, err := d.Discover(context.Background(), "https://example.org/a", "")

		require.NoError(t, err)
		assert.Empty(t, root.Children)
	})

	t.Run("normalizes fragments and trailing slashes", func(t *testing.T) {
		t.Parallel()

		s := &site{pages: map[string]string{
			"https://example.org/a":   links("/a/b#top", "/a/b/", "/a/b"),
			"https://example.org/a/b": links(),
		}}
		d := newDiscoverer(t, s)

		root, err := d.Discover(context.Background(), "https://example.org/a/", "")

		require.NoError(t, err)
		assert.Equal(t, "https://example.org/a", root.URL)
		require.Len(t, root.Children, 1)
		assert.Equal(t, "https://example.org/a/b", root.Children[0].URL)
	})

	t.Run("keeps pages that fail to fetch as leaves", func(t *testing.T) {
		t.Parallel()

		s := &site{pages: map[string]string{
			"https://example.org/a":   links("/a/missing", "/a/b"),
			"https://example.org/a/b": links(),
		}}
		d := newDiscoverer(t, s)
		var failed []string
		d.Progress = func(e crawl.ProgressEvent) {
			if e.Type == crawl.ProgressFailed {
				failed = append(failed, e.URL)
				assert.Equal(t, sitesnap.EFETCH, sitesnap.ErrorCode(e.Error))
			}
		}

		root, err := d.Discover(context.Background(), "https://example.org/a", "")

		require.NoError(t, err)
		assert.Equal(t, 3, root.Len())
		assert.Equal(t, []string{"https://example.org/a/missing"}, failed)
	})

	t.Run("returns an empty tree when the root cannot be fetched", func(t *testing.T) {
		t.Parallel()

		d := newDiscoverer(t, &site{pages: map[string]string{}})

		root, err := d.Discover(context.Background(), "https://example.org/a", "")

		require.NoError(t, err)
		assert.Equal(t, "https://example.org/a", root.URL)
		assert.Empty(t, root.Children)
	})

	t.Run("visits breadth first by default", func(t *testing.T) {
		t.Parallel()

		s := &site{pages: map[string]string{
			"https://example.org/a":     links("/a/b", "/a/c"),
			"https://example.org/a/b":   links("/a/b/x"),
			"https://example.org/a/c":   links(),
			"https://example.org/a/b/x": links(),
		}}
		d := newDiscoverer(t, s)

		_, err := d.Discover(context.Background(), "https://example.org/a", "")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.org/a",
			"https://example.org/a/b",
			"https://example.org/a/c",
			"https://example.org/a/b/x",
		}, s.fetched)
	})

	t.Run("visits depth first in sorted order", func(t *testing.T) {
		t.Parallel()

		s := &site{pages: map[string]string{
			"https://example.org/a":     links("/a/c", "/a/b"),
			"https://example.org/a/b":   links("/a/b/x"),
			"https://example.org/a/c":   links(),
			"https://example.org/a/b/x": links(),
		}}
		d := newDiscoverer(t, s)
		d.Order = crawl.DepthFirst

		root, err := d.Discover(context.Background(), "https://example.org/a", "")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.org/a",
			"https://example.org/a/b",
			"https://example.org/a/b/x",
			"https://example.org/a/c",
		}, s.fetched)
		assert.Equal(t, 4, root.Len())
	})

	t.Run("builds intermediate path nodes in path tree mode", func(t *testing.T) {
		t.Parallel()

		s := &site{pages: map[string]string{
			"https://example.org/a":       links("/a/x/y/z", "/a/w"),
			"https://example.org/a/x/y/z": links(),
			"https://example.org/a/w":     links(),
		}}
		d := newDiscoverer(t, s)
		d.Mode = crawl.ModePathTree

		root, err := d.Discover(context.Background(), "https://example.org/a", "")

		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"https://example.org/a": map[string]any{
				"https://example.org/a/w": map[string]any{},
				"https://example.org/a/x": map[string]any{
					"https://example.org/a/x/y": map[string]any{
						"https://example.org/a/x/y/z": map[string]any{},
					},
				},
			},
		}, shape(root))
		assert.NotContains(t, s.fetched, "https://example.org/a/x")
	})

	t.Run("uses an explicit root path", func(t *testing.T) {
		t.Parallel()

		s := &site{pages: map[string]string{
			"https://example.org/a/start": links("/a/b", "/c"),
			"https://example.org/a/b":     links(),
		}}
		d := newDiscoverer(t, s)

		root, err := d.Discover(context.Background(), "https://example.org/a/start", "/a")

		require.NoError(t, err)
		assert.Equal(t, "https://example.org/a/start", root.URL)
		require.Len(t, root.Children, 1)
		assert.Equal(t, "https://example.org/a/b", root.Children[0].URL)
	})

	t.Run("reports same-origin links outside the root path", func(t *testing.T) {
		t.Parallel()

		s := &site{pages: map[string]string{
			"https://example.org/a": links("/other", "/more", "/a/b"),
		}}
		d := newDiscoverer(t, s)
		var outside int
		d.Progress = func(e crawl.ProgressEvent) {
			if e.Type == crawl.ProgressCompleted && e.URL == "https://example.org/a" {
				outside = e.Outside
				assert.Equal(t, 1, e.Links)
			}
		}

		_, err := d.Discover(context.Background(), "https://example.org/a", "")

		require.NoError(t, err)
		assert.Equal(t, 2, outside)
	})

	t.Run("rejects an invalid root URL", func(t *testing.T) {
		t.Parallel()

		d := newDiscoverer(t, &site{})

		_, err := d.Discover(context.Background(), "not a url", "")

		assert.Equal(t, sitesnap.EINVALID, sitesnap.ErrorCode(err))
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		d := newDiscoverer(t, &site{pages: map[string]string{
			"https://example.org/a": links(),
		}})

		_, err := d.Discover(ctx, "https://example.org/a", "")

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	m, err := crawl.ParseMode("PathTree")
	require.NoError(t, err)
	assert.Equal(t, crawl.ModePathTree, m)

	m, err = crawl.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, crawl.ModeHierarchy, m)

	_, err = crawl.ParseMode("flat")
	assert.Equal(t, sitesnap.EINVALID, sitesnap.ErrorCode(err))
}

func TestParseOrder(t *testing.T) {
	t.Parallel()

	o, err := crawl.ParseOrder("dfs")
	require.NoError(t, err)
	assert.Equal(t, crawl.DepthFirst, o)

	_, err = crawl.ParseOrder("random")
	assert.Equal(t, sitesnap.EINVALID, sitesnap.ErrorCode(err))
}
