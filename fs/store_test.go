package fs_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fwojciec/sitesnap"
	"github.com/fwojciec/sitesnap/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFileStore_Save(t *testing.T) {
	t.Parallel()

	t.Run("writes html and text to the temp directory", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		store := fs.NewFileStore(base, "output")

		err := store.Save(context.Background(), &sitesnap.Page{
			URL:  "https://example.org/about/team",
			HTML: "<main><p>Team</p></main>",
			Text: "Team",
		})

		require.NoError(t, err)
		assert.Equal(t, "<main><p>Team</p></main>", readFile(t, filepath.Join(base, "output.tmp", "html", "about", "team", "team.html")))
		assert.Equal(t, "Team", readFile(t, filepath.Join(base, "output.tmp", "text", "about", "team", "team.txt")))

		_, err = os.Stat(filepath.Join(base, "output"))
		assert.True(t, os.IsNotExist(err), "final directory should not exist until commit")
	})

	t.Run("clears leftovers of an interrupted run", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		stale := filepath.Join(base, "output.tmp", "text", "stale", "stale.txt")
		require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0755))
		require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))
		store := fs.NewFileStore(base, "output")

		require.NoError(t, store.Save(context.Background(), &sitesnap.Page{URL: "https://example.org/a"}))

		_, err := os.Stat(stale)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("is safe for concurrent use", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		store := fs.NewFileStore(base, "output")

		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := store.Save(context.Background(), &sitesnap.Page{
					URL:  fmt.Sprintf("https://example.org/p/%d", i),
					Text: fmt.Sprint(i),
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		require.NoError(t, store.Commit())

		entries, err := fs.ReadManifest(store.Dir())
		require.NoError(t, err)
		assert.Len(t, entries, 20)
	})

	t.Run("returns the context error when cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		store := fs.NewFileStore(t.TempDir(), "output")

		err := store.Save(ctx, &sitesnap.Page{URL: "https://example.org/a"})

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFileStore_Commit(t *testing.T) {
	t.Parallel()

	t.Run("moves the snapshot into place and writes the manifest", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		store := fs.NewFileStore(base, "output")
		require.NoError(t, store.Save(context.Background(), &sitesnap.Page{
			URL:                 "https://example.org/b",
			Title:               "B",
			HTML:                "<p>B</p>",
			Text:                "B",
			ReferencedDocuments: []string{"https://example.org/b.pdf"},
		}))
		require.NoError(t, store.Save(context.Background(), &sitesnap.Page{
			URL:   "https://example.org/a",
			Title: "A",
			Text:  "A",
		}))

		require.NoError(t, store.Commit())

		assert.Equal(t, "B", readFile(t, filepath.Join(base, "output", "text", "b", "b.txt")))
		_, err := os.Stat(filepath.Join(base, "output.tmp"))
		assert.True(t, os.IsNotExist(err), "temp directory should be gone after commit")

		entries, err := fs.ReadManifest(filepath.Join(base, "output"))
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "https://example.org/a", entries[0].URL)
		assert.Equal(t, fs.ManifestEntry{
			URL:                 "https://example.org/b",
			Title:               "B",
			HTML:                "html/b/b.html",
			Text:                "text/b/b.txt",
			Hash:                fs.ContentHash("B"),
			ReferencedDocuments: []string{"https://example.org/b.pdf"},
		}, entries[1])
	})

	t.Run("replaces the previous snapshot entirely", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		first := fs.NewFileStore(base, "output")
		require.NoError(t, first.Save(context.Background(), &sitesnap.Page{URL: "https://example.org/old", Text: "old"}))
		require.NoError(t, first.Commit())

		second := fs.NewFileStore(base, "output")
		require.NoError(t, second.Save(context.Background(), &sitesnap.Page{URL: "https://example.org/new", Text: "new"}))
		require.NoError(t, second.Commit())

		_, err := os.Stat(filepath.Join(base, "output", "text", "old"))
		assert.True(t, os.IsNotExist(err))
		assert.Equal(t, "new", readFile(t, filepath.Join(base, "output", "text", "new", "new.txt")))
	})

	t.Run("writes an empty manifest when nothing was saved", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		store := fs.NewFileStore(base, "output")

		require.NoError(t, store.Commit())

		entries, err := fs.ReadManifest(filepath.Join(base, "output"))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestFileStore_Abort(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewFileStore(base, "output")
	require.NoError(t, store.Save(context.Background(), &sitesnap.Page{URL: "https://example.org/a"}))

	require.NoError(t, store.Abort())

	_, err := os.Stat(filepath.Join(base, "output.tmp"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(base, "output"))
	assert.True(t, os.IsNotExist(err))
}

func TestContentHash(t *testing.T) {
	t.Parallel()

	assert.Equal(t, fs.ContentHash("same"), fs.ContentHash("same"))
	assert.NotEqual(t, fs.ContentHash("a"), fs.ContentHash("b"))
	assert.Regexp(t, `^[0-9a-f]{16}$`, fs.ContentHash("test"))
}
