package crawl_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/sitesnap/crawl"
	"github.com/stretchr/testify/assert"
)

func TestVisitedSet(t *testing.T) {
	t.Parallel()

	t.Run("reports whether a URL was new", func(t *testing.T) {
		t.Parallel()

		v := crawl.NewVisitedSet(10)
		assert.True(t, v.Add("https://example.org/a"))
		assert.False(t, v.Add("https://example.org/a"))
		assert.True(t, v.Has("https://example.org/a"))
		assert.False(t, v.Has("https://example.org/b"))
		assert.Equal(t, 1, v.Len())
	})

	t.Run("stays exact beyond its expected size", func(t *testing.T) {
		t.Parallel()

		v := crawl.NewVisitedSet(1)
		for i := range 500 {
			assert.True(t, v.Add(fmt.Sprintf("https://example.org/p%d", i)))
		}
		for i := 500; i < 1000; i++ {
			assert.False(t, v.Has(fmt.Sprintf("https://example.org/p%d", i)))
		}
		assert.Equal(t, 500, v.Len())
	})
}
