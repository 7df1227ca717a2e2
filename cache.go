package mathmark

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// renderCache memoizes rendered output by input text. Concurrent misses on
// the same text share one render.
type renderCache struct {
	entries *lru.Cache[string, string]
	group   singleflight.Group
}

func newRenderCache(size int) (*renderCache, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCacheSize, size)
	}
	entries, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCacheSize, err)
	}
	return &renderCache{entries: entries}, nil
}

func (c *renderCache) get(text string, render func(string) string) string {
	if out, ok := c.entries.Get(text); ok {
		return out
	}
	v, _, _ := c.group.Do(text, func() (any, error) {
		if out, ok := c.entries.Get(text); ok {
			return out, nil
		}
		out := render(text)
		c.entries.Add(text, out)
		return out, nil
	})
	return v.(string)
}

func (c *renderCache) len() int {
	return c.entries.Len()
}
