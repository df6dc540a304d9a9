package bocop

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/san-kum/bocop/internal/interp"
)

// Cache memoizes interpolants per variable and options. It is safe for
// concurrent use.
type Cache struct {
	items *cache.Cache
}

// NewCache keeps entries for ttl; a non-positive ttl keeps them forever.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		return &Cache{items: cache.New(cache.NoExpiration, 0)}
	}
	return &Cache{items: cache.New(ttl, 2*ttl)}
}

// entry holds the variable it was built from. A different variable under the
// same kind and name is a miss and replaces the entry.
type entry struct {
	v *Variable
	f interp.Interpolant
}

func cacheKey(v *Variable, opts interp.Options) string {
	return fmt.Sprintf("%s|%s|%s|%t|%g|%t|%d", v.Kind, v.Name, opts.Mode, opts.Extrapolate, opts.Tolerance, opts.Normalize, opts.MedianWindow)
}

// Interpolant returns the cached interpolant of v, building it on a miss.
func (c *Cache) Interpolant(v *Variable, opts interp.Options) (interp.Interpolant, error) {
	key := cacheKey(v, opts)
	if e, ok := c.items.Get(key); ok && e.(entry).v == v {
		return e.(entry).f, nil
	}

	slog.Debug("interpolant cache miss", "variable", v.String(), "mode", opts.Mode)
	f, err := v.Interpolate(opts)
	if err != nil {
		return nil, err
	}
	c.items.SetDefault(key, entry{v: v, f: f})
	return f, nil
}

func (c *Cache) Len() int { return c.items.ItemCount() }

func (c *Cache) Flush() { c.items.Flush() }
