package bocop

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/bocop/internal/interp"
)

// InterpolateAll builds an interpolant for every variable of b in parallel.
// The first failure cancels the remaining builds.
func InterpolateAll(ctx context.Context, b *Bunch, opts interp.Options) (map[string]interp.Interpolant, error) {
	return interpolateAll(ctx, b, func(v *Variable) (interp.Interpolant, error) {
		return v.Interpolate(opts)
	})
}

// InterpolateAll is the cached form of the package-level InterpolateAll.
func (c *Cache) InterpolateAll(ctx context.Context, b *Bunch, opts interp.Options) (map[string]interp.Interpolant, error) {
	return interpolateAll(ctx, b, func(v *Variable) (interp.Interpolant, error) {
		return c.Interpolant(v, opts)
	})
}

func interpolateAll(ctx context.Context, b *Bunch, build func(*Variable) (interp.Interpolant, error)) (map[string]interp.Interpolant, error) {
	vars := b.Variables()
	results := make([]interp.Interpolant, len(vars))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, v := range vars {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := build(v)
			if err != nil {
				return err
			}
			results[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]interp.Interpolant, len(vars))
	for i, v := range vars {
		out[v.Name] = results[i]
	}
	return out, nil
}
