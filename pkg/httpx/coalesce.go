package httpx

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Coalescer merges concurrent calls that share a key into one execution.
// Every waiting caller receives the same result. It only deduplicates
// in-flight work; nothing is cached once the call returns.
type Coalescer struct {
	group singleflight.Group
}

// NewCoalescer returns an empty Coalescer.
func NewCoalescer() *Coalescer {
	return &Coalescer{}
}

// Do runs fn once per key among concurrent callers. fn receives a context
// detached from any single caller's cancellation, so one client going away
// does not fail the others. shared reports whether the result was handed to
// more than one caller.
func (c *Coalescer) Do(ctx context.Context, key string, fn func(context.Context) (any, error)) (v any, shared bool, err error) {
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		return fn(detached)
	})

	select {
	case res := <-ch:
		return res.Val, res.Shared, res.Err
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}
