// Package sf wraps golang.org/x/sync/singleflight with a typed result, so
// concurrent calls for the same key collapse into one execution without
// callers casting the shared result.
package sf

import "golang.org/x/sync/singleflight"

// Group deduplicates concurrent calls with the same key. While a call for a
// key is in flight, later callers block and receive the first call's result
// instead of executing fn again.
type Group[T any] struct {
	group singleflight.Group
}

// Do executes fn for key unless a call for key is already in flight, in
// which case it waits for and returns that call's result.
func (g *Group[T]) Do(key string, fn func() (*T, error)) (*T, error) {
	v, err, _ := g.group.Do(key, func() (any, error) {
		return fn()
	})
	if err != nil {
		return nil, err
	}
	return v.(*T), nil
}
