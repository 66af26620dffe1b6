// Package cache provides a small in-process LRU cache with stampede protection.
//
// GetOrSet computes a missing value once, even when many goroutines ask for
// the same key at the same time:
//
//	c, _ := cache.NewLRU[*urlmatcher.PatternMatcher](512)
//	m, err := c.GetOrSet(key, func() (*urlmatcher.PatternMatcher, error) {
//	    return compile(pattern)
//	})
//
// Failed computations are not cached.
package cache
