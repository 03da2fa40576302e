package cache

import "time"

// CacheService defines the behavior for caching mechanisms
type CacheService interface {
	// Get retrieves a value from the cache
	// Returns value, true if found
	// Returns nil, false if not found
	Get(key string) (interface{}, bool)

	// Set adds a value to the cache with a duration
	Set(key string, value interface{}, duration time.Duration)

	// Delete removes a value from the cache
	Delete(key string)

	// Flush removes all items
	Flush()

	// ItemCount reports how many items are cached, expired ones included
	ItemCount() int
}

// Memoize returns the value cached under key, computing and storing it on a
// miss. A nil service always computes.
func Memoize[T any](c CacheService, key string, ttl time.Duration, compute func() T) T {
	if c == nil {
		return compute()
	}
	if val, found := c.Get(key); found {
		if typed, ok := val.(T); ok {
			return typed
		}
	}
	val := compute()
	c.Set(key, val, ttl)
	return val
}
