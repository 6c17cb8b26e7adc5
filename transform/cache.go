package transform

// GuessCache stores the last accepted root of an implicit solve, keyed by
// dependent state name, as the warm-start guess for the next call.
// It is not safe for concurrent use; neither is the transform owning it.
type GuessCache struct {
	vals map[string]float64
}

// NewGuessCache returns an empty cache.
func NewGuessCache() *GuessCache {
	return &GuessCache{vals: make(map[string]float64)}
}

// Len reports the number of cached entries.
func (c *GuessCache) Len() int { return len(c.vals) }

// Get looks up a cached guess by name.
func (c *GuessCache) Get(name string) (float64, bool) {
	v, ok := c.vals[name]
	return v, ok
}

// Set replaces the cached entries wholesale.
func (c *GuessCache) Set(vals map[string]float64) {
	c.vals = make(map[string]float64, len(vals))
	for n, v := range vals {
		c.vals[n] = v
	}
}

// Reset empties the cache, forcing the next solve to start from its input.
func (c *GuessCache) Reset() {
	c.vals = make(map[string]float64)
}
