// Package season tracks the next episode number per (series, season)
// across the discs of one run.
package season

import "sync"

// Key identifies one (series, season) pair. Series is the normalized
// series key; HasSeason is false for shows ripped without season folders.
type Key struct {
	Series    string
	Season    int
	HasSeason bool
}

// Counter hands out the next episode number per key. Values only ever
// increase and are never reset mid-run. The mutex makes concurrent disc
// processing of different keys safe; discs of the same key must still be
// advanced in disc order by the caller.
type Counter struct {
	mu   sync.Mutex
	next map[Key]int
}

// NewCounter returns an empty counter.
func NewCounter() *Counter {
	return &Counter{next: make(map[Key]int)}
}

// Next returns the next episode number to assign for key, defaulting to 1
// for keys that have not been seen.
func (c *Counter) Next(key Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n, ok := c.next[key]; ok {
		return n
	}
	return 1
}

// Advance moves the key's counter forward by delta, the number of episode
// slots a disc actually consumed. Negative deltas are ignored: the
// counter is monotonic.
func (c *Counter) Advance(key Key, delta int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if delta < 0 {
		delta = 0
	}
	current, ok := c.next[key]
	if !ok {
		current = 1
	}
	current += delta
	c.next[key] = current
	return current
}

// Snapshot returns a copy of the current counter state.
func (c *Counter) Snapshot() map[Key]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[Key]int, len(c.next))
	for k, v := range c.next {
		out[k] = v
	}
	return out
}
