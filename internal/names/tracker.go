// Package names tracks airspace titles seen by a writer session and flags
// duplicates. Titles are hashed with xxhash
// instead of compared by raw string to keep the check O(1) regardless of
// title length, and held in a TTL-bounded cache so a long-running writer
// streaming thousands of airspaces doesn't grow the tracker unbounded;
// a duplicate only matters as a near-neighbor in the output stream, not
// across the whole lifetime of the process.
package names

import (
	"time"

	"github.com/cespare/xxhash/v2"
	cache "github.com/patrickmn/go-cache"
)

// DefaultWindow is the duration a seen title remains eligible to be
// flagged as a duplicate of a later one.
const DefaultWindow = 10 * time.Minute

// Tracker flags airspace titles that repeat within its tracking window.
type Tracker struct {
	seen *cache.Cache
}

// NewTracker creates a Tracker whose entries expire after window (and are
// swept at 2*window, go-cache's own janitor cadence).
func NewTracker(window time.Duration) *Tracker {
	return &Tracker{seen: cache.New(window, 2*window)}
}

// Seen records title and reports whether it had already been seen within
// the tracker's window.
func (t *Tracker) Seen(title string) bool {
	id := formatKey(xxhash.Sum64String(title))
	if _, found := t.seen.Get(id); found {
		return true
	}

	t.seen.SetDefault(id, title)

	return false
}

// Count returns the number of distinct titles currently tracked.
func (t *Tracker) Count() int {
	return t.seen.ItemCount()
}

func formatKey(h uint64) string {
	const hexDigits = "0123456789abcdef"

	var buf [16]byte
	for i := 15; i >= 0; i-- {
		buf[i] = hexDigits[h&0xF]
		h >>= 4
	}

	return string(buf[:])
}
