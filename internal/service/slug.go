package service

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugger generates unique, URL-safe article slugs: the lowercased title
// with non-alphanumerics collapsed to hyphens, suffixed with the creation
// timestamp in milliseconds. The timestamp monotonically advances within a
// process, so two articles with identical titles always get distinct slugs
// even when created in the same millisecond.
type Slugger struct {
	mu   sync.Mutex
	last int64
}

// NewSlugger creates a Slugger.
func NewSlugger() *Slugger {
	return &Slugger{}
}

// Slug derives a new unique slug from the title.
func (s *Slugger) Slug(title string) string {
	base := slugStrip.ReplaceAllString(strings.ToLower(title), "-")
	base = strings.Trim(base, "-")

	s.mu.Lock()
	now := time.Now().UnixMilli()
	if now <= s.last {
		now = s.last + 1
	}
	s.last = now
	s.mu.Unlock()

	if base == "" {
		return strconv.FormatInt(now, 10)
	}
	return base + "-" + strconv.FormatInt(now, 10)
}
