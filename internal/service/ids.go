package service

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// IDGenerator issues "<prefix>-<6 digits>" identifiers from the clock's
// epoch milliseconds. Within one process it never reuses a millisecond: a
// call landing on or before the last issued one is bumped forward.
type IDGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewIDGenerator returns a generator reading time from now, or time.Now if nil.
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Now returns the generator's current time.
func (g *IDGenerator) Now() time.Time {
	return g.now()
}

// Next returns a new identifier for prefix.
func (g *IDGenerator) Next(prefix string) string {
	g.mu.Lock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	g.mu.Unlock()

	return fmt.Sprintf("%s-%06d", prefix, ms%1_000_000)
}

// CategoryCode returns the upper-cased first three characters of category,
// or "GEN" when it is blank.
func CategoryCode(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return "GEN"
	}
	r := []rune(category)
	if len(r) > 3 {
		r = r[:3]
	}
	return strings.ToUpper(string(r))
}

// YearPrefix returns "<kind>-<year>", as in "PR-2026".
func YearPrefix(kind string, t time.Time) string {
	return fmt.Sprintf("%s-%d", kind, t.Year())
}
