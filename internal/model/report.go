package model

import (
	"fmt"
	"sort"
	"time"
)

// Scope selects which messages a report covers. A zero Year means all time.
type Scope struct {
	Year int
}

// AllTime reports whether the scope covers every message.
func (s Scope) AllTime() bool {
	return s.Year == 0
}

// Label returns the human-readable scope, e.g. "2025" or "all time".
func (s Scope) Label() string {
	if s.AllTime() {
		return "all time"
	}
	return fmt.Sprintf("%d", s.Year)
}

// YearMonth is a monthly histogram key. In a year-scoped report Year always
// equals the scope year.
type YearMonth struct {
	Year  int
	Month time.Month
}

// Before orders keys chronologically.
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// String renders the key as "March 2025".
func (ym YearMonth) String() string {
	return fmt.Sprintf("%s %d", ym.Month, ym.Year)
}

// MonthlyStats holds the message count of one histogram bucket.
type MonthlyStats struct {
	Key      YearMonth
	Messages int
}

// ModelStats holds the number of assistant messages attributed to one model.
type ModelStats struct {
	Model        string
	Messages     int
	SharePercent float64
}

// RoleStats holds message and character totals for one role.
type RoleStats struct {
	Messages int
	Chars    int
}

// Report is the aggregate computed for one scope. It is derived, never stored.
type Report struct {
	Scope              Scope
	TotalConversations int
	TotalMessages      int

	User      RoleStats
	Assistant RoleStats

	Monthly []MonthlyStats // ascending by key, months without messages are absent
	Models  []ModelStats   // descending by count, ties in first-seen order

	// AvgPerConversation is nil when there are no conversations.
	AvgPerConversation *float64
}

// UsageCounter counts occurrences per key and remembers first-seen order so
// that ties sort deterministically.
type UsageCounter struct {
	order  []string
	counts map[string]int
}

// NewUsageCounter returns an empty counter.
func NewUsageCounter() *UsageCounter {
	return &UsageCounter{counts: make(map[string]int)}
}

// Add increments key by one.
func (c *UsageCounter) Add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// Count returns the count recorded for key.
func (c *UsageCounter) Count(key string) int {
	return c.counts[key]
}

// Total returns the sum of all counts.
func (c *UsageCounter) Total() int {
	n := 0
	for _, v := range c.counts {
		n += v
	}
	return n
}

// Sorted returns per-key stats, descending by count with ties kept in
// first-seen order.
func (c *UsageCounter) Sorted() []ModelStats {
	total := c.Total()
	out := make([]ModelStats, 0, len(c.order))
	for _, k := range c.order {
		ms := ModelStats{Model: k, Messages: c.counts[k]}
		if total > 0 {
			ms.SharePercent = float64(ms.Messages) / float64(total) * 100
		}
		out = append(out, ms)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Messages > out[j].Messages
	})
	return out
}
