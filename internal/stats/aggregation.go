package stats

import "sort"

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Counter counts string occurrences while remembering first-seen order,
// so that ties in frequency rank deterministically.
type Counter struct {
	counts map[string]int
	order  map[string]int
	next   int
}

// NewCounter creates an empty counter
func NewCounter() *Counter {
	return &Counter{
		counts: make(map[string]int),
		order:  make(map[string]int),
	}
}

// Add records one occurrence of key
func (c *Counter) Add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order[key] = c.next
		c.next++
	}
	c.counts[key]++
}

// AddAll records one occurrence of every key
func (c *Counter) AddAll(keys []string) {
	for _, k := range keys {
		c.Add(k)
	}
}

// Count returns the occurrence count for key
func (c *Counter) Count(key string) int {
	return c.counts[key]
}

// Entry is one (key, count) result of MostCommon
type Entry struct {
	Key   string
	Count int
}

// MostCommon returns the n most frequent keys, highest count first.
// Equal counts keep first-seen order. n <= 0 returns all entries.
func (c *Counter) MostCommon(n int) []Entry {
	entries := make([]Entry, 0, len(c.counts))
	for k, v := range c.counts {
		entries = append(entries, Entry{Key: k, Count: v})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return c.order[entries[i].Key] < c.order[entries[j].Key]
	})

	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
