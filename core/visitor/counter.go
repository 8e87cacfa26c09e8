package visitor

import (
	"encoding/json"
	"sort"
)

// CounterItem is one ranked entry of a Counter.
type CounterItem struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Counter is an insertion-order-preserving frequency counter. Rankings break
// ties by first-inserted-wins, which requires remembering the order keys
// first appeared, including across a save/load cycle, so the storage
// representation is an ordered list of key/count pairs rather than a JSON
// object.
//
// The zero value is an empty counter ready for use.
type Counter struct {
	counts map[string]int
	order  []string
}

// Inc increments the count for key, registering it on first use.
func (c *Counter) Inc(key string) {
	c.IncBy(key, 1)
}

// IncBy increments the count for key by n.
func (c *Counter) IncBy(key string, n int) {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key] += n
}

// Get returns the count for key, zero if absent.
func (c Counter) Get(key string) int {
	return c.counts[key]
}

// Len returns the number of distinct keys.
func (c Counter) Len() int {
	return len(c.order)
}

// Top returns up to n entries sorted by count descending. Ties keep
// insertion order (stable sort over the first-seen sequence).
func (c Counter) Top(n int) []CounterItem {
	items := make([]CounterItem, 0, len(c.order))
	for _, key := range c.order {
		items = append(items, CounterItem{Key: key, Count: c.counts[key]})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Count > items[j].Count
	})
	if n >= 0 && len(items) > n {
		items = items[:n]
	}
	return items
}

func (c Counter) clone() Counter {
	var out Counter
	for _, key := range c.order {
		out.IncBy(key, c.counts[key])
	}
	return out
}

// MarshalJSON serializes the counter as an ordered list of key/count pairs.
func (c Counter) MarshalJSON() ([]byte, error) {
	items := make([]CounterItem, 0, len(c.order))
	for _, key := range c.order {
		items = append(items, CounterItem{Key: key, Count: c.counts[key]})
	}
	return json.Marshal(items)
}

// UnmarshalJSON rebuilds the counter preserving the stored order.
func (c *Counter) UnmarshalJSON(b []byte) error {
	var items []CounterItem
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	var out Counter
	for _, item := range items {
		out.IncBy(item.Key, item.Count)
	}
	*c = out
	return nil
}
