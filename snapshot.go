// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concx

import (
	"container/list"
	"sort"

	"github.com/fxamacker/cbor/v2"
)

// Item is a wire-friendly export of one cache entry: the key, the
// dereferenced value and the entry's access count. Intended for
// application-level dump/restore and warm starts.
type Item[K comparable, V any] struct {
	Key  K
	Val  V
	Freq int
}

// Export serializes the cache contents as CBOR. Entries are emitted in
// ascending frequency order, oldest first within a frequency class, so
// Import can rebuild the exact eviction order.
func (c *LFU[K, V]) Export() ([]byte, error) {
	c.mu.Lock()
	items := make([]Item[K, V], 0, len(c.entries))
	freqs := make([]int, 0, len(c.buckets))
	for f := range c.buckets {
		freqs = append(freqs, f)
	}
	sort.Ints(freqs)
	for _, f := range freqs {
		for elem := c.buckets[f].Front(); elem != nil; elem = elem.Next() {
			ent := elem.Value.(*lfuEntry[K, V])
			items = append(items, Item[K, V]{Key: ent.key, Val: *ent.val, Freq: ent.freq})
		}
	}
	c.mu.Unlock()
	return cbor.Marshal(items)
}

// Import replaces the cache contents with a previously exported
// snapshot. Entries beyond the cache capacity are dropped from the
// low-frequency end, mirroring what eviction would have removed first.
func (c *LFU[K, V]) Import(data []byte) error {
	var items []Item[K, V]
	if err := cbor.Unmarshal(data, &items); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.importItems(items)
}

// importItems rebuilds the bucket structure under the held lock.
func (c *LFU[K, V]) importItems(items []Item[K, V]) error {
	c.entries = make(map[K]*list.Element, len(items))
	c.buckets = make(map[int]*list.List)
	c.minFreq = 0

	if c.capacity == 0 {
		return nil
	}

	// Snapshots are ordered by ascending frequency; a stable re-sort
	// tolerates hand-assembled input while preserving tie order.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Freq < items[j].Freq
	})
	if over := len(items) - c.capacity; over > 0 {
		items = items[over:]
	}

	for i := range items {
		it := &items[i]
		freq := it.Freq
		if freq < 1 {
			freq = 1
		}
		if prev, ok := c.entries[it.Key]; ok {
			// Later duplicates win.
			old := prev.Value.(*lfuEntry[K, V])
			b := c.buckets[old.freq]
			b.Remove(prev)
			if b.Len() == 0 {
				delete(c.buckets, old.freq)
			}
		}
		val := it.Val
		ent := &lfuEntry[K, V]{key: it.Key, val: &val, freq: freq}
		c.entries[it.Key] = c.bucket(freq).PushBack(ent)
	}
	for f := range c.buckets {
		if c.minFreq == 0 || f < c.minFreq {
			c.minFreq = f
		}
	}
	return nil
}
