// Package tlb provides the translation lookaside buffer that caches
// recently used page-to-frame mappings.
package tlb

import (
	"container/list"
	"fmt"

	"github.com/sarchlab/memsim/hooking"
	"github.com/sarchlab/memsim/naming"
)

// HookPosEviction is the hook position that triggers when an insert
// displaces the oldest mapping. The Item of the hook context is the evicted
// Entry.
var HookPosEviction = &hooking.HookPos{Name: "TLB.Eviction"}

// An Entry is a cached page-to-frame mapping.
type Entry struct {
	Page  int
	Frame int
}

// A Comp is a translation lookaside buffer. It holds a bounded number of
// page-to-frame mappings and evicts the oldest mapping when a new one is
// inserted at capacity. Lookups do not change the eviction order.
type Comp struct {
	naming.NamedBase
	hooking.HookableBase

	capacity int
	entries  *list.List
	table    map[int]*list.Element
}

// Lookup returns the frame that holds the given page. The bool return value
// indicates whether the mapping is present.
func (c *Comp) Lookup(page int) (int, bool) {
	elem, found := c.table[page]
	if !found {
		return -1, false
	}

	return elem.Value.(Entry).Frame, true
}

// Insert adds a mapping from a page to the frame that now holds it,
// evicting the oldest mapping first if the buffer is full. The page must
// not already be present.
func (c *Comp) Insert(page, frame int) {
	c.pageMustNotBePresent(page)

	if c.entries.Len() == c.capacity {
		c.evictOldest()
	}

	elem := c.entries.PushBack(Entry{Page: page, Frame: frame})
	c.table[page] = elem
}

// Flush removes all mappings.
func (c *Comp) Flush() {
	c.entries.Init()
	c.table = make(map[int]*list.Element)
}

// Len returns the number of mappings currently cached.
func (c *Comp) Len() int {
	return c.entries.Len()
}

// Capacity returns the maximum number of mappings the buffer can hold.
func (c *Comp) Capacity() int {
	return c.capacity
}

func (c *Comp) evictOldest() {
	elem := c.entries.Front()
	evicted := elem.Value.(Entry)

	c.entries.Remove(elem)
	delete(c.table, evicted.Page)

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosEviction,
		Item:   evicted,
	})
}

func (c *Comp) pageMustNotBePresent(page int) {
	if _, found := c.table[page]; found {
		panic(fmt.Sprintf("page %d is already in the TLB", page))
	}
}
