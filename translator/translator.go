// Package translator provides the component that resolves logical
// addresses to physical addresses, servicing TLB misses and page faults on
// the way.
package translator

import (
	"fmt"

	"github.com/sarchlab/memsim/backingstore"
	"github.com/sarchlab/memsim/hooking"
	"github.com/sarchlab/memsim/memory"
	"github.com/sarchlab/memsim/naming"
	"github.com/sarchlab/memsim/replacement"
	"github.com/sarchlab/memsim/vm"
	"github.com/sarchlab/memsim/vm/tlb"
)

// HookPosTranslationDone is triggered after an address resolves. The Item
// of the hook context is the Translation.
var HookPosTranslationDone = &hooking.HookPos{
	Name: "Translator.TranslationDone",
}

// HookPosPageFault is triggered when a page is loaded from the backing
// store. The Item of the hook context is a FaultInfo.
var HookPosPageFault = &hooking.HookPos{Name: "Translator.PageFault"}

// A Translation is the outcome of resolving one logical address.
type Translation struct {
	Address   vm.Address
	Frame     int
	Physical  int
	Value     byte
	TLBHit    bool
	PageFault bool
}

// A FaultInfo describes one page fault.
type FaultInfo struct {
	Page        int
	Frame       int
	Evicted     bool
	EvictedPage int
}

// Stats holds the counters of a run. Every translated address counts as
// exactly one TLB hit or one TLB miss, and as a page fault only when the
// page had to be loaded from the backing store.
type Stats struct {
	Accesses   uint64
	PageFaults uint64
	TLBHits    uint64
	TLBMisses  uint64
}

// PageFaultRate returns the percentage of accesses that faulted.
func (s Stats) PageFaultRate() float64 {
	if s.Accesses == 0 {
		return 0
	}

	return float64(s.PageFaults) / float64(s.Accesses) * 100
}

// TLBHitRate returns the percentage of accesses that resolved in the TLB.
func (s Stats) TLBHitRate() float64 {
	if s.Accesses == 0 {
		return 0
	}

	return float64(s.TLBHits) / float64(s.Accesses) * 100
}

// Comp is the translator. It owns the page table, the TLB, the physical
// memory, and the victim finder, and consults the backing store on page
// faults.
type Comp struct {
	naming.NamedBase
	hooking.HookableBase

	pageTable    vm.PageTable
	tlb          *tlb.Comp
	storage      *memory.Storage
	store        backingstore.Store
	victimFinder replacement.VictimFinder

	frames     int
	nextFree   int
	frameOwner []int

	stats Stats
}

// Translate resolves one logical address. A backing store failure aborts
// the translation before any table, memory, or counter changes, so a rerun
// of the same trace stays bit exact.
func (c *Comp) Translate(addr vm.Address) (Translation, error) {
	page := addr.PageNumber()

	if frame, found := c.tlb.Lookup(page); found {
		c.victimFinder.Visit(frame, page)
		return c.complete(addr, frame, true, false), nil
	}

	if entry, found := c.pageTable.Find(page); found {
		c.victimFinder.Visit(entry.Frame, page)
		c.tlb.Insert(page, entry.Frame)
		return c.complete(addr, entry.Frame, false, false), nil
	}

	frame, err := c.handleFault(page)
	if err != nil {
		return Translation{}, err
	}

	c.tlb.Insert(page, frame)

	return c.complete(addr, frame, false, true), nil
}

// Stats returns the counters accumulated so far.
func (c *Comp) Stats() Stats {
	return c.stats
}

// TLB returns the translation lookaside buffer owned by the translator.
func (c *Comp) TLB() *tlb.Comp {
	return c.tlb
}

// Frames returns the number of physical frames.
func (c *Comp) Frames() int {
	return c.frames
}

// ResidentPages returns the number of pages currently held in frames.
func (c *Comp) ResidentPages() int {
	return c.pageTable.ResidentCount()
}

// handleFault loads the page from the backing store into a frame. The
// store is read before a frame is chosen, so a read failure leaves the
// translator untouched.
func (c *Comp) handleFault(page int) (int, error) {
	data, err := c.store.ReadPage(page)
	if err != nil {
		return -1, fmt.Errorf("loading page %d: %w", page, err)
	}

	frame, evicted, evictedPage := c.allocateFrame()

	if err := c.storage.WriteFrame(frame, data); err != nil {
		panic(err)
	}

	c.pageTable.Update(page, vm.Page{Frame: frame, Loaded: true})
	c.frameOwner[frame] = page
	c.victimFinder.Fill(frame, page)

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosPageFault,
		Item: FaultInfo{
			Page:        page,
			Frame:       frame,
			Evicted:     evicted,
			EvictedPage: evictedPage,
		},
	})

	return frame, nil
}

// allocateFrame hands out free frames in index order until all frames are
// used, then asks the victim finder for a frame to recycle.
func (c *Comp) allocateFrame() (frame int, evicted bool, evictedPage int) {
	if c.nextFree < c.frames {
		frame = c.nextFree
		c.nextFree++
		return frame, false, -1
	}

	frame = c.victimFinder.FindVictim()
	c.victimMustBeValid(frame)

	evictedPage = c.frameOwner[frame]
	c.pageTable.Evict(evictedPage)

	return frame, true, evictedPage
}

func (c *Comp) complete(
	addr vm.Address,
	frame int,
	tlbHit, pageFault bool,
) Translation {
	physical := vm.PhysicalAddress(frame, addr.Offset())

	value, err := c.storage.Byte(physical)
	if err != nil {
		panic(err)
	}

	c.stats.Accesses++
	if tlbHit {
		c.stats.TLBHits++
	} else {
		c.stats.TLBMisses++
	}
	if pageFault {
		c.stats.PageFaults++
	}

	t := Translation{
		Address:   addr,
		Frame:     frame,
		Physical:  physical,
		Value:     value,
		TLBHit:    tlbHit,
		PageFault: pageFault,
	}

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosTranslationDone,
		Item:   t,
	})

	return t
}

func (c *Comp) victimMustBeValid(frame int) {
	if frame < 0 || frame >= c.frames {
		panic(fmt.Sprintf("victim finder returned invalid frame %d", frame))
	}
}
