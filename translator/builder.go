package translator

import (
	"fmt"

	"github.com/sarchlab/memsim/backingstore"
	"github.com/sarchlab/memsim/memory"
	"github.com/sarchlab/memsim/naming"
	"github.com/sarchlab/memsim/replacement"
	"github.com/sarchlab/memsim/vm"
	"github.com/sarchlab/memsim/vm/tlb"
)

// A Builder can build translators.
type Builder struct {
	frames       int
	tlbCapacity  int
	store        backingstore.Store
	victimFinder replacement.VictimFinder
}

// MakeBuilder returns a new Builder with default parameters
func MakeBuilder() Builder {
	return Builder{
		frames:      vm.NumPages,
		tlbCapacity: 16,
	}
}

// WithFrames sets the number of physical frames
func (b Builder) WithFrames(frames int) Builder {
	b.frames = frames
	return b
}

// WithTLBCapacity sets the number of mappings the TLB holds
func (b Builder) WithTLBCapacity(capacity int) Builder {
	b.tlbCapacity = capacity
	return b
}

// WithBackingStore sets the store that serves page contents
func (b Builder) WithBackingStore(store backingstore.Store) Builder {
	b.store = store
	return b
}

// WithVictimFinder sets the replacement policy implementation. The default
// is FIFO.
func (b Builder) WithVictimFinder(vf replacement.VictimFinder) Builder {
	b.victimFinder = vf
	return b
}

// Build builds a new Comp
func (b Builder) Build(name string) *Comp {
	b.framesMustBeValid()
	b.storeMustBeGiven()

	c := &Comp{
		NamedBase:    naming.MakeNamedBase(name),
		pageTable:    vm.NewPageTable(),
		storage:      memory.NewStorage(b.frames),
		store:        b.store,
		victimFinder: b.victimFinder,
		frames:       b.frames,
		frameOwner:   make([]int, b.frames),
	}

	if c.victimFinder == nil {
		c.victimFinder = replacement.NewFIFOVictimFinder()
	}

	c.tlb = tlb.MakeBuilder().
		WithCapacity(b.tlbCapacity).
		Build(naming.BuildName(name, "TLB"))

	for i := range c.frameOwner {
		c.frameOwner[i] = -1
	}

	return c
}

func (b Builder) framesMustBeValid() {
	if b.frames < 1 || b.frames > vm.NumPages {
		panic(fmt.Sprintf(
			"frames must be between 1 and %d, got %d", vm.NumPages, b.frames))
	}
}

func (b Builder) storeMustBeGiven() {
	if b.store == nil {
		panic("backing store is not given")
	}
}
