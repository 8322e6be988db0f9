package tlb

import (
	"container/list"

	"github.com/sarchlab/memsim/naming"
)

// A Builder can build TLBs.
type Builder struct {
	capacity int
}

// MakeBuilder returns a new Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		capacity: 16,
	}
}

// WithCapacity sets the number of mappings the TLB can hold.
func (b Builder) WithCapacity(capacity int) Builder {
	b.capacity = capacity
	return b
}

// Build creates a TLB with the given name.
func (b Builder) Build(name string) *Comp {
	b.capacityMustBeValid()

	return &Comp{
		NamedBase: naming.MakeNamedBase(name),
		capacity:  b.capacity,
		entries:   list.New(),
		table:     make(map[int]*list.Element),
	}
}

func (b Builder) capacityMustBeValid() {
	if b.capacity <= 0 {
		panic("TLB capacity must be positive")
	}
}
