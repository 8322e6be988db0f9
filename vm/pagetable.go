package vm

import "fmt"

// A Page is an entry in the page table, maintaining the information about
// where a logical page resides in physical memory. Frame is only meaningful
// while Loaded is true.
type Page struct {
	Frame  int
	Loaded bool
}

// A PageTable maps page numbers to the frames that hold them. It has one
// entry per page of the logical address space.
type PageTable interface {
	// Find returns the entry for the given page. The bool return value
	// indicates whether the page is resident in a frame.
	Find(page int) (Page, bool)

	// Update replaces the entry for the given page.
	Update(page int, entry Page)

	// Evict marks the given page as no longer resident.
	Evict(page int)

	// ResidentCount returns the number of pages currently held in frames.
	ResidentCount() int

	// Reset returns every entry to the unmapped state.
	Reset()
}

// NewPageTable creates a PageTable with all pages unmapped.
func NewPageTable() PageTable {
	t := &pageTableImpl{}
	t.Reset()
	return t
}

// pageTableImpl is the default implementation of a PageTable. It is a flat
// array indexed directly by page number.
type pageTableImpl struct {
	entries [NumPages]Page
}

func (t *pageTableImpl) Find(page int) (Page, bool) {
	t.pageMustExist(page)

	entry := t.entries[page]
	return entry, entry.Loaded
}

func (t *pageTableImpl) Update(page int, entry Page) {
	t.pageMustExist(page)

	t.entries[page] = entry
}

func (t *pageTableImpl) Evict(page int) {
	t.pageMustExist(page)

	t.entries[page].Loaded = false
}

func (t *pageTableImpl) ResidentCount() int {
	count := 0
	for _, entry := range t.entries {
		if entry.Loaded {
			count++
		}
	}

	return count
}

func (t *pageTableImpl) Reset() {
	for i := range t.entries {
		t.entries[i] = Page{Frame: -1}
	}
}

func (t *pageTableImpl) pageMustExist(page int) {
	if page < 0 || page >= NumPages {
		panic(fmt.Sprintf("page %d does not exist", page))
	}
}
