package replacement

import (
	"fmt"
	"sort"

	"github.com/sarchlab/memsim/vm"
)

// OPTVictimFinder evicts the resident page whose next reference is
// farthest in the future, given full knowledge of the reference trace. It
// follows the trace by counting the references reported through Visit and
// Fill, so the finder must see every translated address exactly once.
type OPTVictimFinder struct {
	refs      [][]int
	position  int
	pageFrame [vm.NumPages]int
}

// NewOPTVictimFinder returns a newly constructed OPT evictor. The refs
// argument holds, for each page, the ordered trace positions that
// reference it, as built by trace.FutureReferences.
func NewOPTVictimFinder(refs [][]int) *OPTVictimFinder {
	if len(refs) != vm.NumPages {
		panic(fmt.Sprintf("future references must cover %d pages, got %d",
			vm.NumPages, len(refs)))
	}

	e := &OPTVictimFinder{refs: refs}
	for i := range e.pageFrame {
		e.pageFrame[i] = -1
	}

	return e
}

// Visit moves the trace position forward. Residency is established by
// Fill alone: a visit may come from a stale TLB mapping whose page has
// already been evicted, and such a visit must not put the page back
// among the eviction candidates.
func (e *OPTVictimFinder) Visit(frame, page int) {
	e.position++
}

// Fill records that a page was just loaded into a frame, displacing
// whichever page held the frame before, and moves the trace position
// forward.
func (e *OPTVictimFinder) Fill(frame, page int) {
	for p, f := range e.pageFrame {
		if f == frame {
			e.pageFrame[p] = -1
		}
	}

	e.pageFrame[page] = frame
	e.position++
}

// FindVictim returns the frame holding the resident page whose next
// reference is farthest in the future. A page that is never referenced
// again is evicted right away; among such pages the smallest page number
// wins.
func (e *OPTVictimFinder) FindVictim() int {
	victimFrame := -1
	victimNext := -1

	for page, frame := range e.pageFrame {
		if frame == -1 {
			continue
		}

		next, referenced := e.nextReference(page)
		if !referenced {
			return frame
		}

		if next > victimNext {
			victimNext = next
			victimFrame = frame
		}
	}

	return victimFrame
}

// nextReference returns the first position at or after the current one
// that references the page. The current position always belongs to the
// page being faulted in, never to a resident page.
func (e *OPTVictimFinder) nextReference(page int) (int, bool) {
	pageRefs := e.refs[page]

	idx := sort.SearchInts(pageRefs, e.position)
	if idx == len(pageRefs) {
		return 0, false
	}

	return pageRefs[idx], true
}
