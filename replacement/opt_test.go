package replacement

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/memsim/vm"
)

// refsFromPages builds per-page reference position lists for a trace given
// as a sequence of page numbers, matching trace.FutureReferences.
func refsFromPages(pages ...int) [][]int {
	refs := make([][]int, vm.NumPages)
	for i, page := range pages {
		refs[page] = append(refs[page], i)
	}
	return refs
}

var _ = Describe("OPTVictimFinder", func() {
	It("should return -1 when no frame is tracked", func() {
		e := NewOPTVictimFinder(refsFromPages())

		Expect(e.FindVictim()).To(Equal(-1))
	})

	It("should evict a page that is never referenced again", func() {
		// Pages 1, 2, 3, 1 with two frames: when 3 faults, page 2 is
		// never used again while page 1 is, so page 2 goes.
		e := NewOPTVictimFinder(refsFromPages(1, 2, 3, 1))

		e.Fill(0, 1)
		e.Fill(1, 2)

		Expect(e.FindVictim()).To(Equal(1))
	})

	It("should evict the page with the farthest next reference", func() {
		// Pages 1, 2, 3, 1, 2 with two frames: when 3 faults, page 1
		// returns at position 3 and page 2 at position 4, so page 2
		// goes.
		e := NewOPTVictimFinder(refsFromPages(1, 2, 3, 1, 2))

		e.Fill(0, 1)
		e.Fill(1, 2)

		Expect(e.FindVictim()).To(Equal(1))
	})

	It("should prefer the smallest page among pages never used again",
		func() {
			e := NewOPTVictimFinder(refsFromPages(2, 1, 3))

			e.Fill(0, 2)
			e.Fill(1, 1)

			Expect(e.FindVictim()).To(Equal(1))
		})

	It("should look past references that already happened", func() {
		// Pages 1, 2, 1, 3, 2: the visit to page 1 at position 2 is
		// consumed before the fault of page 3, so page 1's next
		// reference no longer exists and page 1 goes.
		e := NewOPTVictimFinder(refsFromPages(1, 2, 1, 3, 2))

		e.Fill(0, 1)
		e.Fill(1, 2)
		e.Visit(0, 1)

		Expect(e.FindVictim()).To(Equal(0))
	})

	It("should not resurrect an evicted page on a visit", func() {
		// Pages 1, 2, 3, 1, 2, 4, 3, 1 with two frames: page 2 is
		// evicted when page 3 faults, yet a stale TLB mapping can
		// still report a visit for it at position 4. The visit must
		// not make page 2 a victim candidate again, so when page 4
		// faults the resident page with the farthest next reference
		// (page 1, at position 7) goes, not page 2's old frame.
		e := NewOPTVictimFinder(refsFromPages(1, 2, 3, 1, 2, 4, 3, 1))

		e.Fill(0, 1)
		e.Fill(1, 2)

		Expect(e.FindVictim()).To(Equal(1))
		e.Fill(1, 3)
		e.Visit(0, 1)
		e.Visit(1, 2)

		Expect(e.FindVictim()).To(Equal(0))
	})

	It("should track frame reuse across fills", func() {
		// Pages 1, 2, 3, 2, 1: page 1 is evicted for page 3, then the
		// next fault must pick between pages 3 and 2.
		e := NewOPTVictimFinder(refsFromPages(1, 2, 3, 2, 1))

		e.Fill(0, 1)
		e.Fill(1, 2)

		Expect(e.FindVictim()).To(Equal(0))
		e.Fill(0, 3)
		e.Visit(1, 2)

		// Position 4 references page 1, which is not resident. Page 3
		// is never used again, page 2 is not either, so the smaller
		// page number goes.
		Expect(e.FindVictim()).To(Equal(1))
	})

	It("should panic when the references do not cover all pages", func() {
		Expect(func() { NewOPTVictimFinder(make([][]int, 3)) }).To(Panic())
	})
})
