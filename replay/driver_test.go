package replay

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/memsim/backingstore"
	"github.com/sarchlab/memsim/monitoring"
	"github.com/sarchlab/memsim/replacement"
	"github.com/sarchlab/memsim/trace"
	"github.com/sarchlab/memsim/translator"
	"github.com/sarchlab/memsim/vm"
)

func fullStore() *backingstore.MemStore {
	data := make([]byte, vm.AddressSpaceSize)
	for i := range data {
		data[i] = byte(i)
	}

	return backingstore.NewMemStore(data)
}

func traceOfPages(pages ...int) *trace.Trace {
	t := &trace.Trace{Source: "test"}
	for _, p := range pages {
		t.Addresses = append(t.Addresses, vm.Address(p*vm.PageSize))
	}

	return t
}

var _ = Describe("Driver", func() {
	It("should replay a trace with the FIFO policy", func() {
		tr := traceOfPages(1, 2, 3, 1)
		t := translator.MakeBuilder().
			WithBackingStore(fullStore()).
			WithFrames(2).
			WithVictimFinder(replacement.NewFIFOVictimFinder()).
			Build("Translator")
		d := NewDriver(t, tr)

		stats, err := d.Run()

		Expect(err).ToNot(HaveOccurred())
		Expect(stats).To(Equal(translator.Stats{
			Accesses:   4,
			PageFaults: 3,
			TLBHits:    1,
			TLBMisses:  3,
		}))
	})

	It("should replay a trace with the LRU policy", func() {
		// With two frames, page 2 is the least recently used page when
		// page 3 faults, so page 1 stays resident. FIFO would evict
		// page 1 instead and fault again on the last reference.
		tr := traceOfPages(1, 2, 1, 3, 1)
		t := translator.MakeBuilder().
			WithBackingStore(fullStore()).
			WithFrames(2).
			WithTLBCapacity(1).
			WithVictimFinder(replacement.NewLRUVictimFinder()).
			Build("Translator")
		d := NewDriver(t, tr)

		stats, err := d.Run()

		Expect(err).ToNot(HaveOccurred())
		Expect(stats).To(Equal(translator.Stats{
			Accesses:   5,
			PageFaults: 3,
			TLBHits:    0,
			TLBMisses:  5,
		}))
	})

	It("should replay a trace with the OPT policy", func() {
		// When page 3 faults, page 2 is never referenced again while
		// page 1 is, so OPT evicts page 2.
		tr := traceOfPages(1, 2, 1, 2, 3, 1)
		t := translator.MakeBuilder().
			WithBackingStore(fullStore()).
			WithFrames(2).
			WithVictimFinder(
				replacement.NewOPTVictimFinder(tr.FutureReferences())).
			Build("Translator")
		d := NewDriver(t, tr)

		stats, err := d.Run()

		Expect(err).ToNot(HaveOccurred())
		Expect(stats).To(Equal(translator.Stats{
			Accesses:   6,
			PageFaults: 3,
			TLBHits:    3,
			TLBMisses:  3,
		}))
	})

	It("should stop at the first failing address", func() {
		tr := traceOfPages(0, 1, 2)
		store := backingstore.NewMemStore(make([]byte, 2*vm.PageSize))
		t := translator.MakeBuilder().
			WithBackingStore(store).
			Build("Translator")
		d := NewDriver(t, tr)

		stats, err := d.Run()

		Expect(err).To(MatchError(backingstore.ErrUnavailable))
		Expect(stats).To(Equal(translator.Stats{
			Accesses:   2,
			PageFaults: 2,
			TLBHits:    0,
			TLBMisses:  2,
		}))
	})

	It("should pause and continue a replay", func() {
		pages := make([]int, 0, 500)
		for i := 0; i < 500; i++ {
			pages = append(pages, i%8)
		}
		tr := traceOfPages(pages...)
		t := translator.MakeBuilder().
			WithBackingStore(fullStore()).
			Build("Translator")
		d := NewDriver(t, tr)

		d.Pause()

		done := make(chan translator.Stats)
		go func() {
			defer GinkgoRecover()

			stats, err := d.Run()
			Expect(err).ToNot(HaveOccurred())
			done <- stats
		}()

		Consistently(func() uint64 {
			return t.Stats().Accesses
		}).Should(Equal(uint64(0)))

		d.Continue()

		stats := <-done
		Expect(stats.Accesses).To(Equal(uint64(500)))
	})

	It("should ignore repeated pauses and continues", func() {
		tr := traceOfPages(1, 2, 3)
		t := translator.MakeBuilder().
			WithBackingStore(fullStore()).
			Build("Translator")
		d := NewDriver(t, tr)

		d.Pause()
		d.Pause()
		d.Continue()
		d.Continue()

		stats, err := d.Run()

		Expect(err).ToNot(HaveOccurred())
		Expect(stats.Accesses).To(Equal(uint64(3)))
	})

	It("should report progress to the monitor", func() {
		m := monitoring.NewMonitor()
		tr := traceOfPages(1, 2, 3)
		t := translator.MakeBuilder().
			WithBackingStore(fullStore()).
			Build("Translator")
		d := NewDriver(t, tr).WithMonitor(m)

		stats, err := d.Run()

		Expect(err).ToNot(HaveOccurred())
		Expect(stats.Accesses).To(Equal(uint64(3)))
	})
})
