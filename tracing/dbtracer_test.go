package tracing

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/memsim/datarecording"
	"github.com/sarchlab/memsim/translator"
)

var _ = Describe("DBTracer", func() {
	var (
		writer *datarecording.SQLiteWriter
		tracer *DBTracer
	)

	BeforeEach(func() {
		writer = datarecording.NewSQLiteWriter(
			filepath.Join(GinkgoT().TempDir(), "test_trace"))
		writer.Init()

		tracer = NewDBTracer(writer)
	})

	AfterEach(func() {
		writer.DB.Close()
	})

	It("should create the translations and page_faults tables", func() {
		Expect(writer.ListTables()).To(
			ContainElements("translations", "page_faults"))
	})

	It("should record translations", func() {
		tracer.TranslationDone(translator.Translation{
			Address:   16916,
			Frame:     3,
			Physical:  788,
			Value:     86,
			PageFault: true,
		})
		writer.Flush()

		var seq, addr, page, offset, frame, physical, value int
		var tlbHit, pageFault bool
		err := writer.QueryRow(
			"SELECT Seq, Address, Page, Offset, Frame, Physical, Value, "+
				"TLBHit, PageFault FROM translations;").
			Scan(&seq, &addr, &page, &offset, &frame, &physical, &value,
				&tlbHit, &pageFault)

		Expect(err).ToNot(HaveOccurred())
		Expect(seq).To(Equal(0))
		Expect(addr).To(Equal(16916))
		Expect(page).To(Equal(66))
		Expect(offset).To(Equal(20))
		Expect(frame).To(Equal(3))
		Expect(physical).To(Equal(788))
		Expect(value).To(Equal(86))
		Expect(tlbHit).To(BeFalse())
		Expect(pageFault).To(BeTrue())
	})

	It("should tag faults with the sequence number of their translation", func() {
		tracer.TranslationDone(translator.Translation{Address: 256})
		tracer.PageFault(translator.FaultInfo{
			Page:        2,
			Frame:       1,
			Evicted:     true,
			EvictedPage: 1,
		})
		tracer.TranslationDone(translator.Translation{Address: 512})
		writer.Flush()

		var seq, page, frame, evictedPage int
		var evicted bool
		err := writer.QueryRow(
			"SELECT Seq, Page, Frame, Evicted, EvictedPage "+
				"FROM page_faults;").
			Scan(&seq, &page, &frame, &evicted, &evictedPage)

		Expect(err).ToNot(HaveOccurred())
		Expect(seq).To(Equal(1))
		Expect(page).To(Equal(2))
		Expect(frame).To(Equal(1))
		Expect(evicted).To(BeTrue())
		Expect(evictedPage).To(Equal(1))
	})
})
