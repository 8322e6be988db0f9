package tracing

import (
	"github.com/sarchlab/memsim/datarecording"
	"github.com/sarchlab/memsim/translator"
)

type translationTableEntry struct {
	Seq       int
	Address   int
	Page      int
	Offset    int
	Frame     int
	Physical  int
	Value     int
	TLBHit    bool
	PageFault bool
}

type faultTableEntry struct {
	Seq         int
	Page        int
	Frame       int
	Evicted     bool
	EvictedPage int
}

// A DBTracer stores translations and page faults into the translations and
// page_faults tables of a data recorder.
type DBTracer struct {
	recorder datarecording.DataRecorder

	seq int
}

// NewDBTracer creates a DBTracer that writes through the given recorder.
func NewDBTracer(recorder datarecording.DataRecorder) *DBTracer {
	t := &DBTracer{
		recorder: recorder,
	}

	t.recorder.CreateTable("translations", translationTableEntry{})
	t.recorder.CreateTable("page_faults", faultTableEntry{})

	return t
}

// TranslationDone records one translated address.
func (t *DBTracer) TranslationDone(tr translator.Translation) {
	t.recorder.InsertData("translations", translationTableEntry{
		Seq:       t.seq,
		Address:   int(tr.Address),
		Page:      tr.Address.PageNumber(),
		Offset:    tr.Address.Offset(),
		Frame:     tr.Frame,
		Physical:  tr.Physical,
		Value:     int(tr.Value),
		TLBHit:    tr.TLBHit,
		PageFault: tr.PageFault,
	})

	t.seq++
}

// PageFault records one page fault. The Seq column holds the sequence
// number of the translation the fault belongs to.
func (t *DBTracer) PageFault(f translator.FaultInfo) {
	t.recorder.InsertData("page_faults", faultTableEntry{
		Seq:         t.seq,
		Page:        f.Page,
		Frame:       f.Frame,
		Evicted:     f.Evicted,
		EvictedPage: f.EvictedPage,
	})
}
