package tracing

import (
	"fmt"
	"os"

	"github.com/sarchlab/memsim/translator"
	"github.com/tebeka/atexit"
)

// A CSVTracer stores every translation as one row of a CSV file.
type CSVTracer struct {
	path string
	file *os.File

	seq          int
	translations []translator.Translation
	bufferSize   int
}

// NewCSVTracer creates a new CSVTracer.
func NewCSVTracer(path string) *CSVTracer {
	return &CSVTracer{
		path:       path,
		bufferSize: 1000,
	}
}

// Init creates the tracing csv file. If the file already exists, it will be
// overwritten.
func (t *CSVTracer) Init() {
	file, err := os.Create(t.path)
	if err != nil {
		panic(err)
	}
	t.file = file

	fmt.Fprintf(file,
		"Seq, Address, Page, Offset, Frame, Physical, Value, "+
			"TLBHit, PageFault\n")

	atexit.Register(func() {
		t.Flush()
		err := t.file.Close()
		if err != nil {
			panic(err)
		}
	})
}

// TranslationDone buffers one translation to be written to the CSV file.
func (t *CSVTracer) TranslationDone(tr translator.Translation) {
	t.translations = append(t.translations, tr)
	if len(t.translations) >= t.bufferSize {
		t.Flush()
	}
}

// PageFault does nothing. Faults are recorded in the PageFault column of
// the address rows.
func (t *CSVTracer) PageFault(translator.FaultInfo) {
}

// Flush writes the buffered translations to the CSV file.
func (t *CSVTracer) Flush() {
	for _, tr := range t.translations {
		fmt.Fprintf(t.file, "%d, %d, %d, %d, %d, %d, %d, %t, %t\n",
			t.seq,
			tr.Address,
			tr.Address.PageNumber(),
			tr.Address.Offset(),
			tr.Frame,
			tr.Physical,
			tr.Value,
			tr.TLBHit,
			tr.PageFault,
		)
		t.seq++
	}

	t.translations = nil
}
