package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/memsim/backingstore"
	"github.com/sarchlab/memsim/naming"
	"github.com/sarchlab/memsim/translator"
	"github.com/sarchlab/memsim/vm"
)

type sampleStruct struct {
	field1 int
	field2 string
	field3 *sampleStruct
	field4 []sampleStruct
}

type sampleComponent struct {
	naming.NamedBase
}

func newSampleComponent() *sampleComponent {
	return &sampleComponent{
		NamedBase: naming.MakeNamedBase("Comp"),
	}
}

type sampleDriver struct {
	pauseCount    int
	continueCount int
}

func (d *sampleDriver) Pause() {
	d.pauseCount++
}

func (d *sampleDriver) Continue() {
	d.continueCount++
}

func newSampleTranslator() *translator.Comp {
	data := make([]byte, vm.AddressSpaceSize)
	for i := range data {
		data[i] = byte(i)
	}

	return translator.MakeBuilder().
		WithBackingStore(backingstore.NewMemStore(data)).
		Build("Translator")
}

var _ = Describe("Monitor", func() {
	var (
		m *Monitor
	)

	BeforeEach(func() {
		m = NewMonitor()
	})

	It("should register components", func() {
		c := newSampleComponent()
		m.RegisterComponent(c)

		Expect(m.components).To(HaveLen(1))
	})

	It("should register the translator and its TLB", func() {
		t := newSampleTranslator()
		m.RegisterTranslator(t)

		Expect(m.translator).To(BeIdenticalTo(t))
		Expect(m.components).To(HaveLen(2))
	})

	It("should list component names", func() {
		t := newSampleTranslator()
		m.RegisterTranslator(t)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/components", nil)
		m.listComponents(w, r)

		Expect(w.Body.String()).To(Equal(`["Translator","Translator.TLB"]`))
	})

	It("should pause and continue the driver", func() {
		d := &sampleDriver{}
		m.RegisterDriver(d)

		m.pauseDriver(httptest.NewRecorder(),
			httptest.NewRequest(http.MethodGet, "/api/pause", nil))
		m.continueDriver(httptest.NewRecorder(),
			httptest.NewRequest(http.MethodGet, "/api/continue", nil))

		Expect(d.pauseCount).To(Equal(1))
		Expect(d.continueCount).To(Equal(1))
	})

	It("should serve translator statistics", func() {
		t := newSampleTranslator()
		m.RegisterTranslator(t)

		_, err := t.Translate(vm.Address(256))
		Expect(err).ToNot(HaveOccurred())

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
		m.listStats(w, r)

		stats := translator.Stats{}
		err = json.Unmarshal(w.Body.Bytes(), &stats)
		Expect(err).ToNot(HaveOccurred())
		Expect(stats).To(Equal(t.Stats()))
	})

	It("should list progress bars", func() {
		bar := m.CreateProgressBar("Replaying trace", 100)
		bar.IncrementFinished(42)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/progress", nil)
		m.listProgressBars(w, r)

		bars := []struct {
			Name     string `json:"name"`
			Total    uint64 `json:"total"`
			Finished uint64 `json:"finished"`
		}{}
		err := json.Unmarshal(w.Body.Bytes(), &bars)
		Expect(err).ToNot(HaveOccurred())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0].Name).To(Equal("Replaying trace"))
		Expect(bars[0].Total).To(Equal(uint64(100)))
		Expect(bars[0].Finished).To(Equal(uint64(42)))
	})

	It("should remove completed progress bars", func() {
		bar1 := m.CreateProgressBar("Bar1", 10)
		bar2 := m.CreateProgressBar("Bar2", 10)

		m.CompleteProgressBar(bar1)

		Expect(m.progressBars).To(HaveLen(1))
		Expect(m.progressBars[0]).To(BeIdenticalTo(bar2))
	})

	It("should report missing components with a 404", func() {
		w := httptest.NewRecorder()

		c := m.findComponentOr404(w, "NoSuchComp")

		Expect(c).To(BeNil())
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should walk int fields", func() {
		s := &sampleStruct{
			field1: 1,
		}

		elem, err := m.walkFields(s, "field1")

		Expect(err).To(BeNil())
		Expect(elem.Kind()).To(Equal(reflect.Int))
		Expect(elem.Type().Name()).To(Equal("int"))
		Expect(elem.Int()).To(Equal(int64(1)))
	})

	It("should walk string fields", func() {
		s := &sampleStruct{
			field2: "abc",
		}

		elem, err := m.walkFields(s, "field2")

		Expect(err).To(BeNil())
		Expect(elem.Kind()).To(Equal(reflect.String))
		Expect(elem.String()).To(Equal("abc"))
	})

	It("should walk recursively", func() {
		s := &sampleStruct{
			field3: &sampleStruct{
				field1: 1,
			},
		}

		elem, err := m.walkFields(s, "field3.field1")

		Expect(err).To(BeNil())
		Expect(elem.Kind()).To(Equal(reflect.Int))
		Expect(elem.Int()).To(Equal(int64(1)))
	})

	It("should walk slice recursively", func() {
		s := &sampleStruct{
			field4: []sampleStruct{{
				field4: []sampleStruct{
					{field1: 1},
				},
			}, {}},
		}

		elem, err := m.walkFields(s, "field4.0.field4.0.field1")

		Expect(err).To(BeNil())
		Expect(elem.Kind()).To(Equal(reflect.Int))
		Expect(elem.Int()).To(Equal(int64(1)))
	})
})
