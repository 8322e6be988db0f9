package replacement

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Policy", func() {
	It("should parse policy names case-insensitively", func() {
		for name, expected := range map[string]Policy{
			"FIFO":  FIFO,
			"fifo":  FIFO,
			"Lru":   LRU,
			"opt":   OPT,
			" lru ": LRU,
		} {
			policy, err := ParsePolicy(name)

			Expect(err).ToNot(HaveOccurred())
			Expect(policy).To(Equal(expected))
		}
	})

	It("should default an empty name to FIFO", func() {
		policy, err := ParsePolicy("")

		Expect(err).ToNot(HaveOccurred())
		Expect(policy).To(Equal(FIFO))
	})

	It("should reject an unknown policy name", func() {
		_, err := ParsePolicy("clock")

		Expect(err).To(HaveOccurred())
	})

	It("should build the finder that matches the policy", func() {
		refs := refsFromPages(1, 2, 3)

		Expect(NewVictimFinder(FIFO, nil)).
			To(BeAssignableToTypeOf(&FIFOVictimFinder{}))
		Expect(NewVictimFinder(LRU, nil)).
			To(BeAssignableToTypeOf(&LRUVictimFinder{}))
		Expect(NewVictimFinder(OPT, refs)).
			To(BeAssignableToTypeOf(&OPTVictimFinder{}))
	})

	It("should panic on an unchecked policy value", func() {
		Expect(func() { NewVictimFinder(Policy("NRU"), nil) }).To(Panic())
	})
})
