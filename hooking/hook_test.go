package hooking

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type recordingHook struct {
	ctxs []HookCtx
}

func (h *recordingHook) Func(ctx HookCtx) {
	h.ctxs = append(h.ctxs, ctx)
}

var _ = Describe("HookableBase", func() {
	var (
		hookable *HookableBase
		hook     *recordingHook
	)

	BeforeEach(func() {
		hookable = &HookableBase{}
		hook = &recordingHook{}
	})

	It("should accept hooks", func() {
		hookable.AcceptHook(hook)

		Expect(hookable.NumHooks()).To(Equal(1))
		Expect(hookable.Hooks()).To(HaveLen(1))
	})

	It("should panic when the same hook is registered twice", func() {
		hookable.AcceptHook(hook)

		Expect(func() { hookable.AcceptHook(hook) }).To(Panic())
	})

	It("should invoke all registered hooks", func() {
		anotherHook := &recordingHook{}
		hookable.AcceptHook(hook)
		hookable.AcceptHook(anotherHook)

		pos := &HookPos{Name: "SamplePos"}
		hookable.InvokeHook(HookCtx{Pos: pos, Item: 42})

		Expect(hook.ctxs).To(HaveLen(1))
		Expect(hook.ctxs[0].Pos).To(BeIdenticalTo(pos))
		Expect(hook.ctxs[0].Item).To(Equal(42))
		Expect(anotherHook.ctxs).To(HaveLen(1))
	})
})
