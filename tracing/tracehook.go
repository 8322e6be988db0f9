package tracing

import (
	"fmt"
	"reflect"

	"github.com/sarchlab/memsim/hooking"
	"github.com/sarchlab/memsim/naming"
	"github.com/sarchlab/memsim/translator"
)

// NamedHookable represents something that both has a name and can be hooked.
type NamedHookable interface {
	naming.Named
	hooking.Hookable
	InvokeHook(hooking.HookCtx)
}

// CollectTrace lets the tracer collect traces from a domain.
func CollectTrace(domain NamedHookable, tracer Tracer) {
	hooks := domain.Hooks()
	for _, hook := range hooks {
		hook, ok := hook.(*traceHook)
		if ok && hook.t == tracer {
			panic(fmt.Sprintf(
				"domain %s already has tracer %s",
				domain.Name(), reflect.TypeOf(tracer)))
		}
	}

	h := traceHook{t: tracer}
	domain.AcceptHook(&h)
}

// A traceHook is a hook that forwards translation events to a tracer.
type traceHook struct {
	t Tracer
}

// Func calls the tracer interfaces when the hook is triggered.
func (h *traceHook) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case translator.HookPosTranslationDone:
		h.t.TranslationDone(ctx.Item.(translator.Translation))
	case translator.HookPosPageFault:
		h.t.PageFault(ctx.Item.(translator.FaultInfo))
	}
}
