package sim

// A HookPos names the place in a hookable object where hooks are invoked.
type HookPos struct {
	Name string
}

// HookCtx describes the invocation site of a hook.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hookable objects let observers attach hooks.
type Hookable interface {
	AcceptHook(hook Hook)
}

// HookPosBeforeEvent is invoked by engines right before an event is handled.
// The item is the event.
var HookPosBeforeEvent = &HookPos{Name: "BeforeEvent"}

// HookPosAfterEvent is invoked by engines right after an event is handled.
// The item is the event.
var HookPosAfterEvent = &HookPos{Name: "AfterEvent"}

// A Hook observes a hookable object. Hooks must not change the simulation.
type Hook interface {
	Func(ctx HookCtx)
}

// HookableBase keeps a list of hooks and invokes them in attachment order.
// The zero value is ready to use.
type HookableBase struct {
	Hooks []Hook
}

// NewHookableBase creates a HookableBase without hooks.
func NewHookableBase() *HookableBase {
	return &HookableBase{Hooks: make([]Hook, 0)}
}

// AcceptHook attaches a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// NumHooks returns the number of attached hooks.
func (h *HookableBase) NumHooks() int {
	return len(h.Hooks)
}

// InvokeHook calls every attached hook with ctx.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}

// HookFunc adapts a plain function to the Hook interface.
type HookFunc func(ctx HookCtx)

// Func calls f.
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}
