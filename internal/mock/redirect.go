package mock

import (
	"remock.dev/pkg/remock/internal/engine"
	"remock.dev/pkg/remock/internal/model"
)

// newRedirect synthesizes the implementation installed into a rewritten
// slot. Only the body changes: the slot keeps its declaration, so the
// method's name, parameter list, and diagnostics are untouched, and callers
// observe no difference in the calling contract.
//
// The redirect captures the encoded slot address as its only context — not
// the slot pointer — and resolves it through the registry at call time. It
// honors the original's value/void contract: a void method's redirect
// discards whatever the dispatch produced.
func newRedirect(registry *Registry, decl *engine.MethodDecl, addr SlotAddress) model.Callable {
	if decl.Returns {
		return func(call *model.Call) (any, error) {
			return registry.ResolveAndDispatch(addr, call)
		}
	}

	return func(call *model.Call) (any, error) {
		_, err := registry.ResolveAndDispatch(addr, call)

		return nil, err
	}
}
