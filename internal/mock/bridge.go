package mock

import (
	"sync"

	"remock.dev/pkg/remock/internal/adapter"
	"remock.dev/pkg/remock/internal/engine"
)

// Bridge subscribes the registry to the host's module-load notifications so
// classes compiled after a mock was registered — including recompilations of
// an already-mocked name — are rewritten without caller involvement.
//
// The subscription lives for the session: TearDown clears mock data but does
// not unsubscribe; only Close does.
type Bridge struct {
	cancel func()
	once   sync.Once
}

// NewBridge installs the subscription.
func NewBridge(host adapter.Host, registry *Registry) *Bridge {
	cancel := host.Subscribe(func(module *engine.Module) {
		for _, t := range module.Types() {
			registry.NotifyTypeLoaded(t)
		}
	})

	return &Bridge{cancel: cancel}
}

// Close removes the subscription. Safe to call more than once.
func (b *Bridge) Close() {
	b.once.Do(b.cancel)
}
