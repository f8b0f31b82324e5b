// Package adapter holds the infrastructure boundary: the host type-loader
// interface consumed by the mocking core, plan file decoding, and script
// loading. The mocking core never talks to the engine loader except through
// the Host interface, which keeps it testable against fakes.
package adapter

import (
	"remock.dev/pkg/remock/internal/engine"
)

// Host is the type-loading capability the mocking core consumes: enumerate
// loaded class versions by name, resolve a slot coordinate triple back to a
// slot, and observe module loads.
type Host interface {
	// ClassesByName returns every loaded version of a class name, oldest
	// first. Empty when no matching type has been compiled yet.
	ClassesByName(name string) []*engine.Class

	// ResolveSlot maps a (module, class, slot) triple to the slot it
	// identifies, failing when any component no longer resolves.
	ResolveSlot(moduleID, classIndex, slotIndex int) (*engine.Slot, error)

	// Subscribe registers a module-load callback and returns its cancel
	// func. Callbacks may fire on whatever goroutine compiles the module.
	Subscribe(fn func(*engine.Module)) (cancel func())
}

// The engine loader is the production Host.
var _ Host = (*engine.Loader)(nil)
