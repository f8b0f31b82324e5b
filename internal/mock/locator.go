package mock

import (
	"remock.dev/pkg/remock/internal/adapter"
	"remock.dev/pkg/remock/internal/engine"
)

// Locator finds call slots, in both directions: enumerating the rewritable
// slots of a loaded class, and resolving a previously encoded address back
// to one specific slot.
type Locator struct {
	host adapter.Host
}

// NewLocator creates a locator over a host.
func NewLocator(host adapter.Host) *Locator {
	return &Locator{host: host}
}

// EligibleSlots returns the slots of a class that may carry overrides.
// Synthesized slots (compiler-emitted accessors with no user-written body)
// are skipped: they cannot carry a meaningful override and are left
// untouched. A nil companion yields nothing; both cases are policy skips,
// not errors.
func (l *Locator) EligibleSlots(class *engine.Class) []*engine.Slot {
	table := class.Companion()
	if table == nil {
		return nil
	}

	var slots []*engine.Slot

	for _, slot := range table.Slots() {
		if slot.Decl().Synthesized {
			continue
		}

		slots = append(slots, slot)
	}

	return slots
}

// Resolve decodes an address and asks the host for the slot it names.
// Failure means the address no longer maps onto loaded modules; the caller
// surfaces that as a SlotResolutionError on the intercepted call.
func (l *Locator) Resolve(addr SlotAddress) (*engine.Slot, error) {
	moduleID, classIndex, slotIndex, err := DecodeSlotAddress(addr)
	if err != nil {
		return nil, &SlotResolutionError{Address: addr, Cause: err}
	}

	slot, err := l.host.ResolveSlot(moduleID, classIndex, slotIndex)
	if err != nil {
		return nil, &SlotResolutionError{Address: addr, Cause: err}
	}

	return slot, nil
}
