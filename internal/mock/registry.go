package mock

import (
	"log/slog"
	"strings"
	"sync"

	"remock.dev/pkg/remock/internal/adapter"
	"remock.dev/pkg/remock/internal/engine"
	"remock.dev/pkg/remock/internal/model"
)

// slotRecord pairs a rewritten slot with its saved original implementation.
// Presence of a record is the sole signal that the slot was rewritten, and
// the original is both the restore source and the dispatch fallback.
type slotRecord struct {
	slot     *engine.Slot
	original model.Callable
}

// Registry owns all interception state: the override lists per method key,
// the rewritten-slot records, the class names watched for future loads, and
// the concrete class versions already processed.
//
// A single coarse lock guards mutation (registration, load notifications,
// teardown); dispatch only snapshots under a read lock and evaluates
// predicates outside it, so concurrent intercepted calls never contend with
// each other.
type Registry struct {
	host    adapter.Host
	locator *Locator

	mu                 sync.RWMutex
	overrides          map[model.MethodKey]*OverrideList
	records            map[SlotAddress]slotRecord
	watched            map[string]struct{}
	initializedNames   map[string]struct{}
	initializedClasses map[*engine.Class]struct{}
}

// NewRegistry creates an empty registry over a host.
func NewRegistry(host adapter.Host) *Registry {
	return &Registry{
		host:               host,
		locator:            NewLocator(host),
		overrides:          make(map[model.MethodKey]*OverrideList),
		records:            make(map[SlotAddress]slotRecord),
		watched:            make(map[string]struct{}),
		initializedNames:   make(map[string]struct{}),
		initializedClasses: make(map[*engine.Class]struct{}),
	}
}

// RequestMock ensures every loaded version of typeName has its slots
// rewritten, then prepends the predicate/replacement pair to the method's
// override list. A type name with no loaded version is not an error: it is
// recorded as watched and rewritten the moment a matching class compiles.
func (r *Registry) RequestMock(typeName, methodName string, predicate model.Predicate, replacement model.Callable) {
	r.mu.Lock()

	classes := r.host.ClassesByName(typeName)
	if len(classes) == 0 {
		r.watched[typeName] = struct{}{}
	} else {
		for _, class := range classes {
			r.rewriteClass(class)
		}

		r.initializedNames[typeName] = struct{}{}
	}

	key := model.NewMethodKey(typeName, methodName)

	list, ok := r.overrides[key]
	if !ok {
		list = &OverrideList{}
		r.overrides[key] = list
	}

	r.mu.Unlock()

	list.AddCondition(predicate, replacement)

	slog.Debug("mock registered", "method", string(key), "loadedVersions", len(classes))
}

// NotifyTypeLoaded processes one newly loaded type. Companion-marker types
// are engine infrastructure and always ignored. A watched name gets its
// first rewrite and moves to initialized; an already-initialized name is a
// recompiled version and is rewritten so existing overrides apply to it;
// anything else is ignored.
func (r *Registry) NotifyTypeLoaded(t engine.Type) {
	name := t.TypeName()
	if strings.Contains(name, model.CompanionMarker) {
		return
	}

	class, ok := t.(*engine.Class)
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, isWatched := r.watched[name]; isWatched {
		r.rewriteClass(class)
		delete(r.watched, name)
		r.initializedNames[name] = struct{}{}

		slog.Debug("watched class loaded", "class", name)

		return
	}

	if _, isInitialized := r.initializedNames[name]; isInitialized {
		r.rewriteClass(class)
	}
}

// rewriteClass applies the rewrite protocol to one concrete class version:
// for every eligible slot not yet recorded, save the original, derive the
// address, install a redirect, and record (slot, original). Idempotent per
// slot (record presence) and per class version (initializedClasses); each
// distinct version of a name is rewritten independently because it owns its
// own slots. Caller holds the write lock.
func (r *Registry) rewriteClass(class *engine.Class) {
	if _, done := r.initializedClasses[class]; done {
		return
	}

	for _, slot := range r.locator.EligibleSlots(class) {
		addr := EncodeSlotAddress(slot)
		if _, rewritten := r.records[addr]; rewritten {
			continue
		}

		original := slot.Impl()
		slot.SetImpl(newRedirect(r, slot.Decl(), addr))
		r.records[addr] = slotRecord{slot: slot, original: original}
	}

	r.initializedClasses[class] = struct{}{}
}

// ResolveAndDispatch is the callback a running redirect makes: it resolves
// the baked-in address back to a slot, evaluates that method's overrides
// most-recent-first against the live call, and runs the first match — or the
// saved original, bound to the current call context, when nothing matches.
func (r *Registry) ResolveAndDispatch(addr SlotAddress, call *model.Call) (any, error) {
	slot, err := r.locator.Resolve(addr)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	record, recorded := r.records[addr]
	list := r.overrides[model.NewMethodKey(slot.Class().TypeName(), slot.MethodName())]
	r.mu.RUnlock()

	if !recorded {
		return nil, &SlotResolutionError{Address: addr, Cause: errNoRecord}
	}

	if list != nil {
		replacement, matched, err := list.Evaluate(call)
		if err != nil {
			return nil, err
		}

		if matched {
			return replacement(call)
		}
	}

	return record.original(call)
}

// TearDown restores every recorded original implementation into its slot and
// clears all registry state. All-or-nothing, and safe to call when nothing
// was ever mocked.
func (r *Registry) TearDown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range r.records {
		record.slot.SetImpl(record.original)
	}

	restored := len(r.records)

	r.overrides = make(map[model.MethodKey]*OverrideList)
	r.records = make(map[SlotAddress]slotRecord)
	r.watched = make(map[string]struct{})
	r.initializedNames = make(map[string]struct{})
	r.initializedClasses = make(map[*engine.Class]struct{})

	if restored > 0 {
		slog.Debug("mocks cleared", "slotsRestored", restored)
	}
}

// Rewritten reports whether a slot currently carries a redirect.
func (r *Registry) Rewritten(slot *engine.Slot) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.records[EncodeSlotAddress(slot)]

	return ok
}

// OverrideCount returns how many overrides are registered for a method key.
func (r *Registry) OverrideCount(key model.MethodKey) int {
	r.mu.RLock()
	list := r.overrides[key]
	r.mu.RUnlock()

	if list == nil {
		return 0
	}

	return list.Len()
}
