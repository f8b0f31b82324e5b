package mock

import (
	"sync"

	"remock.dev/pkg/remock/internal/model"
)

// override is one predicate/replacement pair.
type override struct {
	predicate   model.Predicate
	replacement model.Callable
}

// OverrideList holds the overrides registered for one method key, most
// recently registered first. Entries are never removed individually; the
// registry clears whole lists on teardown.
type OverrideList struct {
	mu      sync.RWMutex
	entries []override
}

// AddCondition prepends a predicate/replacement pair, so the newest
// registration is evaluated first. A narrow override registered after a
// broad default therefore takes precedence without disturbing the default.
func (l *OverrideList) AddCondition(predicate model.Predicate, replacement model.Callable) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append([]override{{predicate: predicate, replacement: replacement}}, l.entries...)
}

// Len returns the number of registered overrides.
func (l *OverrideList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.entries)
}

// Evaluate walks the list front to back and returns the replacement of the
// first predicate that matches the call. matched is false when no predicate
// matches, which is not an error: the caller falls back to the original.
// Predicates run outside the list lock; a predicate error fails the call.
func (l *OverrideList) Evaluate(call *model.Call) (replacement model.Callable, matched bool, err error) {
	l.mu.RLock()
	entries := make([]override, len(l.entries))
	copy(entries, l.entries)
	l.mu.RUnlock()

	for _, entry := range entries {
		ok, err := entry.predicate(call)
		if err != nil {
			return nil, false, err
		}

		if ok {
			return entry.replacement, true, nil
		}
	}

	return nil, false, nil
}
