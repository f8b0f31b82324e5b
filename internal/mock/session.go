package mock

import (
	"strings"

	"remock.dev/pkg/remock/internal/adapter"
	"remock.dev/pkg/remock/internal/model"
)

// Session is the public command surface over one registry: it owns the
// load-event bridge and exposes the registration operations the CLI and
// console wrap. All state is in-memory for the session's lifetime.
type Session struct {
	registry *Registry
	bridge   *Bridge
}

// NewSession creates a registry over the host and installs the load bridge.
func NewSession(host adapter.Host) *Session {
	registry := NewRegistry(host)

	return &Session{
		registry: registry,
		bridge:   NewBridge(host, registry),
	}
}

// AddMethodMock registers an override for typeName.methodName. The predicate
// defaults to always-true when nil. The target type need not be loaded yet.
// Validation failures leave all state untouched.
func (s *Session) AddMethodMock(typeName, methodName string, replacement model.Callable, predicate model.Predicate) error {
	switch {
	case strings.TrimSpace(typeName) == "":
		return &ValidationError{Reason: "type name must not be empty"}
	case strings.TrimSpace(methodName) == "":
		return &ValidationError{Reason: "method name must not be empty"}
	case replacement == nil:
		return &ValidationError{Reason: "replacement must not be nil"}
	}

	if predicate == nil {
		predicate = func(*model.Call) (bool, error) { return true, nil }
	}

	s.registry.RequestMock(typeName, methodName, predicate, replacement)

	return nil
}

// ClearMethodMocks restores every rewritten slot to its original
// implementation and drops all overrides. Always succeeds, including when
// nothing was ever mocked.
func (s *Session) ClearMethodMocks() {
	s.registry.TearDown()
}

// Registry exposes the underlying registry for read-only inspection.
func (s *Session) Registry() *Registry {
	return s.registry
}

// Close tears down mock state and removes the load subscription.
func (s *Session) Close() {
	s.registry.TearDown()
	s.bridge.Close()
}
