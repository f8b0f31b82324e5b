// Package controller provides the output surfaces: plain table output for
// batch commands and an interactive Bubble Tea console.
package controller

import (
	"context"

	m "remock.dev/pkg/remock/internal/model"
)

// UI is the display interface the workflow drives. Implementations can use
// different output methods (simple text, TUI, etc).
type UI interface {
	DisplaySlots(ctx context.Context, slots []m.SlotInfo) error
	DisplayCallResults(ctx context.Context, results []m.CallResult) error
}

// MockCommands is the slice of the mocking session the console drives. It is
// declared here, over model types only, so the console does not depend on
// the registry implementation.
type MockCommands interface {
	AddMethodMock(typeName, methodName string, replacement m.Callable, predicate m.Predicate) error
	ClearMethodMocks()
}
