// Package mock implements runtime method interception for engine classes:
// an override registry, the call-slot rewrite protocol, the slot address
// codec, redirect building, and the module-load bridge that picks up classes
// compiled after registration.
package mock

import (
	"errors"
	"fmt"
)

// errNoRecord means an address decoded to a live slot that has no saved
// original — registry state inconsistent with the installed redirects.
var errNoRecord = errors.New("slot has no rewrite record")

// ValidationError reports invalid registration arguments. No state is
// mutated when one is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid mock registration: " + e.Reason
}

// SlotResolutionError reports that a baked-in slot address could not be
// decoded against the currently loaded modules at call time. It fails the
// one intercepted call that hit it; registry state is untouched.
type SlotResolutionError struct {
	Address SlotAddress
	Cause   error
}

func (e *SlotResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve call slot %q: %v", string(e.Address), e.Cause)
}

func (e *SlotResolutionError) Unwrap() error { return e.Cause }
