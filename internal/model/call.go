// Package model defines the data structures shared by the class engine and
// the mocking core.
package model

import "fmt"

// Path represents a file system path.
type Path string

// CompanionMarker is the reserved substring in companion slot-table type
// names. Types whose name contains it are engine infrastructure, never user
// classes, and are ignored by load notifications.
const CompanionMarker = "__Slots"

// MethodKey identifies one method of one class name, e.g. "Counter.bump".
// Overrides are keyed by class NAME, not by loaded class version, so the
// same overrides apply to every compiled version of a class.
type MethodKey string

// NewMethodKey builds the canonical key for a class/method pair.
func NewMethodKey(typeName, methodName string) MethodKey {
	return MethodKey(typeName + "." + methodName)
}

// Receiver is the `self` of a method call. The engine's object type
// implements it; fakes in tests provide their own.
type Receiver interface {
	TypeName() string
	GetField(name string) (any, bool)
	SetField(name string, value any) error
}

// Call carries everything a method body, predicate, or replacement may see:
// the receiver and the positional arguments together with the declared
// parameter names they bind to.
type Call struct {
	TypeName   string
	MethodName string
	Receiver   Receiver
	Params     []string
	Args       []any
}

// Lookup resolves an identifier against the call scope: parameter bindings
// first, then receiver fields.
func (c *Call) Lookup(name string) (any, bool) {
	for i, p := range c.Params {
		if p == name && i < len(c.Args) {
			return c.Args[i], true
		}
	}
	if c.Receiver != nil {
		return c.Receiver.GetField(name)
	}
	return nil, false
}

// Key returns the method key for this call.
func (c *Call) Key() MethodKey {
	return NewMethodKey(c.TypeName, c.MethodName)
}

// Callable is an invocable method body: an original implementation, a
// replacement, or a synthesized redirect. Values are engine values
// (int64, float64, string, bool, nil, Receiver).
type Callable func(call *Call) (any, error)

// Predicate gates a replacement. It runs with the call's receiver and
// arguments in scope and returns whether the replacement should run.
type Predicate func(call *Call) (bool, error)

// Truthy reports the engine's truthiness rule: nil and false are falsy,
// everything else (including 0 and "") is truthy.
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// FormatValue renders an engine value the way the CLI displays results.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", x)
	case Receiver:
		return "<" + x.TypeName() + ">"
	default:
		return fmt.Sprintf("%v", x)
	}
}
