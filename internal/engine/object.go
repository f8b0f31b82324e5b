package engine

import (
	"fmt"
	"sync"
)

// Object is an instance of one class version. Field access is synchronized
// because mocked methods may be invoked from multiple goroutines.
type Object struct {
	class *Class

	mu     sync.RWMutex
	fields map[string]any
}

// Class returns the class version this instance was created from.
func (o *Object) Class() *Class { return o.class }

// TypeName implements model.Receiver.
func (o *Object) TypeName() string { return o.class.name }

// GetField implements model.Receiver.
func (o *Object) GetField(name string) (any, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	v, ok := o.fields[name]

	return v, ok
}

// SetField implements model.Receiver. Only declared fields may be assigned.
func (o *Object) SetField(name string, value any) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.fields[name]; !ok {
		return fmt.Errorf("%s has no field %s", o.class.name, name)
	}

	o.fields[name] = value

	return nil
}

// Call dispatches a method through the class's companion slot table. This is
// the only invocation path; whatever implementation currently sits in the
// slot runs, original or redirect.
func (o *Object) Call(method string, args ...any) (any, error) {
	slot, ok := o.class.companion.Slot(method)
	if !ok {
		return nil, fmt.Errorf("%s does not understand %s", o.class.name, method)
	}

	return slot.Invoke(o, args)
}
