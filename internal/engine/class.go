package engine

import (
	"fmt"
	"sync"

	"remock.dev/pkg/remock/internal/model"
)

// Type is anything the loader registers under a name: visible classes and
// their hidden companion slot tables.
type Type interface {
	TypeName() string
}

// Class is one loaded version of a class declaration. Recompiling a script
// that declares the same class name yields a distinct *Class with its own
// companion table; existing instances keep the version they were created
// from.
type Class struct {
	name   string
	module *Module
	index  int
	fields []FieldDecl

	companion *SlotTable
}

// TypeName returns the class name as written in the script.
func (c *Class) TypeName() string { return c.name }

// Module returns the module this class version was compiled into.
func (c *Class) Module() *Module { return c.module }

// Index returns the class's position within its module.
func (c *Class) Index() int { return c.index }

// Companion returns the hidden slot table holding this class's call slots.
func (c *Class) Companion() *SlotTable { return c.companion }

// Fields returns the declared fields in declaration order.
func (c *Class) Fields() []FieldDecl { return c.fields }

// New instantiates the class, evaluating field defaults in an empty scope.
func (c *Class) New() (*Object, error) {
	obj := &Object{class: c, fields: make(map[string]any, len(c.fields))}

	for _, f := range c.fields {
		v, err := evalExpr(f.Default, &model.Call{TypeName: c.name})
		if err != nil {
			return nil, fmt.Errorf("default for %s.%s: %w", c.name, f.Name, err)
		}

		obj.fields[f.Name] = v
	}

	return obj, nil
}

// SlotTable is the companion structure: one call slot per method of one class
// version. It is itself registered as a type named "<Class>__Slots" so load
// notifications can see (and skip) it.
type SlotTable struct {
	class  *Class
	slots  []*Slot
	byName map[string]*Slot
}

// TypeName returns the reserved companion type name.
func (t *SlotTable) TypeName() string { return t.class.name + model.CompanionMarker }

// Class returns the visible class this table belongs to.
func (t *SlotTable) Class() *Class { return t.class }

// Slots returns all slots in declaration order.
func (t *SlotTable) Slots() []*Slot { return t.slots }

// Slot finds a slot by method name.
func (t *SlotTable) Slot(name string) (*Slot, bool) {
	s, ok := t.byName[name]
	return s, ok
}

// Slot is one mutable call slot: the current implementation of one method of
// one class version. Dispatch always reads the slot at call time, so writing
// a new implementation takes effect for every instance immediately.
type Slot struct {
	table *SlotTable
	index int
	decl  *MethodDecl

	mu   sync.RWMutex
	impl model.Callable
}

// Decl returns the method declaration this slot was compiled from.
func (s *Slot) Decl() *MethodDecl { return s.decl }

// MethodName returns the method name.
func (s *Slot) MethodName() string { return s.decl.Name }

// Class returns the visible class owning this slot.
func (s *Slot) Class() *Class { return s.table.class }

// Index returns the slot's position within its companion table.
func (s *Slot) Index() int { return s.index }

// Location returns the (module, class, slot) integer triple that identifies
// this slot across the loader.
func (s *Slot) Location() (moduleID, classIndex, slotIndex int) {
	return s.table.class.module.id, s.table.class.index, s.index
}

// Impl returns the slot's current implementation.
func (s *Slot) Impl() model.Callable {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.impl
}

// SetImpl atomically replaces the slot's implementation.
func (s *Slot) SetImpl(impl model.Callable) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.impl = impl
}

// Invoke runs the slot's current implementation against a receiver. The call
// context carries the declared parameter names so bodies, predicates, and
// replacements can bind arguments by name.
func (s *Slot) Invoke(receiver model.Receiver, args []any) (any, error) {
	if len(args) != len(s.decl.Params) {
		return nil, fmt.Errorf("%s.%s expects %d argument(s), got %d",
			s.table.class.name, s.decl.Name, len(s.decl.Params), len(args))
	}

	call := &model.Call{
		TypeName:   s.table.class.name,
		MethodName: s.decl.Name,
		Receiver:   receiver,
		Params:     s.decl.Params,
		Args:       args,
	}

	return s.Impl()(call)
}

// newCompanion builds the slot table for a class: user-declared methods in
// declaration order, then one synthesized accessor per field.
func newCompanion(class *Class, decl *ClassDecl) (*SlotTable, error) {
	table := &SlotTable{class: class, byName: make(map[string]*Slot)}

	add := func(md *MethodDecl, impl model.Callable) error {
		if _, dup := table.byName[md.Name]; dup {
			return fmt.Errorf("class %s declares method %s twice", decl.Name, md.Name)
		}

		slot := &Slot{table: table, index: len(table.slots), decl: md, impl: impl}
		table.slots = append(table.slots, slot)
		table.byName[md.Name] = slot

		return nil
	}

	for _, md := range decl.Methods {
		if err := add(md, methodImpl(md)); err != nil {
			return nil, err
		}
	}

	for _, f := range decl.Fields {
		md := &MethodDecl{
			Name:        "get_" + f.Name,
			Returns:     true,
			Synthesized: true,
			Line:        f.Line,
		}

		if err := add(md, accessorImpl(f.Name)); err != nil {
			return nil, err
		}
	}

	return table, nil
}
