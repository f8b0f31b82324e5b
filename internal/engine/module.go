package engine

import (
	"fmt"
	"sync"
)

// Module is the unit of loading: the result of compiling one script. Module
// IDs are assigned by the loader and are stable for the loader's lifetime.
type Module struct {
	id      int
	name    string
	classes []*Class
}

// ID returns the loader-assigned module identifier.
func (m *Module) ID() int { return m.id }

// Name returns the script name the module was compiled from.
func (m *Module) Name() string { return m.name }

// Classes returns the visible classes in declaration order.
func (m *Module) Classes() []*Class { return m.classes }

// Types returns every type the module registers: visible classes and their
// hidden companion tables.
func (m *Module) Types() []Type {
	types := make([]Type, 0, len(m.classes)*2)
	for _, c := range m.classes {
		types = append(types, c, c.companion)
	}

	return types
}

// Loader compiles scripts into modules and raises load notifications.
// Compile may be called from any goroutine; subscribers run synchronously on
// the calling goroutine, after the module is registered.
type Loader struct {
	mu      sync.RWMutex
	modules []*Module
	subs    map[int]func(*Module)
	nextSub int
}

// NewLoader creates an empty loader.
func NewLoader() *Loader {
	return &Loader{subs: make(map[int]func(*Module))}
}

// Compile parses a script and registers its classes as a new module.
func (l *Loader) Compile(name, src string) (*Module, error) {
	decls, err := parseScript(src)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}

	module := &Module{name: name}

	for i, decl := range decls {
		class := &Class{name: decl.Name, module: module, index: i, fields: decl.Fields}

		companion, err := newCompanion(class, decl)
		if err != nil {
			return nil, fmt.Errorf("compile %s: %w", name, err)
		}

		class.companion = companion
		module.classes = append(module.classes, class)
	}

	l.mu.Lock()
	module.id = len(l.modules)
	l.modules = append(l.modules, module)

	subs := make([]func(*Module), 0, len(l.subs))
	for _, fn := range l.subs {
		subs = append(subs, fn)
	}
	l.mu.Unlock()

	for _, fn := range subs {
		fn(module)
	}

	return module, nil
}

// Modules returns a snapshot of all loaded modules in load order.
func (l *Loader) Modules() []*Module {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Module, len(l.modules))
	copy(out, l.modules)

	return out
}

// Module looks a module up by ID.
func (l *Loader) Module(id int) (*Module, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if id < 0 || id >= len(l.modules) {
		return nil, false
	}

	return l.modules[id], true
}

// ClassesByName returns every loaded version of a class name, oldest first.
func (l *Loader) ClassesByName(name string) []*Class {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []*Class

	for _, m := range l.modules {
		for _, c := range m.classes {
			if c.name == name {
				out = append(out, c)
			}
		}
	}

	return out
}

// ResolveSlot maps a (module, class, slot) triple back to the slot it
// identifies, failing if any component is out of range.
func (l *Loader) ResolveSlot(moduleID, classIndex, slotIndex int) (*Slot, error) {
	module, ok := l.Module(moduleID)
	if !ok {
		return nil, fmt.Errorf("no module with id %d", moduleID)
	}

	if classIndex < 0 || classIndex >= len(module.classes) {
		return nil, fmt.Errorf("module %d has no class index %d", moduleID, classIndex)
	}

	table := module.classes[classIndex].companion
	if slotIndex < 0 || slotIndex >= len(table.slots) {
		return nil, fmt.Errorf("class %s has no slot index %d", module.classes[classIndex].name, slotIndex)
	}

	return table.slots[slotIndex], nil
}

// Subscribe registers a module-load callback and returns a cancel func.
func (l *Loader) Subscribe(fn func(*Module)) (cancel func()) {
	l.mu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.subs, id)
		l.mu.Unlock()
	}
}
