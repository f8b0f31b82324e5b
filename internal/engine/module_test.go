package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_CompileAssignsModuleIDs(t *testing.T) {
	loader := NewLoader()

	first, err := loader.Compile("a", "class A { fn x() { return 1 } }")
	require.NoError(t, err)

	second, err := loader.Compile("b", "class B { fn y() { return 2 } }")
	require.NoError(t, err)

	assert.Equal(t, 0, first.ID())
	assert.Equal(t, 1, second.ID())
	assert.Len(t, loader.Modules(), 2)
}

func TestLoader_CompileError(t *testing.T) {
	loader := NewLoader()

	_, err := loader.Compile("bad", "class {")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile bad")
	assert.Empty(t, loader.Modules(), "failed compiles register nothing")
}

func TestLoader_DuplicateMethodRejected(t *testing.T) {
	loader := NewLoader()

	_, err := loader.Compile("dup", `
class D {
    fn m() { return 1 }
    fn m() { return 2 }
}
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "twice")
}

func TestLoader_ClassesByNameOldestFirst(t *testing.T) {
	loader := NewLoader()

	_, err := loader.Compile("v1", "class C { fn m() { return 1 } }")
	require.NoError(t, err)

	_, err = loader.Compile("v2", "class C { fn m() { return 2 } }")
	require.NoError(t, err)

	versions := loader.ClassesByName("C")
	require.Len(t, versions, 2)
	assert.Equal(t, 0, versions[0].Module().ID())
	assert.Equal(t, 1, versions[1].Module().ID())
	assert.NotSame(t, versions[0], versions[1])

	assert.Empty(t, loader.ClassesByName("Nope"))
}

func TestModule_TypesIncludesCompanions(t *testing.T) {
	loader := NewLoader()

	module, err := loader.Compile("a", "class A { fn x() { return 1 } }")
	require.NoError(t, err)

	types := module.Types()
	require.Len(t, types, 2)
	assert.Equal(t, "A", types[0].TypeName())
	assert.Equal(t, "A__Slots", types[1].TypeName())
}

func TestLoader_ResolveSlot(t *testing.T) {
	loader := NewLoader()

	module, err := loader.Compile("a", `
class A {
    var f = 1

    fn m() { return 1 }
}
`)
	require.NoError(t, err)

	slot, err := loader.ResolveSlot(module.ID(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "m", slot.MethodName())

	// Synthesized accessors occupy slots after user methods.
	slot, err = loader.ResolveSlot(module.ID(), 0, 1)
	require.NoError(t, err)
	assert.Equal(t, "get_f", slot.MethodName())
	assert.True(t, slot.Decl().Synthesized)

	_, err = loader.ResolveSlot(99, 0, 0)
	assert.Error(t, err)

	_, err = loader.ResolveSlot(module.ID(), 5, 0)
	assert.Error(t, err)

	_, err = loader.ResolveSlot(module.ID(), 0, 9)
	assert.Error(t, err)
}

func TestSlot_LocationRoundTrip(t *testing.T) {
	loader := NewLoader()

	module, err := loader.Compile("a", "class A { fn m() { return 1 } }")
	require.NoError(t, err)

	slot := module.Classes()[0].Companion().Slots()[0]
	moduleID, classIndex, slotIndex := slot.Location()

	resolved, err := loader.ResolveSlot(moduleID, classIndex, slotIndex)
	require.NoError(t, err)
	assert.Same(t, slot, resolved)
}

func TestLoader_SubscribeAndCancel(t *testing.T) {
	loader := NewLoader()

	var loaded []string

	cancel := loader.Subscribe(func(m *Module) {
		loaded = append(loaded, m.Name())
	})

	_, err := loader.Compile("first", "class A { fn x() { return 1 } }")
	require.NoError(t, err)
	assert.Equal(t, []string{"first"}, loaded)

	cancel()

	_, err = loader.Compile("second", "class B { fn y() { return 2 } }")
	require.NoError(t, err)
	assert.Equal(t, []string{"first"}, loaded, "cancelled subscriber stops firing")
}
