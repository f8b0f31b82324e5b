package mock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remock.dev/pkg/remock/internal/engine"
)

func TestSlotAddress_RoundTrip(t *testing.T) {
	loader := engine.NewLoader()

	_, err := loader.Compile("first", "class A { fn x() { return 1 } }")
	require.NoError(t, err)

	module, err := loader.Compile("second", `
class B {
    fn y() { return 2 }
    fn z() { return 3 }
}
`)
	require.NoError(t, err)

	slot, err := loader.ResolveSlot(module.ID(), 0, 1)
	require.NoError(t, err)

	addr := EncodeSlotAddress(slot)
	assert.Equal(t, SlotAddress("1:0:1"), addr)

	moduleID, classIndex, slotIndex, err := DecodeSlotAddress(addr)
	require.NoError(t, err)

	resolved, err := loader.ResolveSlot(moduleID, classIndex, slotIndex)
	require.NoError(t, err)
	assert.Same(t, slot, resolved)
}

func TestDecodeSlotAddress_Malformed(t *testing.T) {
	tests := []struct {
		name string
		addr SlotAddress
	}{
		{"empty", ""},
		{"too few parts", "1:2"},
		{"too many parts", "1:2:3:4"},
		{"non-numeric", "a:b:c"},
		{"negative", "-1:0:0"},
		{"trailing separator", "1:2:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := DecodeSlotAddress(tt.addr)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "malformed slot address")
		})
	}
}
