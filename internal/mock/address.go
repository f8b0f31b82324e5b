package mock

import (
	"fmt"
	"strconv"
	"strings"

	"remock.dev/pkg/remock/internal/engine"
)

// SlotAddress is the serializable identity of one call slot: the slot's
// module ID, class index, and slot index joined into a string. A redirect
// body captures only this string at installation time and hands it back to
// the registry on every call, because a running implementation has no other
// way to learn which slot it was installed into.
type SlotAddress string

const addressSeparator = ":"

// EncodeSlotAddress derives the stable address of a slot.
func EncodeSlotAddress(slot *engine.Slot) SlotAddress {
	moduleID, classIndex, slotIndex := slot.Location()

	return SlotAddress(strconv.Itoa(moduleID) + addressSeparator +
		strconv.Itoa(classIndex) + addressSeparator +
		strconv.Itoa(slotIndex))
}

// DecodeSlotAddress splits an address back into its coordinate triple. It
// does not check that the coordinates resolve; that is the host's job.
func DecodeSlotAddress(addr SlotAddress) (moduleID, classIndex, slotIndex int, err error) {
	parts := strings.Split(string(addr), addressSeparator)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("malformed slot address %q", string(addr))
	}

	nums := make([]int, 3)

	for i, part := range parts {
		n, convErr := strconv.Atoi(part)
		if convErr != nil || n < 0 {
			return 0, 0, 0, fmt.Errorf("malformed slot address %q", string(addr))
		}

		nums[i] = n
	}

	return nums[0], nums[1], nums[2], nil
}
