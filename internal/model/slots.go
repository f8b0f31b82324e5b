package model

// SlotInfo is a display row describing one call slot.
type SlotInfo struct {
	Address     string
	Module      string
	Class       string
	Method      string
	Arity       int
	Synthesized bool
	Rewritten   bool
	Overrides   int
}
