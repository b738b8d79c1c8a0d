// Package resource provides generational handle tables.
//
// A Table maps opaque numeric handles to values owned by the host side of
// the boundary. A handle packs a slot index together with the slot's
// generation; removing a value bumps the generation, so a handle that
// outlives its value is detectable in O(1) and resolves to "not found"
// rather than to whatever value reused the slot.
//
//	table := resource.NewTable[string]()
//
//	h := table.Insert("hello")
//	v, ok := table.Get(h)    // "hello", true
//	table.Remove(h)
//	_, ok = table.Get(h)     // false, even after the slot is reused
//
// Handle 0 is reserved and always invalid.
//
// Tables are internally synchronized so that Close may race with reads,
// but the boundary contract still requires callers to serialize mutating
// operations on any one logical object.
package resource
