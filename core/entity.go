package core

import "strconv"

// Entity is an opaque handle into the entity store
// Low 32 bits hold the slot index, high 32 bits the slot generation
// Generation 0 is never issued, so the zero Entity is never valid
type Entity uint64

// NoEntity is the zero handle
const NoEntity Entity = 0

// NewEntity packs a slot index and generation into a handle
func NewEntity(slot, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(slot))
}

// Slot returns the storage slot index
func (e Entity) Slot() uint32 {
	return uint32(e)
}

// Generation returns the slot generation the handle was issued with
func (e Entity) Generation() uint32 {
	return uint32(e >> 32)
}

func (e Entity) String() string {
	return "e" + strconv.FormatUint(uint64(e.Slot()), 10) + "v" + strconv.FormatUint(uint64(e.Generation()), 10)
}
