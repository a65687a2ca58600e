// Package arena implements a pinned, chunked, generation-tagged slot store.
//
// An Arena hands out integer slot indices rather than pointers. Once a slot
// index has been observed it resolves to the same backing memory for the
// life of the Arena: growth allocates a new chunk and appends it to the
// chunk list, it never reallocates or moves an existing chunk. This mirrors
// the offset-into-a-never-moved-buffer discipline of pebble's
// internal/arenaskl.Arena, generalized from a single flat byte buffer to a
// slice of fixed-size chunks of the caller's payload type (so that the
// arena itself never needs to advertise a fixed total capacity).
package arena

import (
	"github.com/cockroachdb/errors"
)

// ErrOutOfBounds is returned when a slot index does not refer to any slot
// the Arena has ever allocated.
var ErrOutOfBounds = errors.New("arena: slot index out of bounds")

// ErrDoubleFree is returned by Free when the given slot is already vacant.
// This indicates an internal bookkeeping bug in the caller, not a user
// error, and callers in this module treat it as fatal.
var ErrDoubleFree = errors.New("arena: double free of vacant slot")

// cell is one slot of the arena: either occupied (holding a live value of
// type S) or vacant (holding only the bookkeeping needed to detect stale
// external references and, in Eager mode, to relink the free list).
type cell[S any] struct {
	generation uint64
	occupied   bool
	freeNext   int // valid iff !occupied; -1 terminates the free list
	value      S
}

// Arena is a pinned, chunked store of slots holding values of type S.
//
// Arena is not safe for concurrent mutation; concurrent reads (Get,
// Generation, Len, Capacity) from multiple goroutines are safe as long as
// no goroutine is concurrently calling Allocate or Free.
type Arena[S any] struct {
	chunks    [][]cell[S]
	chunkSize int
	used      int // slots handed out so far; the next never-yet-used index
	length    int // occupied count
	freeHead  int // -1 if the free list is empty
	lazy      bool
}

// New returns an empty Arena that grows in chunks of chunkSize slots.
func New[S any](chunkSize int) *Arena[S] {
	if chunkSize <= 0 {
		chunkSize = 256
	}
	return &Arena[S]{
		chunkSize: chunkSize,
		freeHead:  -1,
	}
}

// SetLazy toggles the reclamation mode. In Lazy mode, Allocate never reuses
// a freed slot index and Free links nothing into the free list; in Eager
// mode (the default), Free relinks the slot onto a LIFO free list that
// Allocate consults before growing the arena.
//
// Switching modes never invalidates an occupied slot. Switching from Lazy
// back to Eager rebuilds the free list from every vacant slot, so slots
// freed while Lazy become reusable (invariant 7 of the owning Tree's
// reclamation contract).
func (a *Arena[S]) SetLazy(lazy bool) {
	if a.lazy && !lazy {
		a.freeHead = -1
		for slot := a.used - 1; slot >= 0; slot-- {
			c, _ := a.cellAt(slot)
			if !c.occupied {
				c.freeNext = a.freeHead
				a.freeHead = slot
			}
		}
	}
	a.lazy = lazy
}

// Lazy reports the current reclamation mode.
func (a *Arena[S]) Lazy() bool {
	return a.lazy
}

func (a *Arena[S]) chunkIndex(slot int) (chunk, offset int) {
	return slot / a.chunkSize, slot % a.chunkSize
}

func (a *Arena[S]) growTo(slot int) {
	chunk, _ := a.chunkIndex(slot)
	for chunk >= len(a.chunks) {
		a.chunks = append(a.chunks, make([]cell[S], a.chunkSize))
	}
}

func (a *Arena[S]) cellAt(slot int) (*cell[S], bool) {
	if slot < 0 {
		return nil, false
	}
	chunk, offset := a.chunkIndex(slot)
	if chunk >= len(a.chunks) {
		return nil, false
	}
	return &a.chunks[chunk][offset], true
}

// Allocate reserves a slot holding value, returning its index. A freed slot
// is reused if one is available in Eager mode; otherwise the arena grows.
func (a *Arena[S]) Allocate(value S) int {
	if !a.lazy && a.freeHead != -1 {
		slot := a.freeHead
		c, _ := a.cellAt(slot)
		a.freeHead = c.freeNext
		c.occupied = true
		c.value = value
		a.length++
		return slot
	}

	slot := a.used
	a.used++
	a.growTo(slot)
	c, _ := a.cellAt(slot)
	c.occupied = true
	c.generation++
	c.value = value
	a.length++
	return slot
}

// capacityLen returns the number of slots allocated across all chunks so
// far, including slots of the last chunk not yet handed out.
func (a *Arena[S]) capacityLen() int {
	return len(a.chunks) * a.chunkSize
}

// Free marks slot vacant, advances its generation, and (in Eager mode)
// links it onto the free list. Free returns an error marked ErrDoubleFree
// if slot is already vacant or out of bounds: a well-behaved caller never
// frees a slot it does not already know to be occupied, so this path
// indicates an internal bug, not a reportable user error.
func (a *Arena[S]) Free(slot int) error {
	c, ok := a.cellAt(slot)
	if !ok || !c.occupied {
		return errors.Mark(errors.Newf("arena: free of non-occupied slot %d", slot), ErrDoubleFree)
	}
	var zero S
	c.value = zero
	c.occupied = false
	c.generation++
	a.length--
	if !a.lazy {
		c.freeNext = a.freeHead
		a.freeHead = slot
	} else {
		c.freeNext = -1
	}
	return nil
}

// Get returns a pointer to the value at slot and its generation, or
// ErrOutOfBounds if slot was never allocated. The returned pointer is nil
// (and ok is false) when the slot is currently vacant; the generation is
// still returned so callers can distinguish "never allocated" from
// "allocated, then freed".
func (a *Arena[S]) Get(slot int) (value *S, generation uint64, occupied bool, err error) {
	c, ok := a.cellAt(slot)
	if !ok {
		return nil, 0, false, ErrOutOfBounds
	}
	if !c.occupied {
		return nil, c.generation, false, nil
	}
	return &c.value, c.generation, true, nil
}

// Generation returns the current generation of slot, or ErrOutOfBounds.
func (a *Arena[S]) Generation(slot int) (uint64, error) {
	c, ok := a.cellAt(slot)
	if !ok {
		return 0, ErrOutOfBounds
	}
	return c.generation, nil
}

// Occupied reports whether slot currently holds a live value.
func (a *Arena[S]) Occupied(slot int) bool {
	c, ok := a.cellAt(slot)
	return ok && c.occupied
}

// Len returns the number of currently occupied slots.
func (a *Arena[S]) Len() int {
	return a.length
}

// Capacity returns the number of slots allocated across all chunks,
// occupied or vacant.
func (a *Arena[S]) Capacity() int {
	return a.capacityLen()
}

// All iterates every occupied slot in arena order (chunk order, then
// offset order), skipping vacant slots. This is the "arbitrary but
// deterministic" order spec'd for Tree.All/AllMut.
func (a *Arena[S]) All(yield func(slot int, value *S) bool) {
	n := a.capacityLen()
	for slot := 0; slot < n; slot++ {
		c, _ := a.cellAt(slot)
		if c == nil || !c.occupied {
			continue
		}
		if !yield(slot, &c.value) {
			return
		}
	}
}
