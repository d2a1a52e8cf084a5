package dcyclic

import (
	"github.com/bits-and-blooms/bitset"
)

// Ring is a bounded FIFO of values stored in the slots of an [Index].
//
// Besides plain Pop, a consumer may mark values at arbitrary offsets
// as released with [*Ring.Release], finishing them out of order;
// [*Ring.Compact] then advances the read cursor
// over the contiguous released prefix.
//
// A Ring is not safe for concurrent use.
type Ring[T any] struct {
	idx   *Index
	slots []T

	// Absolute slots that have been released but not yet compacted.
	released *bitset.BitSet
}

// NewRing returns a Ring able to hold capacity-1 values.
// NewRing panics if capacity is less than one.
func NewRing[T any](capacity int) *Ring[T] {
	idx := NewIndex(capacity)
	return &Ring[T]{
		idx:      idx,
		slots:    make([]T, capacity),
		released: bitset.MustNew(uint(capacity)),
	}
}

// Len reports the number of unread values.
func (r *Ring[T]) Len() int {
	return r.idx.Readable()
}

// Cap reports the maximum number of unread values.
func (r *Ring[T]) Cap() int {
	return r.idx.Capacity() - 1
}

// Push appends v.
// If the ring is full, v is not stored and an [*InsufficientError] is returned.
func (r *Ring[T]) Push(v T) error {
	w := r.idx.WriteIndex()
	if err := r.idx.Write(1, 0); err != nil {
		return err
	}

	r.slots[w] = v
	return nil
}

// PushOverwrite appends v, discarding the oldest unread value if the ring is full.
// It returns the number of discarded values.
func (r *Ring[T]) PushOverwrite(v T) (dropped int) {
	before := r.idx.Readable()
	oldRead := r.idx.ReadIndex()
	w := r.idx.WriteIndex()

	r.slots[w] = v
	if err := r.idx.Write(1, 1); err != nil {
		// Unreachable with a positive force.
		panic(err)
	}

	dropped = before + 1 - r.idx.Readable()
	for k := range dropped {
		r.clearSlot((oldRead + k) % len(r.slots))
	}
	return dropped
}

// Peek returns the value offset positions after the read cursor.
// The boolean result is false if offset is outside the unread span.
func (r *Ring[T]) Peek(offset int) (T, bool) {
	if offset < 0 || offset >= r.idx.Readable() {
		var zero T
		return zero, false
	}

	return r.slots[r.idx.RelativeReadIndex(offset)], true
}

// Pop removes and returns the oldest unread value.
// The boolean result is false if the ring is empty.
func (r *Ring[T]) Pop() (T, bool) {
	if r.idx.Readable() == 0 {
		var zero T
		return zero, false
	}

	i := r.idx.ReadIndex()
	v := r.slots[i]
	r.clearSlot(i)

	if err := r.idx.Read(1); err != nil {
		panic(err)
	}
	return v, true
}

// Release marks the value offset positions after the read cursor as finished.
// The value stays readable until a [*Ring.Compact] call passes over it.
//
// Release panics if offset is outside the unread span.
func (r *Ring[T]) Release(offset int) {
	if offset < 0 || offset >= r.idx.Readable() {
		panic(&InsufficientError{Op: "release", Want: offset + 1, Have: r.idx.Readable()})
	}

	r.released.Set(uint(r.idx.RelativeReadIndex(offset)))
}

// Compact advances the read cursor past every released value
// at the head of the ring, and reports how many values were removed.
func (r *Ring[T]) Compact() int {
	n := 0
	for r.idx.Readable() > 0 {
		i := r.idx.ReadIndex()
		if !r.released.Test(uint(i)) {
			break
		}

		r.clearSlot(i)
		if err := r.idx.Read(1); err != nil {
			panic(err)
		}
		n++
	}
	return n
}

// Reset discards all values.
func (r *Ring[T]) Reset() {
	clear(r.slots)
	r.released.ClearAll()
	r.idx.Reset()
}

func (r *Ring[T]) clearSlot(i int) {
	var zero T
	r.slots[i] = zero
	r.released.Clear(uint(i))
}
