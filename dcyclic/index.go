package dcyclic

import "fmt"

// Index is a pair of modular cursors over a fixed capacity.
//
// The zero value is not usable; create an Index with [NewIndex].
// An Index is not safe for concurrent use.
type Index struct {
	capacity int

	read, write int
}

// NewIndex returns an Index over capacity slots.
// NewIndex panics if capacity is less than one.
func NewIndex(capacity int) *Index {
	if capacity < 1 {
		panic(fmt.Errorf("BUG: cyclic index capacity must be at least 1 (got %d)", capacity))
	}

	return &Index{capacity: capacity}
}

// Capacity reports the number of slots, including the reserved slot.
func (i *Index) Capacity() int {
	return i.capacity
}

// ReadIndex is the absolute slot of the next value to read.
func (i *Index) ReadIndex() int {
	return i.read
}

// WriteIndex is the absolute slot of the next value to write.
func (i *Index) WriteIndex() int {
	return i.write
}

// Readable reports how many slots may be read.
func (i *Index) Readable() int {
	return mod(i.write-i.read, i.capacity)
}

// Writable reports how many slots may be written
// without overwriting unread data.
func (i *Index) Writable() int {
	return mod(i.read-i.write+i.capacity-1, i.capacity)
}

// Read advances the read cursor by n.
// If fewer than n slots are readable, the cursor is unchanged
// and an [*InsufficientError] is returned.
func (i *Index) Read(n int) error {
	checkCount(n)

	if have := i.Readable(); have < n {
		return &InsufficientError{Op: "read", Want: n, Have: have}
	}

	i.read = mod(i.read+n, i.capacity)
	return nil
}

// Write advances the write cursor by n.
//
// If fewer than n slots are writable and force is zero,
// the cursors are unchanged and an [*InsufficientError] is returned.
//
// If fewer than n slots are writable and force is positive,
// the write cursor still advances by n,
// and the read cursor is moved to force slots past the new write cursor,
// discarding the oldest unread span.
// This is the overwrite policy for producers that must never block.
func (i *Index) Write(n, force int) error {
	checkCount(n)
	if force < 0 {
		panic(fmt.Errorf("BUG: cyclic index force must not be negative (got %d)", force))
	}

	if have := i.Writable(); have < n {
		if force == 0 {
			return &InsufficientError{Op: "write", Want: n, Have: have}
		}

		i.write = mod(i.write+n, i.capacity)
		i.read = mod(i.write+force, i.capacity)
		return nil
	}

	i.write = mod(i.write+n, i.capacity)
	return nil
}

// RelativeReadIndex maps an offset from the read cursor
// to an absolute slot.
// The offset wraps by the currently readable length,
// so callers should keep offset below [*Index.Readable].
//
// RelativeReadIndex panics if nothing is readable or offset is negative.
func (i *Index) RelativeReadIndex(offset int) int {
	readable := i.Readable()
	if readable == 0 {
		panic(fmt.Errorf("BUG: relative read index requested on empty cyclic index"))
	}
	if offset < 0 {
		panic(fmt.Errorf("BUG: relative read offset must not be negative (got %d)", offset))
	}

	return mod(i.read+offset%readable, i.capacity)
}

// Reset moves both cursors back to slot zero.
func (i *Index) Reset() {
	i.read = 0
	i.write = 0
}

func checkCount(n int) {
	if n < 0 {
		panic(fmt.Errorf("BUG: cyclic index span must not be negative (got %d)", n))
	}
}

// mod is the non-negative remainder of a divided by n.
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
