package dcyclic_test

import (
	"testing"

	"github.com/gordian-engine/notify/dcyclic"
	"github.com/stretchr/testify/require"
)

func TestNewIndex_panicsOnZeroCapacity(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		_ = dcyclic.NewIndex(0)
	})
}

func TestIndex_capacityFour(t *testing.T) {
	t.Parallel()

	i := dcyclic.NewIndex(4)
	require.Equal(t, 0, i.Readable())
	require.Equal(t, 3, i.Writable())

	require.NoError(t, i.Write(2, 0))
	require.Equal(t, 2, i.Readable())
	require.Equal(t, 1, i.Writable())

	err := i.Write(2, 0)
	require.Error(t, err)

	var ie *dcyclic.InsufficientError
	require.ErrorAs(t, err, &ie)
	require.Equal(t, "write", ie.Op)
	require.Equal(t, 2, ie.Want)
	require.Equal(t, 1, ie.Have)

	// The failed write left the cursors alone.
	require.Equal(t, 0, i.ReadIndex())
	require.Equal(t, 2, i.WriteIndex())

	// Forcing the same write advances the write cursor by two
	// and puts the read cursor one slot past it.
	require.NoError(t, i.Write(2, 1))
	require.Equal(t, 0, i.WriteIndex())
	require.Equal(t, 1, i.ReadIndex())

	// read = (write + force) mod capacity = (0 + 1) mod 4 = 1,
	// so readable = (0 - 1) mod 4 = 3, not 2:
	// only the one slot at index 0 is discarded.
	require.Equal(t, 3, i.Readable())
	require.Equal(t, 0, i.Writable())
}

func TestIndex_Read_insufficient(t *testing.T) {
	t.Parallel()

	i := dcyclic.NewIndex(8)
	require.NoError(t, i.Write(3, 0))

	err := i.Read(4)
	var ie *dcyclic.InsufficientError
	require.ErrorAs(t, err, &ie)
	require.Equal(t, "read", ie.Op)
	require.Equal(t, 3, ie.Have)
	require.Equal(t, 0, i.ReadIndex())

	require.NoError(t, i.Read(3))
	require.Equal(t, 0, i.Readable())
	require.Equal(t, 7, i.Writable())
}

func TestIndex_roundTrip(t *testing.T) {
	t.Parallel()

	for _, capacity := range []int{1, 2, 3, 5, 16} {
		i := dcyclic.NewIndex(capacity)

		// Walk the cursors all the way around the ring a few times,
		// with a varying amount of data already buffered.
		for step := range capacity * 3 {
			pre := step % capacity
			if pre > i.Writable() {
				pre = i.Writable()
			}
			require.NoError(t, i.Write(pre, 0))

			r, w := i.Readable(), i.Writable()
			for k := range w + 1 {
				require.NoError(t, i.Write(k, 0))
				require.NoError(t, i.Read(k))

				require.Equal(t, r, i.Readable())
				require.Equal(t, w, i.Writable())
			}

			require.NoError(t, i.Read(pre))
			require.NoError(t, i.Read(0))
			require.NoError(t, i.Write(1, 1))
			require.NoError(t, i.Read(i.Readable()))
		}
	}
}

func TestIndex_Write_forceSkipsOverwrittenSpan(t *testing.T) {
	t.Parallel()

	i := dcyclic.NewIndex(6)
	require.NoError(t, i.Write(4, 0))
	require.NoError(t, i.Read(1))

	// Readable is 3, writable is 2.
	require.Equal(t, 3, i.Readable())
	require.Equal(t, 2, i.Writable())

	oldWrite := i.WriteIndex()
	require.NoError(t, i.Write(4, 1))

	require.Equal(t, (oldWrite+4)%6, i.WriteIndex())
	require.Equal(t, (i.WriteIndex()+1)%6, i.ReadIndex())
	require.Equal(t, 5, i.Readable())
}

func TestIndex_RelativeReadIndex(t *testing.T) {
	t.Parallel()

	i := dcyclic.NewIndex(5)
	require.NoError(t, i.Write(4, 0))
	require.NoError(t, i.Read(3))
	require.NoError(t, i.Write(3, 0))

	// Read cursor at 3, four slots readable: 3, 4, 0, 1.
	require.Equal(t, 4, i.Readable())
	require.Equal(t, 3, i.RelativeReadIndex(0))
	require.Equal(t, 4, i.RelativeReadIndex(1))
	require.Equal(t, 0, i.RelativeReadIndex(2))
	require.Equal(t, 1, i.RelativeReadIndex(3))

	// Offsets wrap by the readable length.
	require.Equal(t, 3, i.RelativeReadIndex(4))
}

func TestIndex_RelativeReadIndex_panicsWhenEmpty(t *testing.T) {
	t.Parallel()

	i := dcyclic.NewIndex(3)
	require.Panics(t, func() {
		_ = i.RelativeReadIndex(0)
	})
}
