package dcancel_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/gordian-engine/notify/dcancel"
	"github.com/gordian-engine/notify/dobs"
	"github.com/gordian-engine/notify/dobs/dobstest"
	"github.com/gordian-engine/notify/internal/dtest"
	"github.com/stretchr/testify/require"
)

func TestToken_Cancel_idempotent(t *testing.T) {
	t.Parallel()

	tok := dcancel.New()
	require.False(t, tok.Cancelled())
	require.NoError(t, tok.Reason())
	dtest.NotSending(t, tok.Done())

	r := dobstest.NewChannelRecorder(dcancel.NameCancel)
	r.Observer.Observe(tok.Observable()).Activate()

	errFirst := errors.New("first")
	tok.Cancel(errFirst)
	tok.Cancel(errors.New("second"))
	tok.Cancel(nil)

	require.True(t, tok.Cancelled())
	require.Same(t, errFirst, tok.Reason())
	dtest.IsSending(t, tok.Done())

	require.Equal(t, []dobs.Notification{
		{Name: dcancel.NameCancel, Value: errFirst},
	}, r.Values())
}

func TestToken_Cancel_nilReason(t *testing.T) {
	t.Parallel()

	tok := dcancel.New()
	tok.Cancel(nil)
	require.ErrorIs(t, tok.Reason(), context.Canceled)
}

func TestToken_onlyCancelChannel(t *testing.T) {
	t.Parallel()

	tok := dcancel.New()

	require.PanicsWithValue(t, dcancel.UnknownChannelError{Name: "next"}, func() {
		tok.AddListener("next", func(any) {})
	})
	require.False(t, tok.Observed())

	// Name-agnostic observers are fine; they only ever see cancel.
	var got []dobs.Notification
	tok.AddAnyListener(func(n dobs.Notification) {
		got = append(got, n)
	})
	tok.Cancel(nil)
	require.Len(t, got, 1)
	require.Equal(t, dcancel.NameCancel, got[0].Name)
}

func TestToken_OnCancel_undo(t *testing.T) {
	t.Parallel()

	tok := dcancel.New()

	var calls int
	undo := tok.OnCancel(func(error) {
		calls++
	})
	require.True(t, tok.Observed())

	undo()
	undo()
	require.False(t, tok.Observed())

	tok.Cancel(nil)
	require.Zero(t, calls)
}

func TestOf_followsParent(t *testing.T) {
	t.Parallel()

	t1 := dcancel.New()
	t2 := dcancel.Of(t1)
	require.False(t, t2.Cancelled())

	errX := errors.New("X")
	t1.Cancel(errX)

	require.True(t, t2.Cancelled())
	require.Same(t, errX, t2.Reason())

	// Every link listener has been removed.
	require.False(t, t1.Observed())
	require.False(t, t2.Observed())
}

func TestOf_alreadyCancelledParent(t *testing.T) {
	t.Parallel()

	errR := errors.New("R")
	p1 := dcancel.New()
	p2 := dcancel.New()
	p2.Cancel(errR)

	tok := dcancel.Of(p1, p2)
	require.True(t, tok.Cancelled())
	require.Same(t, errR, tok.Reason())

	require.False(t, p1.Observed())
	require.False(t, p2.Observed())
	require.False(t, tok.Observed())
}

func TestOf_firstParentWins(t *testing.T) {
	t.Parallel()

	p1 := dcancel.New()
	p2 := dcancel.New()
	tok := dcancel.Of(p1, p2)

	errSecond := errors.New("second parent")
	p2.Cancel(errSecond)
	p1.Cancel(errors.New("first parent"))

	require.Same(t, errSecond, tok.Reason())
	require.False(t, p1.Observed())
}

func TestToken_LinkWithToken_selfCancelTearsDown(t *testing.T) {
	t.Parallel()

	p := dcancel.New()
	tok := dcancel.Of(p)
	require.True(t, p.Observed())

	tok.Cancel(errors.New("own reason"))
	require.False(t, p.Observed())
	require.False(t, tok.Observed())

	// The parent cancelling later has no effect.
	p.Cancel(errors.New("late"))
	require.EqualError(t, tok.Reason(), "own reason")
}

func TestToken_LinkWithToken_undo(t *testing.T) {
	t.Parallel()

	p := dcancel.New()
	tok := dcancel.New()

	undo := tok.LinkWithToken(p)
	require.True(t, p.Observed())

	undo()
	require.False(t, p.Observed())
	require.False(t, tok.Observed())

	p.Cancel(nil)
	require.False(t, tok.Cancelled())
}

func TestToken_LinkWithToken_alreadyCancelledSelf(t *testing.T) {
	t.Parallel()

	p := dcancel.New()
	tok := dcancel.New()
	tok.Cancel(errors.New("done"))

	_ = tok.LinkWithToken(p)
	require.False(t, p.Observed())
}

func TestToken_LinkWithToken_panicsOnSelf(t *testing.T) {
	t.Parallel()

	tok := dcancel.New()
	require.PanicsWithValue(t, dcancel.SelfLinkError{}, func() {
		tok.LinkWithToken(tok)
	})
}

func TestToken_LinkWithToken_chain(t *testing.T) {
	t.Parallel()

	root := dcancel.New()
	mid := dcancel.Of(root)
	leaf := dcancel.Of(mid)

	errRoot := errors.New("root")
	root.Cancel(errRoot)

	require.Same(t, errRoot, mid.Reason())
	require.Same(t, errRoot, leaf.Reason())
}

func TestToken_LinkWithToken_concurrentSources(t *testing.T) {
	t.Parallel()

	const n = 16
	parents := make([]*dcancel.Token, n)
	reasons := make([]error, n)
	for i := range parents {
		parents[i] = dcancel.New()
		reasons[i] = errors.New("parent")
	}

	tok := dcancel.Of(parents...)

	var notifications int
	var mu sync.Mutex
	tok.OnCancel(func(error) {
		mu.Lock()
		notifications++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := range parents {
		wg.Add(1)
		go func() {
			defer wg.Done()
			parents[i].Cancel(reasons[i])
		}()
	}
	wg.Wait()

	require.True(t, tok.Cancelled())
	require.Contains(t, reasons, tok.Reason())
	require.Equal(t, 1, notifications)

	for _, p := range parents {
		require.False(t, p.Observed())
	}
}
