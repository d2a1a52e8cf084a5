package dcancel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gordian-engine/notify/dcancel"
	"github.com/gordian-engine/notify/internal/dtest"
	"github.com/stretchr/testify/require"
)

func TestToken_LinkContext_ownedContextCancelsToken(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	tok := dcancel.New()
	_, err := tok.LinkContext(ctx, cancel)
	require.NoError(t, err)

	errStop := errors.New("stop")
	cancel(errStop)

	_ = dtest.ReceiveSoon(t, tok.Done())
	require.Same(t, errStop, tok.Reason())
}

func TestToken_LinkContext_tokenCancelsOwnedContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	tok := dcancel.New()
	_, err := tok.LinkContext(ctx, cancel)
	require.NoError(t, err)

	errStop := errors.New("stop")
	tok.Cancel(errStop)

	// Synchronous: the cancel function ran during Cancel.
	dtest.IsSending(t, ctx.Done())
	require.Same(t, errStop, context.Cause(ctx))
	require.False(t, tok.Observed())
}

func TestToken_LinkContext_unownedIsOneDirectional(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tok := dcancel.New()
	_, err := tok.LinkContext(ctx, nil)
	require.NoError(t, err)

	tok.Cancel(nil)
	dtest.NotSending(t, ctx.Done())
	require.False(t, tok.Observed())
}

func TestToken_LinkContext_unownedReverseEdgeErrors(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tok := dcancel.New()
	tok.Cancel(nil)

	_, err := tok.LinkContext(ctx, nil)
	require.ErrorIs(t, err, dcancel.UnownedSignalError{})
}

func TestToken_LinkContext_alreadyDoneContext(t *testing.T) {
	t.Parallel()

	errGone := errors.New("gone")
	ctx, cancel := context.WithCancelCause(context.Background())
	cancel(errGone)

	tok := dcancel.New()
	_, err := tok.LinkContext(ctx, nil)
	require.NoError(t, err)

	// No round trip through another goroutine.
	require.True(t, tok.Cancelled())
	require.Same(t, errGone, tok.Reason())
}

func TestToken_LinkContext_undo(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	tok := dcancel.New()
	undo, err := tok.LinkContext(ctx, cancel)
	require.NoError(t, err)

	undo()
	require.False(t, tok.Observed())

	cancel(nil)
	dtest.NotSendingSoon(t, tok.Done())

	tok.Cancel(nil)
	require.ErrorIs(t, context.Cause(ctx), context.Canceled)
}

func TestToken_Context(t *testing.T) {
	t.Parallel()

	tok := dcancel.New()
	ctx, release := tok.Context(context.Background())
	defer release()

	errStop := errors.New("stop")
	tok.Cancel(errStop)

	dtest.IsSending(t, ctx.Done())
	require.Same(t, errStop, context.Cause(ctx))
}

func TestToken_Context_releaseLeavesTokenAlone(t *testing.T) {
	t.Parallel()

	tok := dcancel.New()
	ctx, release := tok.Context(context.Background())

	release()
	dtest.IsSending(t, ctx.Done())
	dtest.NotSendingSoon(t, tok.Done())
	require.False(t, tok.Observed())
}

func TestToken_Context_parentCancelsToken(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithCancel(context.Background())

	tok := dcancel.New()
	_, release := tok.Context(parent)
	defer release()

	cancel()
	_ = dtest.ReceiveSoon(t, tok.Done())
	require.ErrorIs(t, tok.Reason(), context.Canceled)
}
