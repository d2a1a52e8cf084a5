// Package dcancel contains the cooperative cancellation [Token].
//
// A Token is a [dobs.Notifying] with exactly one channel, "cancel".
// Cancelling a token never interrupts work by force;
// it records the reason, dispatches one notification,
// and closes the [*Token.Done] channel.
// Code holding a token checks or listens at its own safe points.
//
// Tokens compose: [*Token.LinkWithToken] and [Of] derive a token
// that is cancelled when any source token is cancelled,
// and [*Token.LinkContext] bridges a token with a [context.Context].
//
// [WrapChan] and [WrapFunc] race an asynchronous operation
// against a token's cancellation.
package dcancel
