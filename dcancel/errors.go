package dcancel

import "fmt"

// SelfLinkError is the panic value from [*Token.LinkWithToken]
// when a token is linked to itself.
type SelfLinkError struct{}

func (SelfLinkError) Error() string {
	return "cannot link a cancellation token to itself"
}

// UnownedSignalError is returned from [*Token.LinkContext]
// when the token is already cancelled but the context is not,
// and no cancel function was given to propagate the cancellation.
// A context the caller does not own cannot be cancelled from the token side.
type UnownedSignalError struct{}

func (UnownedSignalError) Error() string {
	return "cannot propagate cancellation to a context without its cancel function"
}

// UnknownChannelError is the panic value when an observer bound to
// a channel other than "cancel" attaches to a [Token].
type UnknownChannelError struct {
	Name string
}

func (e UnknownChannelError) Error() string {
	return fmt.Sprintf("cancellation token has no channel %q", e.Name)
}

// UnknownStrategyError is the panic value from [WrapChan] and [WrapFunc]
// when [WrapConfig.Strategy] is not a defined strategy.
type UnknownStrategyError struct {
	Strategy Strategy
}

func (e UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown cancellation strategy %d", uint8(e.Strategy))
}
