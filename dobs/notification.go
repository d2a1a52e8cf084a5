package dobs

// Notification is an immutable (name, value) pair
// delivered through a [Notifying] observable.
//
// Value is untyped because one Notifying carries
// several channels whose payloads differ.
type Notification struct {
	Name  string
	Value any
}

// NewChannelObserver returns an inactive observer bound to the channel name.
// When linked to a [Notifying], it only receives notifications with that name.
//
// Linked to a plain [Observable] of Notification, the binding has no effect.
func NewChannelObserver(
	name string,
	fn func(n Notification, src *Observable[Notification]),
) *Observer[Notification] {
	o := NewObserver(fn)
	o.channel = name
	o.bound = true
	return o
}

// Accepts reports whether o's channel binding lets it receive n.
// Name-agnostic observers accept every notification.
func Accepts(o *Observer[Notification], n Notification) bool {
	return !o.bound || o.channel == n.Name
}
