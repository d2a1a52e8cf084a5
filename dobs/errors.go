package dobs

// AlreadyObservingError is the panic value from [*Observer.Observe]
// when the observer already intends to observe one of the given observables.
type AlreadyObservingError struct{}

func (AlreadyObservingError) Error() string {
	return "observer is already observing the observable"
}

// NotObservingError is the panic value from [*Observer.Unobserve]
// when the observer was not observing one of the given observables.
type NotObservingError struct{}

func (NotObservingError) Error() string {
	return "observer is not observing the observable"
}

// NilObservableError is the panic value when a nil observable
// is passed where an observable is required.
type NilObservableError struct{}

func (NilObservableError) Error() string {
	return "argument is not an observable"
}
