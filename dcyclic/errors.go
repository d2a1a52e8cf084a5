package dcyclic

import "fmt"

// InsufficientError is returned from [*Index.Read] and [*Index.Write]
// when the requested span exceeds what the index can currently provide.
type InsufficientError struct {
	// Op is either "read" or "write".
	Op string

	Want, Have int
}

func (e *InsufficientError) Error() string {
	return fmt.Sprintf(
		"cannot %s %d slots: only %d available", e.Op, e.Want, e.Have,
	)
}
