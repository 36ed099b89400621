package store

import (
	"errors"
	"fmt"
)

// ErrCapacityExhausted is returned by List.Add when no id could be assigned.
// The returned error also matches ErrIDSpaceExhausted.
var ErrCapacityExhausted = errors.New("too many items already, cannot add another one")

type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("item not found: %s", e.ID)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}
