// Package lock serializes read-modify-write sequences on one equipment id.
package lock

import (
	"context"
	"errors"
)

// ErrTimeout is returned when the lock could not be acquired within the
// configured wait.
var ErrTimeout = errors.New("lock: wait timeout")

// Locker grants exclusive access to a key. The returned unlock func is safe
// to call more than once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

func waitErr(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	return ctx.Err()
}
