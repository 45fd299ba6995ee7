package concurrent

import (
	"context"
	"fmt"
)

// Outcome is the settled result of an asynchronous call.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Settle runs exec on its own go routine and delivers exactly one outcome.
// The channel is buffered, so the routine never blocks on a reader that went away.
// A panic inside exec is reported as an error outcome.
func Settle[T any](ctx context.Context, exec func(ctx context.Context) (T, error)) <-chan Outcome[T] {
	out := make(chan Outcome[T], 1)
	go func() {
		defer close(out)
		defer func() {
			if r := recover(); r != nil {
				var zero T
				out <- Outcome[T]{Value: zero, Err: fmt.Errorf("panic: %v", r)}
			}
		}()
		v, err := exec(ctx)
		out <- Outcome[T]{Value: v, Err: err}
	}()
	return out
}
