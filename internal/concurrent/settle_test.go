package concurrent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSettle(t *testing.T) {

	type test struct {
		exec  func(ctx context.Context) (int, error)
		value int
		err   bool
	}

	tests := map[string]test{
		"value": {
			exec: func(ctx context.Context) (int, error) {
				return 42, nil
			},
			value: 42,
		},
		"error": {
			exec: func(ctx context.Context) (int, error) {
				return 0, errors.New("failed")
			},
			err: true,
		},
		"panic": {
			exec: func(ctx context.Context) (int, error) {
				panic("boom")
			},
			err: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			outcome := <-Settle(context.Background(), tt.exec)
			assert.Equal(t, tt.value, outcome.Value)
			assert.Equal(t, tt.err, outcome.Err != nil)
		})
	}
}

// Each outcome is delivered as soon as it settles, regardless of the other.
func TestSettle_Independent(t *testing.T) {
	release := make(chan struct{})
	slow := Settle(context.Background(), func(ctx context.Context) (string, error) {
		<-release
		return "slow", nil
	})
	fast := Settle(context.Background(), func(ctx context.Context) (string, error) {
		return "", errors.New("fast failure")
	})

	select {
	case outcome := <-fast:
		assert.Error(t, outcome.Err)
	case <-time.After(time.Second):
		t.Fatal("fast outcome blocked by the slow one")
	}

	close(release)
	outcome := <-slow
	assert.NoError(t, outcome.Err)
	assert.Equal(t, "slow", outcome.Value)
}

// Nobody reads the outcome, the routine must still finish.
func TestSettle_NoReader(t *testing.T) {
	done := make(chan struct{})
	_ = Settle(context.Background(), func(ctx context.Context) (bool, error) {
		defer close(done)
		return true, nil
	})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("routine did not finish")
	}
}
