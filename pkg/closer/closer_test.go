package closer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClose_LIFOOrder(t *testing.T) {
	c := NewCloser(time.Second)

	var order []int
	for i := 1; i <= 3; i++ {
		c.Add(func(ctx context.Context) error {
			order = append(order, i)
			return nil
		})
	}

	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, []int{3, 2, 1}, order)
}

func TestClose_CollectsErrors(t *testing.T) {
	c := NewCloser(time.Second)

	c.Add(func(ctx context.Context) error { return nil })
	c.Add(func(ctx context.Context) error { return errors.New("redis close failed") })

	err := c.Close(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis close failed")
}

func TestClose_Idempotent(t *testing.T) {
	c := NewCloser(time.Second)

	calls := 0
	c.Add(func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, c.Close(context.Background()))
	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestClose_ForcesRemainingOnContextCancel(t *testing.T) {
	c := NewCloser(time.Second)

	forced := make(chan struct{}, 1)
	c.Add(func(ctx context.Context) error {
		forced <- struct{}{}
		return nil
	})
	c.Add(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)
	require.Error(t, err)

	select {
	case <-forced:
	case <-time.After(3 * time.Second):
		t.Fatal("remaining closer was not invoked after context cancellation")
	}
}
