package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitPerDomain(t *testing.T) {
	l := NewLimiter(1000, 2)
	ctx := context.Background()

	require.NoError(t, l.Wait(ctx, "https://a.example/x"))
	require.NoError(t, l.Wait(ctx, "https://b.example/y"))
}

func TestWaitInvalidURL(t *testing.T) {
	l := NewLimiter(1, 1)
	err := l.Wait(context.Background(), "://bad")
	require.Error(t, err)
}

func TestWaitWithDelayHonorsCancel(t *testing.T) {
	l := NewLimiter(1000, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.WaitWithDelay(ctx, "https://a.example/x", time.Second)
	require.Error(t, err)
}

func TestSetDomainRate(t *testing.T) {
	l := NewLimiter(1000, 5)
	l.SetDomainRate("slow.example", 0.001, 1)

	// First request uses the burst token, the second would block.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.NoError(t, l.Wait(ctx, "https://slow.example/1"))
	assert.Error(t, l.Wait(ctx, "https://slow.example/2"))
}
