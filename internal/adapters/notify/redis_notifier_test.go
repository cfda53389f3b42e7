package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotifier(t *testing.T) *RedisNotifier {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return NewRedisNotifier(client, "")
}

func TestRedisNotifierDeliversReloads(t *testing.T) {
	n := newTestNotifier(t)
	assert.Equal(t, DefaultChannel, n.channel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu      sync.Mutex
		reasons []string
	)
	done := make(chan error, 1)
	go func() {
		done <- n.Listen(ctx, func(_ context.Context, reason string) {
			mu.Lock()
			defer mu.Unlock()
			reasons = append(reasons, reason)
		})
	}()

	// Publish until the subscriber is in place and has received a message.
	require.Eventually(t, func() bool {
		if _, err := n.Publish(ctx, "seeded"); err != nil {
			return false
		}
		mu.Lock()
		defer mu.Unlock()
		return len(reasons) > 0
	}, 2*time.Second, 20*time.Millisecond)

	mu.Lock()
	assert.Equal(t, "seeded", reasons[0])
	mu.Unlock()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop after cancel")
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	n := newTestNotifier(t)

	receivers, err := n.Publish(context.Background(), "nobody listens")
	require.NoError(t, err)
	assert.Zero(t, receivers)
}

func TestNewRedisClientErrors(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not-a-url")
	assert.Error(t, err)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err = NewRedisClient(ctx, "redis://"+addr)
	assert.Error(t, err)
}
