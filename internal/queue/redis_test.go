package queue

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// isRedisAvailable checks for a local Redis instance; tests that need one
// are skipped otherwise rather than failing a build with no broker handy.
func isRedisAvailable() bool {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}

func getRedisURL() string {
	if url := os.Getenv("REDIS_URL"); url != "" {
		return url
	}
	return "redis://localhost:6379"
}

func cleanupRedisStream(t *testing.T, client *redis.Client, stream string) {
	t.Helper()
	client.Del(context.Background(), stream)
}

func TestNewRedisQueue_InvalidURL(t *testing.T) {
	_, err := NewRedisQueue(RedisConfig{URL: "invalid-redis-url:9999"})
	require.Error(t, err)
}

func TestNewRedisQueue_Defaults(t *testing.T) {
	if !isRedisAvailable() {
		t.Skip("Redis not available, skipping test")
	}

	q, err := NewRedisQueue(RedisConfig{URL: getRedisURL()})
	require.NoError(t, err)
	defer q.Close()

	require.Equal(t, "tscore", q.config.Stream)
	require.Equal(t, "tscore-group", q.config.Group)
	require.NotEmpty(t, q.config.Consumer)
}

func TestRedisQueue_Publish(t *testing.T) {
	if !isRedisAvailable() {
		t.Skip("Redis not available, skipping test")
	}

	q, err := NewRedisQueue(RedisConfig{URL: getRedisURL(), Stream: "test-publish"})
	require.NoError(t, err)
	defer q.Close()
	defer cleanupRedisStream(t, q.client, q.streamName("test.subject"))

	ctx := context.Background()
	require.NoError(t, q.Publish(ctx, "test.subject", []byte("test message")))

	msgs, err := q.client.XRange(ctx, q.streamName("test.subject"), "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
}

func TestRedisQueue_Subscribe(t *testing.T) {
	if !isRedisAvailable() {
		t.Skip("Redis not available, skipping test")
	}

	q, err := NewRedisQueue(RedisConfig{
		URL:      getRedisURL(),
		Stream:   "test-subscribe",
		Group:    fmt.Sprintf("test-group-%d", time.Now().UnixNano()),
		Consumer: "test-consumer",
	})
	require.NoError(t, err)
	defer q.Close()

	subject := "sub.test"
	defer cleanupRedisStream(t, q.client, q.streamName(subject))

	var received []byte
	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, q.Subscribe(subject, func(data []byte) error {
		received = data
		wg.Done()
		return nil
	}))
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, q.Publish(context.Background(), subject, []byte("hello redis")))

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("timeout waiting for message")
	}
	require.Equal(t, "hello redis", string(received))
}

func TestRedisQueue_Subscribe_DoubleSubscribe(t *testing.T) {
	if !isRedisAvailable() {
		t.Skip("Redis not available, skipping test")
	}

	q, err := NewRedisQueue(RedisConfig{
		URL:    getRedisURL(),
		Stream: "test-double-sub",
		Group:  fmt.Sprintf("test-group-%d", time.Now().UnixNano()),
	})
	require.NoError(t, err)
	defer q.Close()

	handler := func(data []byte) error { return nil }
	require.NoError(t, q.Subscribe("double.sub", handler))
	require.Error(t, q.Subscribe("double.sub", handler))
}

func TestRedisQueue_Unsubscribe(t *testing.T) {
	if !isRedisAvailable() {
		t.Skip("Redis not available, skipping test")
	}

	q, err := NewRedisQueue(RedisConfig{
		URL:    getRedisURL(),
		Stream: "test-unsub",
		Group:  fmt.Sprintf("test-group-%d", time.Now().UnixNano()),
	})
	require.NoError(t, err)
	defer q.Close()

	require.NoError(t, q.Subscribe("unsub.test", func(data []byte) error { return nil }))
	require.NoError(t, q.Unsubscribe("unsub.test"))
	require.Error(t, q.Unsubscribe("unsub.test"), "double unsubscribe must error")
}

func TestRedisQueue_Close(t *testing.T) {
	if !isRedisAvailable() {
		t.Skip("Redis not available, skipping test")
	}

	q, err := NewRedisQueue(RedisConfig{
		URL:    getRedisURL(),
		Stream: "test-close",
		Group:  fmt.Sprintf("test-group-%d", time.Now().UnixNano()),
	})
	require.NoError(t, err)
	require.NoError(t, q.Subscribe("close.test", func(data []byte) error { return nil }))

	require.NoError(t, q.Close())
	require.Empty(t, q.subscriptions)
}

func TestRedisQueue_StreamName(t *testing.T) {
	q := &RedisQueue{config: RedisConfig{Stream: "myprefix"}}

	tests := []struct{ subject, expected string }{
		{"test", "myprefix:test"},
		{"metrics.cpu", "myprefix:metrics.cpu"},
		{"a.b.c", "myprefix:a.b.c"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, q.streamName(tt.subject))
	}
}
