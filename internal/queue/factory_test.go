package queue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chronoblock/tscore/internal/config"
	"github.com/chronoblock/tscore/internal/utils"
)

func TestNewQueue_MemoryQueue(t *testing.T) {
	q, err := NewQueue(config.QueueConfig{Type: "memory"})
	require.NoError(t, err)
	defer q.Close()
	require.NotNil(t, q)
}

func TestNewQueue_UnsupportedType(t *testing.T) {
	_, err := NewQueue(config.QueueConfig{Type: "unknown"})
	require.Error(t, err)
}

func TestNewPublisher_MemoryQueue(t *testing.T) {
	p, err := NewPublisher(config.QueueConfig{Type: "memory"})
	require.NoError(t, err)
	defer p.Close()
	require.NoError(t, p.Publish(context.Background(), "test", []byte("data")))
}

func TestNewSubscriber_MemoryQueue(t *testing.T) {
	s, err := NewSubscriber(config.QueueConfig{Type: "memory"})
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Subscribe("test", func(data []byte) error { return nil }))
}

func TestQueueTypes(t *testing.T) {
	tests := []struct {
		queueType utils.QueueType
		expected  string
	}{
		{utils.QueueTypeNATS, "nats"},
		{utils.QueueTypeRedis, "redis"},
		{utils.QueueTypeMemory, "memory"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, string(tt.queueType))
	}
}
