package blockstore

import (
	"context"

	clientv3 "go.etcd.io/etcd/client/v3"
	"go.etcd.io/etcd/client/v3/concurrency"

	"github.com/chronoblock/tscore/internal/logging"
)

// RotationFence is a distributed mutex so two storage-node replicas
// sharing a meta-volume path don't race advance_volume against each other.
// FileBlockStore itself only serializes concurrent callers within one
// process; RotationFence is the cross-process equivalent, built the same
// way the original topology used etcd for coordination metadata.
type RotationFence struct {
	client  *clientv3.Client
	session *concurrency.Session
	key     string
	logger  *logging.Logger
}

// NewRotationFence opens an etcd session and prepares a mutex at key
// (typically derived from the meta volume's path, so independent block
// stores don't contend on each other's fences).
func NewRotationFence(client *clientv3.Client, key string) (*RotationFence, error) {
	session, err := concurrency.NewSession(client)
	if err != nil {
		return nil, ioFailure("distlock: failed to open etcd session", err)
	}
	return &RotationFence{client: client, session: session, key: key, logger: logging.Global()}, nil
}

// WithRotation runs fn while holding the distributed lock, releasing it
// afterward regardless of fn's outcome.
func (f *RotationFence) WithRotation(ctx context.Context, fn func() error) error {
	mu := concurrency.NewMutex(f.session, f.key)
	if err := mu.Lock(ctx); err != nil {
		return ioFailure("distlock: failed to acquire rotation fence", err)
	}
	defer func() {
		if err := mu.Unlock(context.Background()); err != nil {
			f.logger.Warn("distlock: failed to release rotation fence", "error", err)
		}
	}()
	return fn()
}

// Close releases the underlying etcd session.
func (f *RotationFence) Close() error {
	return f.session.Close()
}
