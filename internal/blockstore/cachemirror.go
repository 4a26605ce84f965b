package blockstore

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chronoblock/tscore/internal/logging"
)

// CacheMirror write-throughs blocks into a shared Redis instance so a
// second process (a replica, or the same node after a restart) can warm
// its local BlockCache from a recent writer's data instead of going back
// to volumes. Mirror writes and reads are best-effort: a miss or error
// here just means falling back to FileBlockStore, never a correctness
// problem.
type CacheMirror struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// NewCacheMirror wraps an existing Redis client. ttl is the expiry applied
// to every mirrored entry; zero means no expiry.
func NewCacheMirror(rdb *redis.Client, ttl time.Duration) *CacheMirror {
	return &CacheMirror{rdb: rdb, ttl: ttl, logger: logging.Global()}
}

func mirrorKey(addr LogicAddr) string {
	return "tscore:block:" + strconv.FormatUint(uint64(addr), 36)
}

// Put mirrors block's data under its address. Errors are logged, not
// returned — a failed mirror write must never fail the originating append.
func (m *CacheMirror) Put(ctx context.Context, block *Block) {
	if err := m.rdb.Set(ctx, mirrorKey(block.Addr()), block.Data(), m.ttl).Err(); err != nil {
		m.logger.Warn("cachemirror: set failed", "error", err)
	}
}

// Get returns the mirrored bytes for addr, if present.
func (m *CacheMirror) Get(ctx context.Context, addr LogicAddr) ([]byte, bool) {
	data, err := m.rdb.Get(ctx, mirrorKey(addr)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		m.logger.Warn("cachemirror: get failed", "error", err)
		return nil, false
	}
	return data, true
}
