package blockstore

import "sync"

// MemStoreBase offsets every address by a non-zero constant so that a
// zero-valued LogicAddr (easy to produce by accident from an
// uninitialized variable) is never mistaken for a real block, matching the
// original engine's MEMSTORE_BASE sentinel.
const MemStoreBase = 619

// MemBlockStore is a single-generation, in-memory block store: a test
// double for code that appends and reads blocks but shouldn't pay for
// real file I/O. Addresses are assigned sequentially starting at
// MemStoreBase; Remove marks a logical low-water mark rather than freeing
// memory, mirroring the original's removed_pos_ field.
type MemBlockStore struct {
	mu             sync.Mutex
	blocks         [][]byte
	removedPos     uint32
	appendCallback func(addr LogicAddr, data []byte)
}

// MemBlockStoreOption configures optional collaborators.
type MemBlockStoreOption func(*MemBlockStore)

// WithAppendCallback registers a hook invoked synchronously after every
// successful AppendBlock, useful in tests that want to observe writes
// without wiring a full EventPublisher.
func WithAppendCallback(cb func(addr LogicAddr, data []byte)) MemBlockStoreOption {
	return func(s *MemBlockStore) { s.appendCallback = cb }
}

func NewMemBlockStore(opts ...MemBlockStoreOption) *MemBlockStore {
	s := &MemBlockStore{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AppendBlock copies data and assigns it the next sequential address.
func (s *MemBlockStore) AppendBlock(data []byte) (LogicAddr, error) {
	s.mu.Lock()
	cp := make([]byte, len(data))
	copy(cp, data)
	blockAddr := MemStoreBase + uint32(len(s.blocks))
	s.blocks = append(s.blocks, cp)
	s.mu.Unlock()

	addr := LogicAddr(blockAddr)
	if s.appendCallback != nil {
		s.appendCallback(addr, cp)
	}
	return addr, nil
}

// ReadBlock copies the block at addr into out. An address below the
// store's base is never valid and fails with OutOfBounds; an address that
// was valid but has since been removed by Remove fails with BadArg, since
// the caller handed back an address it once legitimately held.
func (s *MemBlockStore) ReadBlock(addr LogicAddr, out []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blockAddr := uint32(addr)
	if blockAddr < MemStoreBase {
		return outOfBounds("memstore: address below base")
	}
	if blockAddr < s.removedPos {
		return badArg("memstore: address has been removed")
	}
	idx := blockAddr - MemStoreBase
	if idx >= uint32(len(s.blocks)) {
		return outOfBounds("memstore: address past end of store")
	}
	data := s.blocks[idx]
	if len(out) < len(data) {
		return outOfBounds("memstore: read buffer too small")
	}
	copy(out, data)
	return nil
}

// Remove logically deletes every block up to and including addr; it does
// not reclaim memory, only moves the low-water mark that ReadBlock checks.
func (s *MemBlockStore) Remove(addr LogicAddr) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	blockAddr := uint32(addr)
	if blockAddr+1 > s.removedPos {
		s.removedPos = blockAddr + 1
	}
	return nil
}

// Exists reports whether addr is within range and not removed.
func (s *MemBlockStore) Exists(addr LogicAddr) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	blockAddr := uint32(addr)
	if blockAddr < MemStoreBase || blockAddr < s.removedPos {
		return false
	}
	return blockAddr-MemStoreBase < uint32(len(s.blocks))
}

// Flush is a no-op; MemBlockStore has nothing to persist.
func (s *MemBlockStore) Flush() error { return nil }

// Stats reports the number of blocks appended so far; blocks hidden by
// Remove are still counted.
func (s *MemBlockStore) Stats() BlockStoreStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BlockStoreStats{
		NBlocks:   uint32(len(s.blocks)),
		Capacity:  uint32(len(s.blocks)),
		BlockSize: BlockSize,
	}
}
