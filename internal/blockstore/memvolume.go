package blockstore

import "sync"

// MemVolume is an in-memory Volume, used by FileBlockStore tests and by
// callers that want a volatile block store backed by real rotation
// semantics without touching a filesystem.
type MemVolume struct {
	mu       sync.Mutex
	capacity uint32
	blocks   [][]byte
}

func NewMemVolume(capacity uint32) *MemVolume {
	return &MemVolume{capacity: capacity, blocks: make([][]byte, 0, capacity)}
}

func (v *MemVolume) AppendBlock(data []byte) (uint32, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if uint32(len(v.blocks)) >= v.capacity {
		return 0, &StoreError{Kind: Overflow, Message: "memvolume: volume is full"}
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	addr := uint32(len(v.blocks))
	v.blocks = append(v.blocks, cp)
	return addr, nil
}

func (v *MemVolume) ReadBlock(blockAddr uint32, out []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if blockAddr >= uint32(len(v.blocks)) {
		return outOfBounds("memvolume: block address past end of volume")
	}
	data := v.blocks[blockAddr]
	if len(out) < len(data) {
		return outOfBounds("memvolume: read buffer too small")
	}
	copy(out, data)
	return nil
}

func (v *MemVolume) Reset() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.blocks = v.blocks[:0]
	return nil
}

func (v *MemVolume) Flush() error { return nil }

// MemMetaVolume is an in-memory MetaVolume.
type MemMetaVolume struct {
	mu          sync.Mutex
	capacities  []uint32
	nblocks     []uint32
	generations []uint32
}

// NewMemMetaVolume seeds each volume's generation to its own index, the
// invariant FileBlockStore relies on to map a LogicAddr's generation back
// to a volume index via generation % len(volumes).
func NewMemMetaVolume(capacities []uint32) *MemMetaVolume {
	generations := make([]uint32, len(capacities))
	for i := range generations {
		generations[i] = uint32(i)
	}
	return &MemMetaVolume{
		capacities:  append([]uint32(nil), capacities...),
		nblocks:     make([]uint32, len(capacities)),
		generations: generations,
	}
}

func (m *MemMetaVolume) Capacity(i int) uint32   { return m.capacities[i] }
func (m *MemMetaVolume) NBlocks(i int) uint32    { m.mu.Lock(); defer m.mu.Unlock(); return m.nblocks[i] }
func (m *MemMetaVolume) Generation(i int) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generations[i]
}

func (m *MemMetaVolume) SetNBlocks(i int, n uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nblocks[i] = n
	return nil
}

func (m *MemMetaVolume) SetGeneration(i int, gen uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generations[i] = gen
	return nil
}

func (m *MemMetaVolume) Flush() error { return nil }
