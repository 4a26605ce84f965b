package blockstore

// Volume is one fixed-capacity append-only segment of a FileBlockStore. An
// implementation is free to be a real file, an mmap'd region, or (for
// tests) an in-memory slice; FileBlockStore only ever calls these four
// methods and never reaches into volume internals.
type Volume interface {
	// AppendBlock writes data (which must be BlockSize bytes) and returns
	// its offset within the volume. Returns an Overflow StoreError once the
	// volume has no room left, signalling the caller to rotate.
	AppendBlock(data []byte) (blockAddr uint32, err error)
	// ReadBlock reads the block at blockAddr into out (which must be
	// BlockSize bytes).
	ReadBlock(blockAddr uint32, out []byte) error
	// Reset discards the volume's contents, making it ready to be reused
	// as the new current volume after rotation.
	Reset() error
	// Flush persists any buffered writes.
	Flush() error
}

// MetaVolume tracks, for every volume index, the triple (capacity,
// nblocks, generation) that lets FileBlockStore validate addresses and
// decide when to rotate, without needing to touch volume data itself.
type MetaVolume interface {
	Capacity(volIndex int) uint32
	NBlocks(volIndex int) uint32
	Generation(volIndex int) uint32
	SetNBlocks(volIndex int, n uint32) error
	SetGeneration(volIndex int, gen uint32) error
	Flush() error
}
