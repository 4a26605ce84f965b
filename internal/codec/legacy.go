package codec

// LegacyDeltaRLEWriter reproduces the obsolete Delta→ZigZag→RLE→StreamV1
// pipeline carried in the original compression header as DeltaRLEWriter,
// marked there as "obsolete, remove". It is kept here only so that data
// written by that pipeline can still be read back; EncodeChunk never
// produces it and DecodeChunk never reads it. It is used by constructing
// LegacyDeltaRLEWriter/LegacyDeltaRLEReader directly.
type LegacyDeltaRLEWriter struct {
	rle   *RLEWriter
	zz    *ZigZagWriter
	delta *DeltaWriter
}

func NewLegacyDeltaRLEWriter(base Uint64Putter) *LegacyDeltaRLEWriter {
	rle := NewRLEWriter(base)
	zz := NewZigZagWriter(rle)
	delta := NewDeltaWriter(zz)
	return &LegacyDeltaRLEWriter{rle: rle, zz: zz, delta: delta}
}

func (w *LegacyDeltaRLEWriter) Put(v int64) error {
	return w.delta.Put(v)
}

// Commit flushes the RLE stage's final run.
func (w *LegacyDeltaRLEWriter) Commit() error {
	return w.rle.Commit()
}

// LegacyDeltaRLEReader is the symmetric reader.
type LegacyDeltaRLEReader struct {
	delta *DeltaReader
}

func NewLegacyDeltaRLEReader(base Uint64Getter) *LegacyDeltaRLEReader {
	rle := NewRLEReader(base)
	zz := NewZigZagReader(rle)
	delta := NewDeltaReader(zz)
	return &LegacyDeltaRLEReader{delta: delta}
}

func (r *LegacyDeltaRLEReader) Next() (int64, error) {
	return r.delta.Next()
}

// ChunkCodecOptions names non-default chunk codec settings. EncodeChunk and
// DecodeChunk take no options and do not consult it; they always use the
// canonical pipelines.
type ChunkCodecOptions struct {
	// Legacy names the obsolete Delta→ZigZag→RLE→StreamV1 timestamp
	// pipeline as opposed to the canonical Delta→ZigZag→StreamV1 one.
	// Setting it does not change EncodeChunk or DecodeChunk; nothing in
	// this package reads it.
	Legacy bool
}
