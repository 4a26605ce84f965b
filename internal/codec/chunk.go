package codec

import "sort"

// UncompressedChunk is a column-oriented batch of points: parallel
// Timestamps, ParamIDs (series identifiers) and Values, sharing one index
// across all three slices. All three must have equal length.
type UncompressedChunk struct {
	Timestamps []int64
	ParamIDs   []uint64
	Values     []float64
}

// ChunkWriter is the narrow collaborator a chunk codec writes through: it
// reserves a buffer up front and reports back how much of it was actually
// used, mirroring how a block store hands out a fixed-capacity block.
type ChunkWriter interface {
	Allocate(n int) ([]byte, error)
	Commit(bytesWritten int) error
}

// chunkHeaderSize is the fixed-width prefix: point count (u32).
const chunkHeaderSize = 4

// EstimateChunkSize returns a conservative upper bound on the encoded size
// of a chunk with n points, used to size the ChunkWriter allocation.
func EstimateChunkSize(n int) int {
	// timestamps: up to 10 bytes/varint after delta+zigzag
	// paramids: RLE halves the pair count in the common case, but budget
	// worst case (no runs) at 2 varints/value
	// values: 1 control byte per pair of values + up to 8 payload bytes
	// per value
	return chunkHeaderSize + n*10 + n*20 + n*9
}

// EncodeChunk writes an UncompressedChunk through a Delta→ZigZag→StreamV1
// pipeline for timestamps, an RLE→StreamV1 pipeline for parameter IDs, and
// the nibble-length XOR predictor scheme for values. Chunk is expected to
// already be in the order the caller wants stored (see
// ConvertFromTimeOrder/ConvertFromChunkOrder).
func EncodeChunk(chunk UncompressedChunk, w ChunkWriter) error {
	n := len(chunk.Timestamps)
	if len(chunk.ParamIDs) != n || len(chunk.Values) != n {
		return badArg("encode_chunk: timestamps, paramids and values must have equal length")
	}

	buf, err := w.Allocate(EstimateChunkSize(n))
	if err != nil {
		return err
	}

	sw := NewStreamV1Writer(buf)
	if err := sw.PutRaw32(uint32(n)); err != nil {
		return err
	}

	zz := NewZigZagWriter(sw)
	delta := NewDeltaWriter(zz)
	for _, ts := range chunk.Timestamps {
		if err := delta.Put(ts); err != nil {
			return err
		}
	}

	rle := NewRLEWriter(sw)
	for _, id := range chunk.ParamIDs {
		if err := rle.Put(id); err != nil {
			return err
		}
	}
	if err := rle.Commit(); err != nil {
		return err
	}

	used, err := EncodeDoubles(chunk.Values, sw.Remaining())
	if err != nil {
		return err
	}
	if err := sw.Skip(used); err != nil {
		return err
	}

	return w.Commit(sw.Size())
}

// DecodeChunk reverses EncodeChunk, reading exactly the point count stored
// in the header.
func DecodeChunk(data []byte) (UncompressedChunk, error) {
	sr := NewStreamV1Reader(data)
	n32, err := sr.ReadRaw32()
	if err != nil {
		return UncompressedChunk{}, err
	}
	n := int(n32)

	zz := NewZigZagReader(sr)
	delta := NewDeltaReader(zz)
	timestamps := make([]int64, n)
	for i := 0; i < n; i++ {
		ts, err := delta.Next()
		if err != nil {
			return UncompressedChunk{}, err
		}
		timestamps[i] = ts
	}

	rle := NewRLEReader(sr)
	paramIDs := make([]uint64, n)
	for i := 0; i < n; i++ {
		id, err := rle.Next()
		if err != nil {
			return UncompressedChunk{}, err
		}
		paramIDs[i] = id
	}

	values := make([]float64, n)
	used, err := DecodeDoubles(sr.Remaining(), n, values)
	if err != nil {
		return UncompressedChunk{}, err
	}
	if err := sr.Skip(used); err != nil {
		return UncompressedChunk{}, err
	}

	return UncompressedChunk{Timestamps: timestamps, ParamIDs: paramIDs, Values: values}, nil
}

// ConvertFromTimeOrder stably reorders a time-ordered chunk (sorted by
// Timestamp) into chunk order (grouped by ParamID), which is what makes the
// RLE stage over ParamIDs effective on disk.
func ConvertFromTimeOrder(chunk UncompressedChunk) UncompressedChunk {
	return reorder(chunk, func(idx []int) {
		sort.SliceStable(idx, func(a, b int) bool {
			return chunk.ParamIDs[idx[a]] < chunk.ParamIDs[idx[b]]
		})
	})
}

// ConvertFromChunkOrder stably reorders a chunk-order chunk back into time
// order (sorted by Timestamp), which is the order query callers expect.
func ConvertFromChunkOrder(chunk UncompressedChunk) UncompressedChunk {
	return reorder(chunk, func(idx []int) {
		sort.SliceStable(idx, func(a, b int) bool {
			return chunk.Timestamps[idx[a]] < chunk.Timestamps[idx[b]]
		})
	})
}

func reorder(chunk UncompressedChunk, sortIdx func(idx []int)) UncompressedChunk {
	n := len(chunk.Timestamps)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sortIdx(idx)

	out := UncompressedChunk{
		Timestamps: make([]int64, n),
		ParamIDs:   make([]uint64, n),
		Values:     make([]float64, n),
	}
	for i, j := range idx {
		out.Timestamps[i] = chunk.Timestamps[j]
		out.ParamIDs[i] = chunk.ParamIDs[j]
		out.Values[i] = chunk.Values[j]
	}
	return out
}
