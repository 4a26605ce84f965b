package codec

import (
	"reflect"
	"testing"
)

// memChunkWriter is a minimal ChunkWriter test double: one fixed buffer,
// Commit just remembers how much of it was used.
type memChunkWriter struct {
	buf  []byte
	used int
}

func (w *memChunkWriter) Allocate(n int) ([]byte, error) {
	w.buf = make([]byte, n)
	return w.buf, nil
}

func (w *memChunkWriter) Commit(bytesWritten int) error {
	w.used = bytesWritten
	return nil
}

func TestEncodeDecodeChunkRoundtrip(t *testing.T) {
	chunk := UncompressedChunk{
		Timestamps: []int64{100, 105, 110, 300, 305},
		ParamIDs:   []uint64{1, 1, 1, 2, 2},
		Values:     []float64{1.1, 1.2, 1.1, 9.9, 9.8},
	}

	w := &memChunkWriter{}
	if err := EncodeChunk(chunk, w); err != nil {
		t.Fatalf("EncodeChunk: %v", err)
	}

	decoded, err := DecodeChunk(w.buf[:w.used])
	if err != nil {
		t.Fatalf("DecodeChunk: %v", err)
	}
	if !reflect.DeepEqual(decoded, chunk) {
		t.Errorf("roundtrip mismatch:\nwant %+v\ngot  %+v", chunk, decoded)
	}
}

func TestEncodeChunk_MismatchedLengths(t *testing.T) {
	chunk := UncompressedChunk{
		Timestamps: []int64{1, 2},
		ParamIDs:   []uint64{1},
		Values:     []float64{1.0, 2.0},
	}
	w := &memChunkWriter{}
	err := EncodeChunk(chunk, w)
	if !isKind(err, BadArg) {
		t.Fatalf("expected BadArg, got %v", err)
	}
}

func TestConvertChunkOrderRoundtrip(t *testing.T) {
	timeOrdered := UncompressedChunk{
		Timestamps: []int64{1, 2, 3, 4, 5, 6},
		ParamIDs:   []uint64{3, 1, 3, 2, 1, 3},
		Values:     []float64{10, 20, 30, 40, 50, 60},
	}

	chunkOrdered := ConvertFromTimeOrder(timeOrdered)
	for i := 1; i < len(chunkOrdered.ParamIDs); i++ {
		if chunkOrdered.ParamIDs[i] < chunkOrdered.ParamIDs[i-1] {
			t.Fatalf("chunk order not grouped by ParamID: %v", chunkOrdered.ParamIDs)
		}
	}

	backToTimeOrder := ConvertFromChunkOrder(chunkOrdered)
	if !reflect.DeepEqual(backToTimeOrder, timeOrdered) {
		t.Errorf("round trip through chunk order changed data:\nwant %+v\ngot  %+v", timeOrdered, backToTimeOrder)
	}
}
