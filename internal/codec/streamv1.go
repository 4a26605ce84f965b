package codec

import "encoding/binary"

// StreamV1Writer is a bounded LEB128 writer over a fixed byte slice. It
// mirrors the original format's plain base-128 stream: every Put call
// appends a variable number of continuation bytes, with no block framing.
type StreamV1Writer struct {
	buf []byte
	pos int
}

// NewStreamV1Writer wraps buf for writing; buf's length is the hard capacity.
func NewStreamV1Writer(buf []byte) *StreamV1Writer {
	return &StreamV1Writer{buf: buf}
}

// Put appends the varint encoding of v. Returns OutOfBounds if buf has no
// room for the full encoding; no partial bytes are written on failure.
func (w *StreamV1Writer) Put(v uint64) error {
	need := UvarintSize(v)
	if w.pos+need > len(w.buf) {
		return outOfBounds("streamv1: put would overflow buffer")
	}
	out := PutUvarint(w.buf[w.pos:w.pos], v)
	copy(w.buf[w.pos:w.pos+len(out)], out)
	w.pos += len(out)
	return nil
}

// PutRaw8/PutRaw32/PutRaw64 write fixed-width little-endian values without
// varint framing, used for chunk headers and lengths.
func (w *StreamV1Writer) PutRaw8(v uint8) error {
	if w.pos+1 > len(w.buf) {
		return outOfBounds("streamv1: put_raw8 would overflow buffer")
	}
	w.buf[w.pos] = v
	w.pos++
	return nil
}

func (w *StreamV1Writer) PutRaw32(v uint32) error {
	if w.pos+4 > len(w.buf) {
		return outOfBounds("streamv1: put_raw32 would overflow buffer")
	}
	binary.LittleEndian.PutUint32(w.buf[w.pos:], v)
	w.pos += 4
	return nil
}

func (w *StreamV1Writer) PutRaw64(v uint64) error {
	if w.pos+8 > len(w.buf) {
		return outOfBounds("streamv1: put_raw64 would overflow buffer")
	}
	binary.LittleEndian.PutUint64(w.buf[w.pos:], v)
	w.pos += 8
	return nil
}

// Allocate reserves n raw bytes and returns a slice into the backing buffer
// for the caller to fill in place (used for length-prefixed sub-blocks).
func (w *StreamV1Writer) Allocate(n int) ([]byte, error) {
	if w.pos+n > len(w.buf) {
		return nil, outOfBounds("streamv1: allocate would overflow buffer")
	}
	s := w.buf[w.pos : w.pos+n]
	w.pos += n
	return s, nil
}

// Commit is a no-op for StreamV1; every Put already wrote its final bytes.
func (w *StreamV1Writer) Commit() error { return nil }

// Size returns the number of bytes written so far.
func (w *StreamV1Writer) Size() int { return w.pos }

// SpaceLeft returns the number of unused bytes in the backing buffer.
func (w *StreamV1Writer) SpaceLeft() int { return len(w.buf) - w.pos }

// Pos returns the current write offset.
func (w *StreamV1Writer) Pos() int { return w.pos }

// Bytes returns the written prefix of the backing buffer.
func (w *StreamV1Writer) Bytes() []byte { return w.buf[:w.pos] }

// StreamV1Reader is the symmetric reader for StreamV1Writer's output.
type StreamV1Reader struct {
	buf []byte
	pos int
}

func NewStreamV1Reader(buf []byte) *StreamV1Reader {
	return &StreamV1Reader{buf: buf}
}

// Next decodes the next varint. Returns OutOfBounds if the stream is
// exhausted before a terminator byte, Overflow if the encoding is malformed.
func (r *StreamV1Reader) Next() (uint64, error) {
	v, n, err := Uvarint(r.buf[r.pos:])
	if err != nil {
		return 0, err
	}
	r.pos += n
	return v, nil
}

func (r *StreamV1Reader) ReadRaw8() (uint8, error) {
	if r.pos+1 > len(r.buf) {
		return 0, outOfBounds("streamv1: read_raw8 past end of buffer")
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *StreamV1Reader) ReadRaw32() (uint32, error) {
	if r.pos+4 > len(r.buf) {
		return 0, outOfBounds("streamv1: read_raw32 past end of buffer")
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *StreamV1Reader) ReadRaw64() (uint64, error) {
	if r.pos+8 > len(r.buf) {
		return 0, outOfBounds("streamv1: read_raw64 past end of buffer")
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}

// ReadRaw returns the next n raw bytes without interpretation.
func (r *StreamV1Reader) ReadRaw(n int) ([]byte, error) {
	if r.pos+n > len(r.buf) {
		return nil, outOfBounds("streamv1: read_raw past end of buffer")
	}
	s := r.buf[r.pos : r.pos+n]
	r.pos += n
	return s, nil
}

func (r *StreamV1Reader) SpaceLeft() int { return len(r.buf) - r.pos }
func (r *StreamV1Reader) Pos() int       { return r.pos }

// Remaining returns the unread tail of the backing buffer, letting a
// collaborator that writes raw bytes directly (e.g. the double codec) share
// the same cursor as the varint stages.
func (r *StreamV1Reader) Remaining() []byte { return r.buf[r.pos:] }

// Skip advances the read position by n raw bytes, for use after a
// collaborator has consumed bytes from Remaining() directly.
func (r *StreamV1Reader) Skip(n int) error {
	if r.pos+n > len(r.buf) {
		return outOfBounds("streamv1: skip past end of buffer")
	}
	r.pos += n
	return nil
}

// Remaining returns the unwritten tail of the backing buffer.
func (w *StreamV1Writer) Remaining() []byte { return w.buf[w.pos:] }

// Skip advances the write position by n raw bytes, for use after a
// collaborator has written bytes into Remaining() directly.
func (w *StreamV1Writer) Skip(n int) error {
	if w.pos+n > len(w.buf) {
		return outOfBounds("streamv1: skip past end of buffer")
	}
	w.pos += n
	return nil
}
