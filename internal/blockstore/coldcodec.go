package blockstore

import (
	"encoding/binary"

	"github.com/golang/snappy"
)

// ColdCodec compresses whole blocks before they reach a volume flagged
// "cold" in configuration, transparent to AppendBlock/ReadBlock callers:
// the codec sits between FileBlockStore and the Volume it wraps. Every
// block still occupies exactly BlockSize bytes on the wrapped volume — a
// 4-byte length prefix followed by the snappy stream, zero-padded — so
// ColdCodec composes with any Volume implementation that assumes a fixed
// block size.
type ColdCodec struct {
	inner Volume
}

func NewColdCodec(inner Volume) *ColdCodec {
	return &ColdCodec{inner: inner}
}

func (c *ColdCodec) AppendBlock(data []byte) (uint32, error) {
	compressed := snappy.Encode(nil, data)
	if len(compressed)+4 > BlockSize {
		return 0, badData("coldcodec: compressed block does not fit in BlockSize")
	}
	buf := make([]byte, BlockSize)
	binary.LittleEndian.PutUint32(buf[:4], uint32(len(compressed)))
	copy(buf[4:], compressed)
	return c.inner.AppendBlock(buf)
}

func (c *ColdCodec) ReadBlock(blockAddr uint32, out []byte) error {
	raw := make([]byte, BlockSize)
	if err := c.inner.ReadBlock(blockAddr, raw); err != nil {
		return err
	}
	n := binary.LittleEndian.Uint32(raw[:4])
	if 4+n > uint32(len(raw)) {
		return badData("coldcodec: corrupt length prefix")
	}
	decoded, err := snappy.Decode(nil, raw[4:4+n])
	if err != nil {
		return badData("coldcodec: snappy decode failed")
	}
	if len(out) < len(decoded) {
		return outOfBounds("coldcodec: read buffer too small")
	}
	copy(out, decoded)
	return nil
}

func (c *ColdCodec) Reset() error { return c.inner.Reset() }
func (c *ColdCodec) Flush() error { return c.inner.Flush() }
