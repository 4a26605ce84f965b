package blockstore

import (
	"encoding/binary"
	"fmt"
	"os"
)

// FileVolume is a Volume backed by a single fixed-capacity file, blocks
// written at fixed BlockSize offsets via WriteAt/ReadAt, matching the
// original engine's column-file convention of writing fixed-size records
// at computed offsets rather than appending framed entries.
type FileVolume struct {
	file     *os.File
	capacity uint32 // blocks
	nblocks  uint32
}

// OpenFileVolume opens (creating if necessary) the file at path as a
// volume able to hold capacity blocks.
func OpenFileVolume(path string, capacity uint32, nblocks uint32) (*FileVolume, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open volume %s: %w", path, err)
	}
	return &FileVolume{file: f, capacity: capacity, nblocks: nblocks}, nil
}

func (v *FileVolume) AppendBlock(data []byte) (uint32, error) {
	if len(data) != BlockSize {
		return 0, badArg(fmt.Sprintf("block data must be %d bytes, got %d", BlockSize, len(data)))
	}
	if v.nblocks >= v.capacity {
		return 0, overflow("volume is at capacity")
	}
	blockAddr := v.nblocks
	if _, err := v.file.WriteAt(data, int64(blockAddr)*BlockSize); err != nil {
		return 0, ioFailure(fmt.Sprintf("write block %d", blockAddr), err)
	}
	v.nblocks++
	return blockAddr, nil
}

func (v *FileVolume) ReadBlock(blockAddr uint32, out []byte) error {
	if blockAddr >= v.nblocks {
		return outOfBounds(fmt.Sprintf("block %d out of range (nblocks=%d)", blockAddr, v.nblocks))
	}
	if len(out) != BlockSize {
		return badArg(fmt.Sprintf("read buffer must be %d bytes, got %d", BlockSize, len(out)))
	}
	if _, err := v.file.ReadAt(out, int64(blockAddr)*BlockSize); err != nil {
		return ioFailure(fmt.Sprintf("read block %d", blockAddr), err)
	}
	return nil
}

// Reset truncates the volume back to zero blocks, for reuse after rotation.
func (v *FileVolume) Reset() error {
	v.nblocks = 0
	if err := v.file.Truncate(0); err != nil {
		return ioFailure("truncate volume", err)
	}
	return nil
}

func (v *FileVolume) Flush() error {
	if err := v.file.Sync(); err != nil {
		return ioFailure("sync volume", err)
	}
	return nil
}

func (v *FileVolume) Close() error { return v.file.Close() }

// fileMetaRecordSize is the on-disk size of one volume's (capacity,
// nblocks, generation) triple: three little-endian uint32s.
const fileMetaRecordSize = 12

// FileMetaVolume persists the (capacity, nblocks, generation) triple for
// every volume in one small fixed-record file, written with WriteAt at
// computed offsets exactly like the original engine's footer/index
// records rather than through a generic key-value store.
type FileMetaVolume struct {
	file *os.File
	n    int
}

// OpenFileMetaVolume opens (creating and zero-filling if necessary) a meta
// file sized for n volumes. Freshly created records start with
// generation == their own volume index, which is the invariant
// FileBlockStore.advanceVolumeLocked relies on to keep
// `generation % len(volumes) == volume index` true after every rotation.
func OpenFileMetaVolume(path string, n int, capacities []uint32) (*FileMetaVolume, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open meta volume %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	mv := &FileMetaVolume{file: f, n: n}
	if info.Size() == 0 {
		for i := 0; i < n; i++ {
			if err := mv.writeRecord(i, capacities[i], 0, uint32(i)); err != nil {
				_ = f.Close()
				return nil, err
			}
		}
		if err := mv.Flush(); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return mv, nil
}

func (mv *FileMetaVolume) readRecord(volIndex int) (capacity, nblocks, generation uint32) {
	var buf [fileMetaRecordSize]byte
	if _, err := mv.file.ReadAt(buf[:], int64(volIndex)*fileMetaRecordSize); err != nil {
		return 0, 0, 0
	}
	return binary.LittleEndian.Uint32(buf[0:4]), binary.LittleEndian.Uint32(buf[4:8]), binary.LittleEndian.Uint32(buf[8:12])
}

func (mv *FileMetaVolume) writeRecord(volIndex int, capacity, nblocks, generation uint32) error {
	var buf [fileMetaRecordSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], capacity)
	binary.LittleEndian.PutUint32(buf[4:8], nblocks)
	binary.LittleEndian.PutUint32(buf[8:12], generation)
	if _, err := mv.file.WriteAt(buf[:], int64(volIndex)*fileMetaRecordSize); err != nil {
		return ioFailure(fmt.Sprintf("write meta record %d", volIndex), err)
	}
	return nil
}

func (mv *FileMetaVolume) Capacity(volIndex int) uint32 {
	c, _, _ := mv.readRecord(volIndex)
	return c
}

func (mv *FileMetaVolume) NBlocks(volIndex int) uint32 {
	_, n, _ := mv.readRecord(volIndex)
	return n
}

func (mv *FileMetaVolume) Generation(volIndex int) uint32 {
	_, _, g := mv.readRecord(volIndex)
	return g
}

func (mv *FileMetaVolume) SetNBlocks(volIndex int, n uint32) error {
	c, _, g := mv.readRecord(volIndex)
	return mv.writeRecord(volIndex, c, n, g)
}

func (mv *FileMetaVolume) SetGeneration(volIndex int, gen uint32) error {
	c, n, _ := mv.readRecord(volIndex)
	return mv.writeRecord(volIndex, c, n, gen)
}

func (mv *FileMetaVolume) Flush() error {
	if err := mv.file.Sync(); err != nil {
		return ioFailure("sync meta volume", err)
	}
	return nil
}

func (mv *FileMetaVolume) Close() error { return mv.file.Close() }
