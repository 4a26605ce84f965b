package blockstore

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func makeFileBlock(b byte) []byte {
	buf := make([]byte, BlockSize)
	for i := range buf {
		buf[i] = b
	}
	return buf
}

func TestFileVolume_AppendReadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	v, err := OpenFileVolume(filepath.Join(dir, "vol-0.dat"), 4, 0)
	require.NoError(t, err)
	defer func() { _ = v.Close() }()

	addr, err := v.AppendBlock(makeFileBlock(1))
	require.NoError(t, err)
	require.Equal(t, uint32(0), addr)

	addr, err = v.AppendBlock(makeFileBlock(2))
	require.NoError(t, err)
	require.Equal(t, uint32(1), addr)

	out := make([]byte, BlockSize)
	require.NoError(t, v.ReadBlock(0, out))
	require.True(t, bytes.Equal(out, makeFileBlock(1)))

	require.NoError(t, v.ReadBlock(1, out))
	require.True(t, bytes.Equal(out, makeFileBlock(2)))
}

func TestFileVolume_AppendOverflow(t *testing.T) {
	dir := t.TempDir()
	v, err := OpenFileVolume(filepath.Join(dir, "vol-0.dat"), 1, 0)
	require.NoError(t, err)
	defer func() { _ = v.Close() }()

	_, err = v.AppendBlock(makeFileBlock(1))
	require.NoError(t, err)

	_, err = v.AppendBlock(makeFileBlock(2))
	require.Error(t, err)
	require.True(t, isBlockstoreKind(err, Overflow))
}

func TestFileVolume_ReadOutOfBounds(t *testing.T) {
	dir := t.TempDir()
	v, err := OpenFileVolume(filepath.Join(dir, "vol-0.dat"), 4, 0)
	require.NoError(t, err)
	defer func() { _ = v.Close() }()

	out := make([]byte, BlockSize)
	err = v.ReadBlock(0, out)
	require.Error(t, err)
	require.True(t, isBlockstoreKind(err, OutOfBounds))
}

func TestFileVolume_ResetTruncates(t *testing.T) {
	dir := t.TempDir()
	v, err := OpenFileVolume(filepath.Join(dir, "vol-0.dat"), 4, 0)
	require.NoError(t, err)
	defer func() { _ = v.Close() }()

	_, err = v.AppendBlock(makeFileBlock(1))
	require.NoError(t, err)
	require.NoError(t, v.Reset())

	out := make([]byte, BlockSize)
	err = v.ReadBlock(0, out)
	require.Error(t, err)
}

func TestFileVolume_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vol-0.dat")

	v, err := OpenFileVolume(path, 4, 0)
	require.NoError(t, err)
	_, err = v.AppendBlock(makeFileBlock(7))
	require.NoError(t, err)
	require.NoError(t, v.Flush())
	require.NoError(t, v.Close())

	v2, err := OpenFileVolume(path, 4, 1)
	require.NoError(t, err)
	defer func() { _ = v2.Close() }()

	out := make([]byte, BlockSize)
	require.NoError(t, v2.ReadBlock(0, out))
	require.True(t, bytes.Equal(out, makeFileBlock(7)))
}

func TestFileMetaVolume_SeedsGenerationToVolumeIndex(t *testing.T) {
	dir := t.TempDir()
	mv, err := OpenFileMetaVolume(filepath.Join(dir, "meta.dat"), 3, []uint32{10, 20, 30})
	require.NoError(t, err)
	defer func() { _ = mv.Close() }()

	for i := 0; i < 3; i++ {
		require.Equal(t, uint32(i), mv.Generation(i))
		require.Equal(t, uint32(0), mv.NBlocks(i))
	}
	require.Equal(t, uint32(10), mv.Capacity(0))
	require.Equal(t, uint32(30), mv.Capacity(2))
}

func TestFileMetaVolume_SetGenerationAndNBlocksPersist(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meta.dat")

	mv, err := OpenFileMetaVolume(path, 2, []uint32{10, 10})
	require.NoError(t, err)
	require.NoError(t, mv.SetNBlocks(0, 5))
	require.NoError(t, mv.SetGeneration(1, 99))
	require.NoError(t, mv.Flush())
	require.NoError(t, mv.Close())

	mv2, err := OpenFileMetaVolume(path, 2, []uint32{10, 10})
	require.NoError(t, err)
	defer func() { _ = mv2.Close() }()

	require.Equal(t, uint32(5), mv2.NBlocks(0))
	require.Equal(t, uint32(99), mv2.Generation(1))
}
