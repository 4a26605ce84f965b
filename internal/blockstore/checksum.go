package blockstore

import "hash/crc32"

// crc32cTable is the Castagnoli polynomial table (CRC32C), computed once.
// No third-party library in the retrieved corpus implements CRC32C
// specifically; the standard library's hash/crc32 already ships the
// Castagnoli table, so reaching for an external dependency here would add
// nothing a few lines of stdlib don't already give us cleanly.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// Checksum computes the CRC32C of data. FileBlockStore itself neither
// stores nor verifies block checksums; callers apply it to bytes they hold.
func Checksum(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// ValidateChecksum reports whether data matches the given CRC32C checksum.
func ValidateChecksum(data []byte, want uint32) bool {
	return Checksum(data) == want
}
