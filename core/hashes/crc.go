package hashes

import (
	"github.com/klauspost/crc32"
)

var table = crc32.MakeTable(crc32.IEEE)

// CRC returns the content hash of the given symbolic key.
// The key is lowercased (ASCII only) before hashing, so lookups are case-insensitive.
func CRC(key string) uint32 {
	return CRCBytes([]byte(key))
}

// CRCBytes is CRC for raw bytes.
func CRCBytes(data []byte) uint32 {
	lowered := make([]byte, len(data))
	for i, b := range data {
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		lowered[i] = b
	}
	// crc32.Update inverts on entry and exit; undo both to get a zero seed
	// without the final xor.
	return ^crc32.Update(0xFFFFFFFF, table, lowered)
}
