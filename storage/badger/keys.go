package badger

import "encoding/binary"

// Key prefixes for different data types
const (
	vectorPrefix = "embvec"
)

// makeVectorKey generates a key for a cached embedding vector.
// Format: prefix:contentKey (8 bytes, BigEndian)
func makeVectorKey(key uint64) []byte {
	prefix := vectorPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], key)
	return buf
}
