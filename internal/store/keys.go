package store

import "encoding/binary"

// Keyspace helpers for Pebble keys.
//
// Layout (byte-wise, lexicographically sortable):
//   - kb/b/{id_be8}  battle record (JSON)
//   - kb/u/{id_be8}  unread index
//   - kb/r/{id_be8}  read index
//
// Battle ids are upstream-assigned and monotonically increasing, so the
// big-endian encoding makes range scans chronological.

var (
	battlePrefix = []byte("kb/b/")
	unreadPrefix = []byte("kb/u/")
	readPrefix   = []byte("kb/r/")
)

func appendBE8(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}

func keyBattle(id int64) []byte { return appendBE8(append([]byte(nil), battlePrefix...), uint64(id)) }
func keyUnread(id int64) []byte { return appendBE8(append([]byte(nil), unreadPrefix...), uint64(id)) }
func keyRead(id int64) []byte   { return appendBE8(append([]byte(nil), readPrefix...), uint64(id)) }

// idFromKey extracts the battle id from any of the three key forms.
func idFromKey(key []byte) int64 {
	return int64(binary.BigEndian.Uint64(key[len(key)-8:]))
}

// bounds returns the [low, high) iteration range covering a whole prefix.
func bounds(prefix []byte) (low, high []byte) {
	low = appendBE8(append([]byte(nil), prefix...), 0)
	high = appendBE8(append([]byte(nil), prefix...), ^uint64(0))
	high = append(high, 0x00)
	return low, high
}
