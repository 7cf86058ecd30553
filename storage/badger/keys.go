package badger

import "encoding/binary"

// Key layout for the persisted artifact
const (
	recordPrefix = "asmrec:"
	manifestKey  = "asmmanifest"
)

// makeRecordKey generates the key for the record at the given index position.
// Positions are big-endian encoded so BadgerDB's lexicographic iteration
// order is exactly index order.
func makeRecordKey(position int) []byte {
	key := make([]byte, len(recordPrefix)+8)
	copy(key, recordPrefix)
	binary.BigEndian.PutUint64(key[len(recordPrefix):], uint64(position))
	return key
}

// recordPosition decodes the index position from a record key.
func recordPosition(key []byte) int {
	return int(binary.BigEndian.Uint64(key[len(recordPrefix):]))
}
