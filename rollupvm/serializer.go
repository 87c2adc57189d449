package rollupvm

import (
	"encoding/binary"
	"errors"

	"github.com/ava-labs/avalanchego/utils/wrappers"
)

var ErrInvalidBatchKey = errors.New("invalid batch key format")

// BatchKey returns the database key of [batchNumber].
// Keys are big endian so that iteration follows batch order.
func BatchKey(batchNumber uint64) []byte {
	key := make([]byte, wrappers.LongLen)
	binary.BigEndian.PutUint64(key, batchNumber)
	return key
}

// ParseBatchKey is the inverse of BatchKey
func ParseBatchKey(key []byte) (uint64, error) {
	if len(key) != wrappers.LongLen {
		return 0, ErrInvalidBatchKey
	}
	return binary.BigEndian.Uint64(key), nil
}
