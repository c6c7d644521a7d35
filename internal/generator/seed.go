package generator

import (
	crand "crypto/rand"
	"encoding/binary"
	"time"
)

// newSeed generates a random seed using crypto/rand, falling back to
// the wall clock if the system entropy source is unavailable.
func newSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
