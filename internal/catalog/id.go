package catalog

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewID generates a unique identifier with the given prefix.
// The format is timestamp-based with a short random suffix, matching
// the ids produced for manually created and imported records.
func NewID(prefix string) string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand is documented to never fail on supported
		// platforms; fall back to the timestamp alone.
		return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
	}
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(suffix))
}
