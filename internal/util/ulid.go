package util

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewULID generates a new ULID string.
// IDs created within the same millisecond stay sortable thanks to the monotonic entropy,
// which is shared and therefore guarded by a mutex.
func NewULID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// IsULID reports whether s parses as a ULID
func IsULID(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
