// Package id generates globally unique, time-sortable command ids.
package id

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

// New returns a new ULID string: lexically sortable by creation time,
// unique across a process lifetime even when generated within the same
// millisecond (the monotonic entropy source increments instead of
// re-randomizing on collision).
func New() string {
	entropyLock.Lock()
	defer entropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// Generator produces a command id. Engine accepts any Generator via
// WithIDGenerator so callers can substitute a deterministic source in
// tests without depending on this package.
type Generator func() string
