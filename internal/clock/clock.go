// Package clock provides an injectable time source so callers can make
// timestamp-dependent history behavior (chronology, conflict windows)
// deterministic in tests.
package clock

import "time"

// Source returns the current time as milliseconds since epoch.
type Source func() int64

// System is the default Source, backed by time.Now.
func System() int64 {
	return time.Now().UnixMilli()
}
