package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithConflictWindowOverridesDefault(t *testing.T) {
	e := NewEngine(WithConflictWindow(2))
	assert.Equal(t, 2, e.conflictWindow)

	// non-positive values are ignored, default stands
	e2 := NewEngine(WithConflictWindow(0))
	assert.Equal(t, defaultConflictWindow, e2.conflictWindow)
}

func TestWithClockOverridesNow(t *testing.T) {
	e := NewEngine(WithClock(func() int64 { return 42 }))
	assert.Equal(t, int64(42), e.Now())

	// nil is ignored, default System clock stands
	e2 := NewEngine(WithClock(nil))
	assert.Greater(t, e2.Now(), int64(0))
}

func TestWithIDGeneratorOverridesNewID(t *testing.T) {
	e := NewEngine(WithIDGenerator(func() string { return "fixed-id" }))
	assert.Equal(t, "fixed-id", e.NewID())
	assert.Equal(t, "fixed-id", e.NewID())

	// nil is ignored, default ULID generator stands
	e2 := NewEngine(WithIDGenerator(nil))
	assert.NotEmpty(t, e2.NewID())
	assert.Len(t, e2.NewID(), 26)
}
