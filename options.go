package history

import (
	"github.com/go-mizu/history/internal/clock"
	"github.com/go-mizu/history/pkg/id"
)

const defaultConflictWindow = 10

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithConflictWindow sets the tail length (in global-log entries)
// scanned for cross-user conflicts on Submit. Defaults to 10.
func WithConflictWindow(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.conflictWindow = n
		}
	}
}

// WithClock overrides the time source behind Engine.Now, letting tests
// freeze chronology precisely. Defaults to clock.System.
func WithClock(c clock.Source) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithIDGenerator overrides the id source behind Engine.NewID, letting
// tests substitute a deterministic generator. Defaults to id.New.
func WithIDGenerator(g id.Generator) Option {
	return func(e *Engine) {
		if g != nil {
			e.idGen = g
		}
	}
}
