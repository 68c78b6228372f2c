package treasury

import (
	"time"

	"github.com/google/uuid"
)

// Engine carries the injected collaborators of the rule set.
type Engine struct {
	signals SignalProvider
	now     func() time.Time
	newID   func() string
}

// NewEngine creates an Engine using the wall clock and random UUIDs.
func NewEngine(signals SignalProvider) *Engine {
	return &Engine{
		signals: signals,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// WithClock returns a copy of the engine that reads time from now.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	c := *e
	c.now = now
	return &c
}

// WithIDs returns a copy of the engine that draws identifiers from newID.
func (e *Engine) WithIDs(newID func() string) *Engine {
	c := *e
	c.newID = newID
	return &c
}

// Now returns the engine's current time.
func (e *Engine) Now() time.Time {
	return e.now()
}

// Signals returns the engine's signal provider.
func (e *Engine) Signals() SignalProvider {
	return e.signals
}

func (e *Engine) nowMillis() int64 {
	return e.now().UnixMilli()
}
