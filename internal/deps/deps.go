// Package deps bundles what every feature service needs from the app.
package deps

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"projector/internal/events"
	"projector/internal/storage"
)

type Deps struct {
	Store storage.Store
	Bus   *events.Bus
	Now   func() time.Time
	NewID func() string
	// Actor is the signed-in user credited in activity records.
	Actor func() events.Actor
}

// Resolved fills unset fields with production defaults. Store must be set.
func (d Deps) Resolved() Deps {
	if d.Bus == nil {
		d.Bus = events.NewBus()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	if d.Actor == nil {
		d.Actor = func() events.Actor { return events.Actor{Name: "You"} }
	}
	return d
}

// Sequence returns an id generator yielding prefix1, prefix2, ... for tests.
func Sequence(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + strconv.Itoa(n)
	}
}

// FixedClock returns a clock frozen at t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
