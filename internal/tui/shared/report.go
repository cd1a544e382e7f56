package shared

import (
	"errors"

	"projector/internal/events"
	"projector/internal/logs"
)

// Report logs a failed service call and raises a destructive toast for it.
// Errors matching one of announced were already toasted by the service and
// are only logged. Report returns false when err is nil.
func Report(bus *events.Bus, action string, err error, announced ...error) bool {
	if err == nil {
		return false
	}
	logs.Logger.Warnw(action+" failed", "error", err)
	for _, a := range announced {
		if errors.Is(err, a) {
			return true
		}
	}
	bus.Warn("Could not "+action, err.Error())
	return true
}
