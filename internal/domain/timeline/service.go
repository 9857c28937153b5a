package timeline

import (
	"context"
	"time"
)

// TimelineService records punch events and exposes day reconstructions.
type TimelineService interface {
	// RecordEvent appends one event for the authenticated employee. The
	// attendance day bucket is chosen here, once, against the shift in force
	// at the punch timestamp.
	RecordEvent(ctx context.Context, req RecordEventRequest) (EventResponse, error)

	// GetDay returns the raw ordered timeline of a day bucket together with
	// the derived live flags.
	GetDay(ctx context.Context, employeeID string, day time.Time) (DayTimeline, error)
}

// DayTimeline bundles the filtered ordered events of one bucket with the
// live status derived from its last event.
type DayTimeline struct {
	Events           []Event
	CurrentlyWorking bool
	OnBreak          bool
}
