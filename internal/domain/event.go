package domain

import (
	"context"
	"sort"
	"time"
)

// Event represents a single calendar entry
type Event struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Attendees   []string  `json:"attendees"`
}

// Overlaps reports whether the event intersects the half-open range [start, end).
func (e *Event) Overlaps(start, end time.Time) bool {
	return e.StartTime.Before(end) && e.EndTime.After(start)
}

// StartsOn reports whether the event starts on the given calendar date.
// Only the date components are compared; no timezone shifting is applied.
func (e *Event) StartsOn(date time.Time) bool {
	y1, m1, d1 := e.StartTime.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Duration returns the scheduled length of the event.
func (e *Event) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

// SortChronological orders events by start time ascending, ties broken by ID.
func SortChronological(events []*Event) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].StartTime.Equal(events[j].StartTime) {
			return events[i].ID < events[j].ID
		}
		return events[i].StartTime.Before(events[j].StartTime)
	})
}

// Availability is the result of an availability query. Available is true
// iff Conflicts is empty; Conflicts is always chronological.
type Availability struct {
	Available bool     `json:"available"`
	Conflicts []*Event `json:"conflicts"`
}

// DailyReport summarizes all events starting on a single calendar date.
type DailyReport struct {
	Date          time.Time     `json:"date"`
	Events        []*Event      `json:"events"`
	EventCount    int           `json:"event_count"`
	TotalDuration time.Duration `json:"total_duration"`
}

// BookEventRequest carries the named arguments of a booking call. The time
// fields are strings because they arrive unparsed from the caller boundary;
// the service validates and parses them.
type BookEventRequest struct {
	Summary     string
	StartTime   string
	EndTime     string
	Description string
	Location    string
	Attendees   []string
}

// AvailabilityRequest selects exactly one query mode: Date alone lists a
// whole day, StartTime and EndTime together query a time range.
type AvailabilityRequest struct {
	Date      string
	StartTime string
	EndTime   string
}

// CancelEventRequest identifies events to cancel by exactly one of the two keys.
type CancelEventRequest struct {
	EventID string
	Summary string
}

// EventRepository defines the interface for durable event storage.
// Load and Save always transfer the whole collection.
type EventRepository interface {
	Load(ctx context.Context) ([]*Event, error)
	Save(ctx context.Context, events []*Event) error
}

// CalendarService defines the operations of the event store.
type CalendarService interface {
	BookEvent(ctx context.Context, req BookEventRequest) (*Event, error)
	CheckAvailability(ctx context.Context, req AvailabilityRequest) (*Availability, error)
	CancelEvent(ctx context.Context, req CancelEventRequest) ([]*Event, error)
	GenerateDailyReport(ctx context.Context, date string) (*DailyReport, error)
}
