package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"calendarassistant/internal/domain"
)

// calendarService owns the in-memory event collection for the lifetime of a
// session. The collection is loaded once at construction and written back as
// a whole after every successful mutation, so the on-disk state stays
// authoritative between runs.
//
// The service performs no internal locking; callers embedding it in a
// concurrent environment must serialize mutating calls externally.
type calendarService struct {
	repo           domain.EventRepository
	events         map[string]*domain.Event
	contextTimeout time.Duration
	newID          func() string
}

// NewCalendarService loads the persisted collection through repo and returns
// a service owning it in memory.
func NewCalendarService(ctx context.Context, repo domain.EventRepository, timeout time.Duration) (domain.CalendarService, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	loaded, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	events := make(map[string]*domain.Event, len(loaded))
	for _, e := range loaded {
		events[e.ID] = e
	}

	return &calendarService{
		repo:           repo,
		events:         events,
		contextTimeout: timeout,
		newID:          uuid.NewString,
	}, nil
}

func (s *calendarService) BookEvent(ctx context.Context, req domain.BookEventRequest) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(req.Summary) == "" {
		return nil, &domain.ValidationError{Field: "summary", Reason: "must not be empty"}
	}
	start, err := parseTimestamp(req.StartTime)
	if err != nil {
		return nil, &domain.ValidationError{Field: "start_time", Reason: err.Error()}
	}
	end, err := parseTimestamp(req.EndTime)
	if err != nil {
		return nil, &domain.ValidationError{Field: "end_time", Reason: err.Error()}
	}
	if !start.Before(end) {
		return nil, &domain.ValidationError{Field: "end_time", Reason: "must be after start_time"}
	}

	attendees := req.Attendees
	if attendees == nil {
		attendees = []string{}
	}

	// Overlapping an existing event is deliberately not an error; callers
	// who want to avoid double-booking use CheckAvailability first.
	event := &domain.Event{
		ID:          s.generateID(),
		Summary:     req.Summary,
		StartTime:   start,
		EndTime:     end,
		Description: req.Description,
		Location:    req.Location,
		Attendees:   attendees,
	}

	if err := s.persistWith(ctx, event, nil); err != nil {
		return nil, err
	}
	s.events[event.ID] = event
	return event, nil
}

func (s *calendarService) CheckAvailability(ctx context.Context, req domain.AvailabilityRequest) (*domain.Availability, error) {
	hasDate := req.Date != ""
	hasStart := req.StartTime != ""
	hasEnd := req.EndTime != ""

	switch {
	case hasStart != hasEnd:
		field := "end_time"
		if hasEnd {
			field = "start_time"
		}
		return nil, &domain.ValidationError{Field: field, Reason: "start_time and end_time must be supplied together"}
	case hasDate && hasStart:
		return nil, &domain.ValidationError{Field: "date", Reason: "supply either date or a start_time/end_time range, not both"}
	case !hasDate && !hasStart:
		return nil, &domain.ValidationError{Field: "date", Reason: "supply a date or a start_time/end_time range"}
	}

	conflicts := []*domain.Event{}
	if hasDate {
		day, err := parseDate(req.Date)
		if err != nil {
			return nil, &domain.ValidationError{Field: "date", Reason: err.Error()}
		}
		for _, e := range s.events {
			if e.StartsOn(day) {
				conflicts = append(conflicts, e)
			}
		}
	} else {
		start, err := parseTimestamp(req.StartTime)
		if err != nil {
			return nil, &domain.ValidationError{Field: "start_time", Reason: err.Error()}
		}
		end, err := parseTimestamp(req.EndTime)
		if err != nil {
			return nil, &domain.ValidationError{Field: "end_time", Reason: err.Error()}
		}
		if start.After(end) {
			return nil, &domain.ValidationError{Field: "end_time", Reason: "must not be before start_time"}
		}
		// A zero-duration range [s, s) is empty and conflicts with nothing.
		if !start.Equal(end) {
			for _, e := range s.events {
				if e.Overlaps(start, end) {
					conflicts = append(conflicts, e)
				}
			}
		}
	}

	domain.SortChronological(conflicts)
	return &domain.Availability{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

func (s *calendarService) CancelEvent(ctx context.Context, req domain.CancelEventRequest) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	hasID := req.EventID != ""
	hasSummary := req.Summary != ""
	if hasID == hasSummary {
		return nil, &domain.ValidationError{Field: "event_id", Reason: "supply exactly one of event_id or summary"}
	}

	var matches []*domain.Event
	if hasID {
		e, ok := s.events[req.EventID]
		if !ok {
			return nil, &domain.NotFoundError{Key: req.EventID}
		}
		matches = append(matches, e)
	} else {
		// Case-insensitive exact match; every match is canceled.
		for _, e := range s.events {
			if strings.EqualFold(e.Summary, req.Summary) {
				matches = append(matches, e)
			}
		}
		if len(matches) == 0 {
			return nil, &domain.NotFoundError{Key: req.Summary}
		}
	}

	remove := make(map[string]struct{}, len(matches))
	for _, e := range matches {
		remove[e.ID] = struct{}{}
	}
	if err := s.persistWith(ctx, nil, remove); err != nil {
		return nil, err
	}
	for id := range remove {
		delete(s.events, id)
	}

	domain.SortChronological(matches)
	return matches, nil
}

func (s *calendarService) GenerateDailyReport(ctx context.Context, date string) (*domain.DailyReport, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, &domain.ValidationError{Field: "date", Reason: err.Error()}
	}

	events := []*domain.Event{}
	var total time.Duration
	for _, e := range s.events {
		if e.StartsOn(day) {
			events = append(events, e)
			total += e.Duration()
		}
	}
	domain.SortChronological(events)

	return &domain.DailyReport{
		Date:          day,
		Events:        events,
		EventCount:    len(events),
		TotalDuration: total,
	}, nil
}

// generateID returns a fresh ID absent from the collection. UUID collisions
// are vanishingly rare but the check keeps the uniqueness invariant explicit.
func (s *calendarService) generateID() string {
	for {
		id := s.newID()
		if _, exists := s.events[id]; !exists {
			return id
		}
	}
}

// persistWith saves the current collection with add appended and the IDs in
// remove dropped, without touching in-memory state. Callers commit to memory
// only after it succeeds, so a failed save changes nothing observable.
func (s *calendarService) persistWith(ctx context.Context, add *domain.Event, remove map[string]struct{}) error {
	next := make([]*domain.Event, 0, len(s.events)+1)
	for id, e := range s.events {
		if _, dropped := remove[id]; dropped {
			continue
		}
		next = append(next, e)
	}
	if add != nil {
		next = append(next, add)
	}
	domain.SortChronological(next)

	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	return nil
}
