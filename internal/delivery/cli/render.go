package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"calendarassistant/internal/domain"
)

// RenderBooked confirms a booking with the assigned ID.
func RenderBooked(e *domain.Event) string {
	return fmt.Sprintf("Event booked. ID: %s", e.ID)
}

// RenderAvailability describes the query outcome: a free confirmation, or one
// line per conflicting event.
func RenderAvailability(req domain.AvailabilityRequest, a *domain.Availability) string {
	scope := fmt.Sprintf("from %s to %s", req.StartTime, req.EndTime)
	if req.Date != "" {
		scope = "on " + req.Date
	}

	if a.Available {
		return "You're free " + scope
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %d meeting(s) %s:\n", len(a.Conflicts), scope)
	for _, e := range a.Conflicts {
		fmt.Fprintf(&b, "- %s at %s (ID: %s)\n", e.Summary, e.StartTime.Format("15:04"), e.ID)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderCanceled lists every canceled event.
func RenderCanceled(events []*domain.Event) string {
	if len(events) == 1 {
		e := events[0]
		return fmt.Sprintf("Canceled %q (ID: %s)", e.Summary, e.ID)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Canceled %d events:\n", len(events))
	for _, e := range events {
		fmt.Fprintf(&b, "- %s (ID: %s)\n", e.Summary, e.ID)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderDailyReport formats a report with per-event durations and the total
// scheduled time for the day.
func RenderDailyReport(r *domain.DailyReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "DAILY CALENDAR REPORT - %s\n", r.Date.Format("Monday, January 2, 2006"))
	b.WriteString(strings.Repeat("=", 60) + "\n")

	if r.EventCount == 0 {
		b.WriteString("No events scheduled for this day.")
		return b.String()
	}

	fmt.Fprintf(&b, "Total Events: %d\n\n", r.EventCount)
	for i, e := range r.Events {
		fmt.Fprintf(&b, "%d. %s\n", i+1, e.Summary)
		fmt.Fprintf(&b, "   Time: %s - %s\n", e.StartTime.Format("15:04"), e.EndTime.Format("15:04"))
		fmt.Fprintf(&b, "   Duration: %d minutes\n\n", int(e.Duration().Minutes()))
	}
	b.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&b, "Total Meeting Time: %s", formatTotal(r.TotalDuration))
	return b.String()
}

// RenderError presents a typed core error without leaking internals.
func RenderError(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fmt.Sprintf("Invalid input: %v", err)
	case errors.Is(err, domain.ErrNotFound):
		return fmt.Sprintf("Not found: %v", err)
	case errors.Is(err, domain.ErrPersistence):
		return fmt.Sprintf("Storage error: %v", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

func formatTotal(d time.Duration) string {
	minutes := int(d.Minutes())
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}
