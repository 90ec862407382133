package cli

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calendarassistant/internal/domain"
	"calendarassistant/internal/repository/jsonfile"
	"calendarassistant/internal/services"
)

func newTestAgent(t *testing.T) *Agent {
	t.Helper()
	repo := jsonfile.NewEventRepository(filepath.Join(t.TempDir(), "events.json"))
	svc, err := services.NewCalendarService(context.Background(), repo, 5*time.Second)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAgent(logger, svc)
}

func TestParseFunctionCall(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantOK   bool
		wantName string
		wantArgs map[string]string
	}{
		{
			name:   "no directive",
			input:  "book me a meeting tomorrow",
			wantOK: false,
		},
		{
			name:   "directive without parentheses",
			input:  "CALL_FUNCTION: book_event",
			wantOK: false,
		},
		{
			name:     "quoted arguments",
			input:    `CALL_FUNCTION: book_event(summary="Standup", start_time="2026-01-02T09:00:00", end_time="2026-01-02T09:15:00")`,
			wantOK:   true,
			wantName: "book_event",
			wantArgs: map[string]string{
				"summary":    "Standup",
				"start_time": "2026-01-02T09:00:00",
				"end_time":   "2026-01-02T09:15:00",
			},
		},
		{
			name:     "none means absent",
			input:    `CALL_FUNCTION: cancel_event(event_id=none, summary="Standup")`,
			wantOK:   true,
			wantName: "cancel_event",
			wantArgs: map[string]string{"event_id": "", "summary": "Standup"},
		},
		{
			name:     "no arguments",
			input:    "CALL_FUNCTION: generate_daily_report()",
			wantOK:   true,
			wantName: "generate_daily_report",
			wantArgs: map[string]string{},
		},
		{
			name:     "directive embedded in surrounding text",
			input:    `please run CALL_FUNCTION: check_availability(date="2026-01-02")`,
			wantOK:   true,
			wantName: "check_availability",
			wantArgs: map[string]string{"date": "2026-01-02"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, ok := parseFunctionCall(tt.input)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantName, call.name)
			assert.Equal(t, tt.wantArgs, call.args)
		})
	}
}

func TestSplitAttendees(t *testing.T) {
	assert.Nil(t, splitAttendees(""))
	assert.Nil(t, splitAttendees("  "))
	assert.Equal(t, []string{"ana@example.com"}, splitAttendees("ana@example.com"))
	assert.Equal(t,
		[]string{"ana@example.com", "bo@example.com"},
		splitAttendees(" ana@example.com ; bo@example.com ;"))
}

func TestAgent_Run(t *testing.T) {
	ctx := context.Background()
	agent := newTestAgent(t)

	t.Run("free-form input yields usage help", func(t *testing.T) {
		out := agent.Run(ctx, "what's on my calendar?")
		assert.Contains(t, out, "CALL_FUNCTION")
		assert.Contains(t, out, "book_event")
	})

	t.Run("unknown function", func(t *testing.T) {
		out := agent.Run(ctx, "CALL_FUNCTION: reschedule_event(event_id=\"x\")")
		assert.Contains(t, out, "Unknown function: reschedule_event")
	})

	t.Run("book then query then report then cancel", func(t *testing.T) {
		out := agent.Run(ctx, `CALL_FUNCTION: book_event(summary="Standup", start_time="2026-01-02T09:00:00", end_time="2026-01-02T09:30:00", attendees="ana@example.com; bo@example.com")`)
		require.Contains(t, out, "Event booked. ID: ")
		id := strings.TrimPrefix(out, "Event booked. ID: ")

		out = agent.Run(ctx, `CALL_FUNCTION: check_availability(start_time="2026-01-02T09:15:00", end_time="2026-01-02T09:20:00")`)
		assert.Contains(t, out, "1 meeting(s)")
		assert.Contains(t, out, "Standup at 09:00")

		out = agent.Run(ctx, `CALL_FUNCTION: check_availability(date="2026-01-03")`)
		assert.Equal(t, "You're free on 2026-01-03", out)

		out = agent.Run(ctx, `CALL_FUNCTION: generate_daily_report(date="2026-01-02")`)
		assert.Contains(t, out, "Total Events: 1")
		assert.Contains(t, out, "Duration: 30 minutes")
		assert.Contains(t, out, "Total Meeting Time: 0h30m")

		out = agent.Run(ctx, `CALL_FUNCTION: cancel_event(event_id="`+id+`")`)
		assert.Contains(t, out, `Canceled "Standup"`)

		out = agent.Run(ctx, `CALL_FUNCTION: generate_daily_report(date="2026-01-02")`)
		assert.Contains(t, out, "No events scheduled for this day.")
	})

	t.Run("errors render instead of crashing the loop", func(t *testing.T) {
		out := agent.Run(ctx, `CALL_FUNCTION: book_event(summary="Broken", start_time="later", end_time="2026-01-02T10:00:00")`)
		assert.Contains(t, out, "Invalid input")
		assert.Contains(t, out, "start_time")

		out = agent.Run(ctx, `CALL_FUNCTION: cancel_event(event_id="missing-id")`)
		assert.Contains(t, out, "Not found")
	})
}

func TestAgent_CollectionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "events.json")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc, err := services.NewCalendarService(ctx, jsonfile.NewEventRepository(path), 5*time.Second)
	require.NoError(t, err)
	booked, err := svc.BookEvent(ctx, domain.BookEventRequest{
		Summary:     "Planning",
		StartTime:   "2026-01-02T10:00:00",
		EndTime:     "2026-01-02T11:00:00",
		Description: "Sprint planning",
		Location:    "Room 1",
		Attendees:   []string{"ana@example.com"},
	})
	require.NoError(t, err)

	// A fresh service over the same file sees the identical event.
	restarted, err := services.NewCalendarService(ctx, jsonfile.NewEventRepository(path), 5*time.Second)
	require.NoError(t, err)
	agent := NewAgent(logger, restarted)

	out := agent.Run(ctx, `CALL_FUNCTION: check_availability(date="2026-01-02")`)
	assert.Contains(t, out, "Planning at 10:00")
	assert.Contains(t, out, booked.ID)

	canceled, err := restarted.CancelEvent(ctx, domain.CancelEventRequest{EventID: booked.ID})
	require.NoError(t, err)
	require.Len(t, canceled, 1)
	assert.Equal(t, booked, canceled[0])
}

func TestRenderDailyReport(t *testing.T) {
	report := &domain.DailyReport{
		Date: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		Events: []*domain.Event{
			{
				ID:        "ev-1",
				Summary:   "Standup",
				StartTime: time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC),
			},
			{
				ID:        "ev-2",
				Summary:   "Design sync",
				StartTime: time.Date(2026, 1, 2, 14, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2026, 1, 2, 14, 45, 0, 0, time.UTC),
			},
		},
		EventCount:    2,
		TotalDuration: 75 * time.Minute,
	}

	out := RenderDailyReport(report)
	assert.Contains(t, out, "DAILY CALENDAR REPORT - Friday, January 2, 2026")
	assert.Contains(t, out, "Total Events: 2")
	assert.Contains(t, out, "1. Standup")
	assert.Contains(t, out, "Time: 09:00 - 09:30")
	assert.Contains(t, out, "2. Design sync")
	assert.Contains(t, out, "Duration: 45 minutes")
	assert.Contains(t, out, "Total Meeting Time: 1h15m")
}
