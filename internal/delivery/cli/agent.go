package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"calendarassistant/internal/domain"
)

const callDirective = "CALL_FUNCTION:"

const usageText = `Please call functions using the format:
CALL_FUNCTION: book_event(summary="Meeting", start_time="2026-01-02T14:00:00", end_time="2026-01-02T15:00:00")

Available functions: book_event, check_availability, cancel_event, generate_daily_report`

// Agent translates explicit CALL_FUNCTION directives into event store
// operations and renders their results for a terminal. It is the only layer
// that parses invocation syntax; the service sees named arguments only.
type Agent struct {
	logger  *slog.Logger
	service domain.CalendarService
}

func NewAgent(logger *slog.Logger, service domain.CalendarService) *Agent {
	return &Agent{
		logger:  logger,
		service: service,
	}
}

// Run handles one line of input. Input without a CALL_FUNCTION directive
// yields usage help rather than an error; operation errors are rendered,
// never returned, so a REPL keeps running.
func (a *Agent) Run(ctx context.Context, input string) string {
	call, ok := parseFunctionCall(input)
	if !ok {
		return usageText
	}

	out, err := a.dispatch(ctx, call)
	if err != nil {
		a.logger.Debug("function call failed", "function", call.name, "error", err)
		return RenderError(err)
	}
	return out
}

func (a *Agent) dispatch(ctx context.Context, call functionCall) (string, error) {
	switch call.name {
	case "book_event":
		event, err := a.service.BookEvent(ctx, domain.BookEventRequest{
			Summary:     call.args["summary"],
			StartTime:   call.args["start_time"],
			EndTime:     call.args["end_time"],
			Description: call.args["description"],
			Location:    call.args["location"],
			Attendees:   splitAttendees(call.args["attendees"]),
		})
		if err != nil {
			return "", err
		}
		return RenderBooked(event), nil

	case "check_availability":
		req := domain.AvailabilityRequest{
			Date:      call.args["date"],
			StartTime: call.args["start_time"],
			EndTime:   call.args["end_time"],
		}
		availability, err := a.service.CheckAvailability(ctx, req)
		if err != nil {
			return "", err
		}
		return RenderAvailability(req, availability), nil

	case "cancel_event":
		canceled, err := a.service.CancelEvent(ctx, domain.CancelEventRequest{
			EventID: call.args["event_id"],
			Summary: call.args["summary"],
		})
		if err != nil {
			return "", err
		}
		return RenderCanceled(canceled), nil

	case "generate_daily_report":
		report, err := a.service.GenerateDailyReport(ctx, call.args["date"])
		if err != nil {
			return "", err
		}
		return RenderDailyReport(report), nil

	default:
		return fmt.Sprintf("Unknown function: %s", call.name), nil
	}
}

type functionCall struct {
	name string
	args map[string]string
}

// parseFunctionCall extracts `name(key="value", ...)` after a CALL_FUNCTION
// directive. Arguments split naively on commas, so values must not contain
// them; attendee lists use ';' as separator instead. A bare `none` value
// means the argument was not supplied.
func parseFunctionCall(text string) (functionCall, bool) {
	idx := strings.Index(text, callDirective)
	if idx < 0 {
		return functionCall{}, false
	}
	rest := strings.TrimSpace(text[idx+len(callDirective):])

	open := strings.Index(rest, "(")
	closing := strings.LastIndex(rest, ")")
	if open <= 0 || closing < open {
		return functionCall{}, false
	}

	call := functionCall{
		name: strings.TrimSpace(rest[:open]),
		args: make(map[string]string),
	}
	for _, part := range strings.Split(rest[open+1:closing], ",") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		value := strings.Trim(strings.TrimSpace(kv[1]), `"'`)
		if strings.EqualFold(value, "none") {
			value = ""
		}
		call.args[key] = value
	}
	return call, call.name != ""
}

// splitAttendees turns a ';'-separated list into individual attendees,
// preserving order and dropping empty entries.
func splitAttendees(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var attendees []string
	for _, a := range strings.Split(value, ";") {
		if a = strings.TrimSpace(a); a != "" {
			attendees = append(attendees, a)
		}
	}
	return attendees
}
