package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"calendarassistant/config"
	delivery "calendarassistant/internal/delivery/cli"
	"calendarassistant/internal/domain"
	"calendarassistant/internal/repository/jsonfile"
	"calendarassistant/internal/services"
)

const serviceTimeout = 5 * time.Second

func main() {
	app := &cli.App{
		Name:  "assistant",
		Usage: "Local file-backed calendar assistant.",
		Commands: []*cli.Command{
			bookCommand(),
			freeCommand(),
			cancelCommand(),
			reportCommand(),
			replCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

// setup builds the service stack shared by every command: config, logger,
// file repository, and the calendar service with the collection loaded.
func setup(c *cli.Context) (domain.CalendarService, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger()

	repo := jsonfile.NewEventRepository(cfg.EventsPath)
	svc, err := services.NewCalendarService(c.Context, repo, serviceTimeout)
	if err != nil {
		return nil, nil, fmt.Errorf("open event store: %w", err)
	}
	logger.Debug("Event store opened.", "path", cfg.EventsPath)
	return svc, logger, nil
}

func bookCommand() *cli.Command {
	return &cli.Command{
		Name:  "book",
		Usage: "Book a new event.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "summary", Required: true, Usage: "Short label for the event."},
			&cli.StringFlag{Name: "start", Required: true, Usage: "Start time, e.g. 2026-01-02T14:00:00."},
			&cli.StringFlag{Name: "end", Required: true, Usage: "End time, must be after start."},
			&cli.StringFlag{Name: "description", Usage: "Optional longer description."},
			&cli.StringFlag{Name: "location", Usage: "Optional location."},
			&cli.StringSliceFlag{Name: "attendee", Usage: "Attendee identifier; repeatable."},
		},
		Action: func(c *cli.Context) error {
			svc, _, err := setup(c)
			if err != nil {
				return err
			}
			event, err := svc.BookEvent(c.Context, domain.BookEventRequest{
				Summary:     c.String("summary"),
				StartTime:   c.String("start"),
				EndTime:     c.String("end"),
				Description: c.String("description"),
				Location:    c.String("location"),
				Attendees:   c.StringSlice("attendee"),
			})
			if err != nil {
				return err
			}
			fmt.Println(delivery.RenderBooked(event))
			return nil
		},
	}
}

func freeCommand() *cli.Command {
	return &cli.Command{
		Name:  "free",
		Usage: "Check availability for a date or a time range.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Usage: "Calendar date, YYYY-MM-DD."},
			&cli.StringFlag{Name: "start", Usage: "Range start time."},
			&cli.StringFlag{Name: "end", Usage: "Range end time."},
		},
		Action: func(c *cli.Context) error {
			svc, _, err := setup(c)
			if err != nil {
				return err
			}
			req := domain.AvailabilityRequest{
				Date:      c.String("date"),
				StartTime: c.String("start"),
				EndTime:   c.String("end"),
			}
			availability, err := svc.CheckAvailability(c.Context, req)
			if err != nil {
				return err
			}
			fmt.Println(delivery.RenderAvailability(req, availability))
			return nil
		},
	}
}

func cancelCommand() *cli.Command {
	return &cli.Command{
		Name:  "cancel",
		Usage: "Cancel events by ID or by summary (case-insensitive exact match).",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Usage: "Event ID to cancel."},
			&cli.StringFlag{Name: "summary", Usage: "Cancel every event with this summary."},
		},
		Action: func(c *cli.Context) error {
			svc, _, err := setup(c)
			if err != nil {
				return err
			}
			canceled, err := svc.CancelEvent(c.Context, domain.CancelEventRequest{
				EventID: c.String("id"),
				Summary: c.String("summary"),
			})
			if err != nil {
				return err
			}
			fmt.Println(delivery.RenderCanceled(canceled))
			return nil
		},
	}
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Generate the daily report for a date.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Required: true, Usage: "Calendar date, YYYY-MM-DD."},
		},
		Action: func(c *cli.Context) error {
			svc, _, err := setup(c)
			if err != nil {
				return err
			}
			report, err := svc.GenerateDailyReport(c.Context, c.String("date"))
			if err != nil {
				return err
			}
			fmt.Println(delivery.RenderDailyReport(report))
			return nil
		},
	}
}

func replCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Interactive loop accepting CALL_FUNCTION directives.",
		Action: func(c *cli.Context) error {
			svc, logger, err := setup(c)
			if err != nil {
				return err
			}
			agent := delivery.NewAgent(logger, svc)

			fmt.Println("Local Calendar Assistant. Type 'quit' to exit.")
			fmt.Println(`Example: CALL_FUNCTION: book_event(summary="Standup", start_time="2026-01-02T09:00:00", end_time="2026-01-02T09:15:00")`)

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("\nYou: ")
				if !scanner.Scan() {
					break
				}
				input := strings.TrimSpace(scanner.Text())
				if input == "" {
					continue
				}
				if input == "quit" || input == "exit" || input == "bye" {
					break
				}
				fmt.Println("\n" + agent.Run(c.Context, input))
			}
			fmt.Println("Goodbye")
			return scanner.Err()
		},
	}
}
