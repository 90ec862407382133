package jsonfile

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"calendarassistant/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// eventsDocument is the on-disk shape: a single object holding the whole
// collection. An empty collection persists as {"events": []}, never null.
type eventsDocument struct {
	Events []*domain.Event `json:"events"`
}

type eventRepository struct {
	path string
}

// NewEventRepository returns a repository that persists the whole event
// collection to a single JSON file at path.
func NewEventRepository(path string) domain.EventRepository {
	return &eventRepository{
		path: path,
	}
}

func (r *eventRepository) Load(_ context.Context) ([]*domain.Event, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*domain.Event{}, nil
		}
		return nil, &domain.PersistenceError{Op: "load", Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []*domain.Event{}, nil
	}

	var doc eventsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &domain.PersistenceError{Op: "load", Err: err}
	}
	if doc.Events == nil {
		doc.Events = []*domain.Event{}
	}
	// Normalize optional fields so a round trip yields equal events.
	for _, e := range doc.Events {
		if e.Attendees == nil {
			e.Attendees = []string{}
		}
	}
	return doc.Events, nil
}

func (r *eventRepository) Save(_ context.Context, events []*domain.Event) error {
	if events == nil {
		events = []*domain.Event{}
	}
	data, err := json.MarshalIndent(eventsDocument{Events: events}, "", "  ")
	if err != nil {
		return &domain.PersistenceError{Op: "save", Err: err}
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &domain.PersistenceError{Op: "save", Err: err}
	}

	// Write to a temp file and rename over the target so readers never see
	// a torn collection.
	tmp, err := os.CreateTemp(dir, ".events-*.json")
	if err != nil {
		return &domain.PersistenceError{Op: "save", Err: err}
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return &domain.PersistenceError{Op: "save", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &domain.PersistenceError{Op: "save", Err: err}
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return &domain.PersistenceError{Op: "save", Err: err}
	}
	return nil
}
