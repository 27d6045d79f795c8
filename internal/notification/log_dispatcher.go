package notification

import (
	"context"
	"log"
)

// LogDispatcher writes events to the process log instead of delivering
// them. Used when no SMTP host is configured.
type LogDispatcher struct{}

func NewLogDispatcher() *LogDispatcher { return &LogDispatcher{} }

func (d *LogDispatcher) Dispatch(_ context.Context, ev Event) error {
	log.Printf("notification %s -> %s (request %s): %v", ev.Kind, ev.Recipient, ev.RequestID, ev.Data)
	return nil
}
