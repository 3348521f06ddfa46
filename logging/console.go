package logging

import (
	"context"
	"log"
)

type consolePublisher struct {
	minimum Severity
}

// NewConsolePublisher writes events at or above the given severity to the
// process log. It is the default sink for the standalone host binary.
func NewConsolePublisher(minimum Severity) Publisher {
	return &consolePublisher{minimum: minimum}
}

func (p *consolePublisher) Publish(_ context.Context, event Event) {
	if event.Severity < p.minimum {
		return
	}
	if event.Payload != nil {
		log.Printf("[%s] tick=%d actor=%s %+v", event.Type, event.Tick, event.Actor.ID, event.Payload)
		return
	}
	log.Printf("[%s] tick=%d actor=%s", event.Type, event.Tick, event.Actor.ID)
}
