package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	DistributionCreated Type = "distribution.created"
	CauseCompleted      Type = "cause.completed"
	AccountReset        Type = "account.reset"
)

// Event describes a committed change of a recipient account.
type Event struct {
	ID          uuid.UUID `json:"id"`
	Type        Type      `json:"type"`
	ManagerID   string    `json:"managerId"`
	RecipientID uuid.UUID `json:"recipientId"`
	OccurredAt  time.Time `json:"occurredAt"`
	Data        any       `json:"data,omitempty"`
}

// New creates an event with a fresh ID, occurring now.
func New(t Type, managerID string, recipientID uuid.UUID, data any) Event {
	return Event{
		ID:          uuid.New(),
		Type:        t,
		ManagerID:   managerID,
		RecipientID: recipientID,
		OccurredAt:  time.Now().UTC(),
		Data:        data,
	}
}

// Publisher publishes events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Nop discards all events.
type Nop struct{}

func (Nop) Publish(_ context.Context, _ Event) error {
	return nil
}

func (Nop) Close() error {
	return nil
}

// Recorder keeps all published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns the events published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func (r *Recorder) Close() error {
	return nil
}
