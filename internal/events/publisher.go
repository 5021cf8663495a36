// Package events publishes case lifecycle notifications on the message bus.
// The WhatsApp notifier consumes them to tell clients their case moved.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/models"
)

// Subject constants for the portal message bus.
// Follow the pattern: {domain}.{resource}.{action}
const (
	SubjectCaseCreated     = "portal.cases.created"
	SubjectCaseTransformed = "portal.cases.transformed"
	SubjectCaseConcluded   = "portal.cases.concluded"
	SubjectStepCompleted   = "portal.steps.completed"
	SubjectDocumentAdded   = "portal.documents.added"
)

// CaseEvent is the payload carried on every case subject.
type CaseEvent struct {
	CaseID     string    `json:"case_id"`
	ClientID   string    `json:"client_id"`
	ClientName string    `json:"client_name"`
	Title      string    `json:"title"`
	StepLabel  string    `json:"step_label,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher is implemented by the NATS publisher and the no-op fallback.
type Publisher interface {
	Publish(ctx context.Context, subject string, event CaseEvent) error
	Close()
}

// NATSPublisher publishes events over a NATS connection.
type NATSPublisher struct {
	conn *nats.Conn
}

// Connect dials the NATS server and returns a publisher.
func Connect(url, name string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, event CaseEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

func (p *NATSPublisher) Close() {
	p.conn.Drain()
}

// NopPublisher drops events. Used when no NATS URL is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, subject string, event CaseEvent) error {
	return nil
}

func (NopPublisher) Close() {}

// NewCaseEvent builds the standard payload for a case.
func NewCaseEvent(c *models.LegalCase, stepLabel string) CaseEvent {
	return CaseEvent{
		CaseID:     c.ID,
		ClientID:   c.ClientID,
		ClientName: c.ClientName,
		Title:      c.Title,
		StepLabel:  stepLabel,
		OccurredAt: time.Now().UTC(),
	}
}
