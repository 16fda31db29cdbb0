package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"cardledger/internal/model"
)

// Type names a ledger event; it is also the NATS subject suffix.
type Type string

const (
	CardIssued          Type = "card.issued"
	TransactionRecorded Type = "transaction.recorded"
	CardDeleted         Type = "card.deleted"
)

// Event is published after the unit of work it describes has committed.
// CardDeleted events carry the last transaction of the card, if any, since the
// cascade removes it from the store.
type Event struct {
	Type        Type               `json:"type"`
	OwnerID     string             `json:"owner_id"`
	CardNumber  string             `json:"card_number"`
	Card        *model.Card        `json:"card,omitempty"`
	Transaction *model.Transaction `json:"transaction,omitempty"`
	Actor       string             `json:"actor"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

// Publisher delivers ledger events to external consumers.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// Nop discards events. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// NATSPublisher publishes JSON events on "<prefix>.<type>".
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
}

// Connect opens a NATS connection for publishing ledger events.
func Connect(url, token, prefix string) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("card-ledger"),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &NATSPublisher{conn: conn, prefix: prefix}, nil
}

// Subject returns the subject an event type is published on.
func (p *NATSPublisher) Subject(t Type) string {
	if p.prefix == "" {
		return string(t)
	}
	return p.prefix + "." + string(t)
}

// Publish encodes and sends evt.
func (p *NATSPublisher) Publish(_ context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", evt.Type, err)
	}
	if err := p.conn.Publish(p.Subject(evt.Type), payload); err != nil {
		return fmt.Errorf("publish %s event: %w", evt.Type, err)
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if p.conn == nil {
		return
	}
	_ = p.conn.Drain()
}
