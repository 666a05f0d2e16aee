package infrastructure

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"

	"catalog-service/internal/domain/events"
	"catalog-service/internal/infrastructure/logging"
)

// NATSBroadcaster relays product events to NATS so other services can follow
// catalog changes. Subjects look like "<prefix>.productCreated".
type NATSBroadcaster struct {
	conn   *nats.Conn
	prefix string
	logger *logging.Logger
}

func NewNATSBroadcaster(url, prefix string, logger *logging.Logger) (*NATSBroadcaster, error) {
	nc, err := nats.Connect(url, nats.Name("catalog-service"))
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	logger.Info("connected to nats", "url", nc.ConnectedUrlRedacted())
	return &NATSBroadcaster{
		conn:   nc,
		prefix: prefix,
		logger: logger.With("component", "nats_broadcaster"),
	}, nil
}

func (b *NATSBroadcaster) Broadcast(_ context.Context, event events.Event) {
	if b.conn == nil || !b.conn.IsConnected() {
		b.logger.Warn("nats connection is not established, event dropped", "event", event.Name)
		return
	}

	data, err := events.Encode(event)
	if err != nil {
		b.logger.Error("failed to encode event", "event", event.Name, "error", err)
		return
	}

	subject := eventSubject(b.prefix, event.Name)
	if err := b.conn.Publish(subject, data); err != nil {
		b.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

// Close flushes buffered publishes before closing the connection.
func (b *NATSBroadcaster) Close() {
	if b.conn == nil {
		return
	}
	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
	}
}

func eventSubject(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
