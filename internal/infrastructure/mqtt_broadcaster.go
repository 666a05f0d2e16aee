package infrastructure

import (
	"context"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"catalog-service/internal/domain/events"
	"catalog-service/internal/infrastructure/logging"
)

const (
	mqttConnectTimeout    = 5 * time.Second
	mqttPublishTimeout    = 2 * time.Second
	mqttDisconnectQuiesce = 250 // milliseconds
)

// MQTTBroadcaster publishes product events to an MQTT broker on topics like
// "<prefix>/productCreated". QoS 0, not retained.
type MQTTBroadcaster struct {
	client pahomqtt.Client
	prefix string
	logger *logging.Logger
}

func NewMQTTBroadcaster(brokerURL, prefix, clientID string, logger *logging.Logger) (*MQTTBroadcaster, error) {
	opts := pahomqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetConnectTimeout(mqttConnectTimeout)

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(mqttConnectTimeout) {
		return nil, fmt.Errorf("connect to mqtt: timeout after %v", mqttConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to mqtt: %w", err)
	}

	logger.Info("connected to mqtt", "broker", brokerURL)
	return &MQTTBroadcaster{
		client: client,
		prefix: prefix,
		logger: logger.With("component", "mqtt_broadcaster"),
	}, nil
}

func (b *MQTTBroadcaster) Broadcast(_ context.Context, event events.Event) {
	if !b.client.IsConnectionOpen() {
		b.logger.Warn("mqtt connection is not open, event dropped", "event", event.Name)
		return
	}

	data, err := events.Encode(event)
	if err != nil {
		b.logger.Error("failed to encode event", "event", event.Name, "error", err)
		return
	}

	topic := eventTopic(b.prefix, event.Name)
	token := b.client.Publish(topic, 0, false, data)
	if !token.WaitTimeout(mqttPublishTimeout) {
		b.logger.Warn("mqtt publish timed out", "topic", topic)
		return
	}
	if err := token.Error(); err != nil {
		b.logger.Warn("failed to publish event", "topic", topic, "error", err)
	}
}

func (b *MQTTBroadcaster) Close() {
	b.client.Disconnect(mqttDisconnectQuiesce)
}

func eventTopic(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
