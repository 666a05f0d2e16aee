package infrastructure

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/application/common"
	"catalog-service/internal/domain/events"
	"catalog-service/internal/infrastructure/logging"
)

type countingBroadcaster struct {
	names []string
}

func (c *countingBroadcaster) Broadcast(_ context.Context, event events.Event) {
	c.names = append(c.names, event.Name)
}

func TestFanoutBroadcaster(t *testing.T) {
	first := &countingBroadcaster{}
	second := &countingBroadcaster{}

	fanout := NewFanoutBroadcaster(first)
	fanout.Add(second)
	fanout.Broadcast(context.Background(), events.Event{Name: events.ProductCreated})
	fanout.Broadcast(context.Background(), events.Event{Name: events.ProductDeleted})

	assert.Equal(t, []string{events.ProductCreated, events.ProductDeleted}, first.names)
	assert.Equal(t, first.names, second.names)

	NewFanoutBroadcaster().Broadcast(context.Background(), events.Event{Name: events.ProductUpdated})
}

func TestEventSubject(t *testing.T) {
	assert.Equal(t, "catalog.products.productCreated", eventSubject("catalog.products", events.ProductCreated))
	assert.Equal(t, "productDeleted", eventSubject("", events.ProductDeleted))
}

func TestNATSBroadcaster_DisconnectedDropsEvent(t *testing.T) {
	b := &NATSBroadcaster{prefix: "catalog", logger: logging.Discard()}

	b.Broadcast(context.Background(), events.Event{Name: events.ProductCreated, Payload: 1})
	b.Close()
}

func TestNewRedisBroadcaster_BadURL(t *testing.T) {
	_, err := NewRedisBroadcaster(context.Background(), "not a url", "catalog:events", logging.Discard())
	require.Error(t, err)
}

func TestEncode(t *testing.T) {
	data, err := events.Encode(events.Event{Name: events.ProductDeleted, Payload: events.DeletedPayload{Id: 3}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"productDeleted","data":{"id":3}}`, string(data))
}

func TestEventTopic(t *testing.T) {
	assert.Equal(t, "catalog/products/productUpdated", eventTopic("catalog/products", events.ProductUpdated))
	assert.Equal(t, "productCreated", eventTopic("", events.ProductCreated))
}

func TestNewMQTTBroadcaster_Unreachable(t *testing.T) {
	_, err := NewMQTTBroadcaster("tcp://127.0.0.1:1", "catalog/products", "catalog-test", logging.Discard())
	require.Error(t, err)
}

func TestStockPoint(t *testing.T) {
	at := time.Unix(1700000000, 0)
	category := "office"

	point := stockPoint(events.Event{
		Name:    events.ProductUpdated,
		Payload: &common.ProductResult{Id: 7, Name: "Pen", Qty: 90, Price: 1.5, Category: &category},
	}, at)
	require.NotNil(t, point)
	line := write.PointToLineProtocol(point, time.Second)
	assert.True(t, strings.HasPrefix(line, "product_stock,category=office,event=productUpdated,product_id=7 "), line)
	assert.Contains(t, line, "qty=90i")
	assert.Contains(t, line, "price=1.5")
	assert.Contains(t, line, " 1700000000")

	point = stockPoint(events.Event{Name: events.ProductDeleted, Payload: events.DeletedPayload{Id: 7}}, at)
	require.NotNil(t, point)
	line = write.PointToLineProtocol(point, time.Second)
	assert.Contains(t, line, "event=productDeleted,product_id=7 qty=0i")

	assert.Nil(t, stockPoint(events.Event{Name: "other", Payload: "x"}, at))
}
