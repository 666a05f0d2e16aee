package infrastructure

import (
	"context"
	"fmt"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"catalog-service/internal/application/common"
	"catalog-service/internal/domain/events"
	"catalog-service/internal/infrastructure/logging"
)

const (
	stockMeasurement  = "product_stock"
	influxPingTimeout = 5 * time.Second
)

type InfluxConfig struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

// StockHistoryRecorder writes one InfluxDB point per product event so stock
// and price changes can be charted over time. Writes are batched and
// non-blocking; failures surface on the logger.
type StockHistoryRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPI
	logger   *logging.Logger
	now      func() time.Time
}

func NewStockHistoryRecorder(ctx context.Context, cfg InfluxConfig, logger *logging.Logger) (*StockHistoryRecorder, error) {
	client := influxdb2.NewClient(cfg.URL, cfg.Token)

	pingCtx, cancel := context.WithTimeout(ctx, influxPingTimeout)
	defer cancel()
	healthy, err := client.Ping(pingCtx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("ping influxdb: %w", err)
	}
	if !healthy {
		client.Close()
		return nil, fmt.Errorf("ping influxdb: server not healthy")
	}

	r := &StockHistoryRecorder{
		client:   client,
		writeAPI: client.WriteAPI(cfg.Org, cfg.Bucket),
		logger:   logger.With("component", "stock_history"),
		now:      time.Now,
	}
	go r.logWriteErrors(r.writeAPI.Errors())

	logger.Info("connected to influxdb", "url", cfg.URL, "bucket", cfg.Bucket)
	return r, nil
}

func (r *StockHistoryRecorder) Broadcast(_ context.Context, event events.Event) {
	point := stockPoint(event, r.now())
	if point == nil {
		r.logger.Debug("event has no stock data", "event", event.Name)
		return
	}
	r.writeAPI.WritePoint(point)
}

// Close flushes pending points.
func (r *StockHistoryRecorder) Close() {
	r.writeAPI.Flush()
	r.client.Close()
}

func (r *StockHistoryRecorder) logWriteErrors(errs <-chan error) {
	for err := range errs {
		r.logger.Warn("influxdb write failed", "error", err)
	}
}

func stockPoint(event events.Event, at time.Time) *write.Point {
	switch payload := event.Payload.(type) {
	case *common.ProductResult:
		tags := map[string]string{
			"product_id": strconv.FormatUint(uint64(payload.Id), 10),
			"event":      event.Name,
		}
		if payload.Category != nil && *payload.Category != "" {
			tags["category"] = *payload.Category
		}
		return write.NewPoint(stockMeasurement, tags, map[string]interface{}{
			"qty":   payload.Qty,
			"price": payload.Price,
		}, at)
	case events.DeletedPayload:
		return write.NewPoint(stockMeasurement, map[string]string{
			"product_id": strconv.FormatUint(uint64(payload.Id), 10),
			"event":      event.Name,
		}, map[string]interface{}{
			"qty": 0,
		}, at)
	default:
		return nil
	}
}
