// Package server assembles the catalog service from its configuration and
// runs it until the context is cancelled.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"catalog-service/internal/application/interfaces"
	"catalog-service/internal/application/services"
	"catalog-service/internal/config"
	"catalog-service/internal/delivery/messaging"
	"catalog-service/internal/delivery/rest"
	"catalog-service/internal/infrastructure"
	"catalog-service/internal/infrastructure/db/postgres"
	"catalog-service/internal/infrastructure/logging"
)

const rateLimiterSweepInterval = time.Minute

type Server struct {
	cfg     *config.Config
	logger  *logging.Logger
	db      *gorm.DB
	hub     *messaging.Hub
	limiter *infrastructure.RateLimiter
	echo    *echo.Echo

	closeOnce sync.Once
	closers   []func()
}

// New opens the store, runs the migration and wires every component. The
// caller owns the returned server and must Close it.
func New(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*Server, error) {
	db, err := OpenDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		hub:     messaging.NewHub(messaging.HubConfig{PingInterval: cfg.WSPingInterval, SendBuffer: cfg.WSSendBuffer}, logger),
		limiter: infrastructure.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}

	broadcaster := s.buildBroadcaster(ctx)
	jwtService := NewJWTService(cfg)

	userService := services.NewUserService(postgres.NewUserRepository(db), jwtService, logger)
	productService := services.NewProductService(postgres.NewProductRepository(db), broadcaster, logger)

	s.echo = rest.NewRouter(rest.RouterConfig{
		ProductService: productService,
		UserService:    userService,
		JWTService:     jwtService,
		RateLimiter:    s.limiter,
		Idempotency:    postgres.NewIdempotencyRepository(db),
		Events:         s.hub,
		HealthCheck:    func(ctx context.Context) error { return postgres.Ping(ctx, db) },
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:         logger,
	})
	s.echo.StdLogger = logger.StdLogger(slog.LevelError)

	return s, nil
}

// OpenDatabase connects to the configured store and brings the schema up to date.
func OpenDatabase(cfg *config.Config, logger *logging.Logger) (*gorm.DB, error) {
	db, err := postgres.Open(cfg.DatabaseDriver, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(db); err != nil {
		_ = postgres.Close(db)
		return nil, err
	}
	return db, nil
}

func NewJWTService(cfg *config.Config) *infrastructure.JWTService {
	return infrastructure.NewJWTService(infrastructure.JWTConfig{
		AccessSecret:  cfg.AccessTokenSecret,
		RefreshSecret: cfg.RefreshTokenSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	})
}

// buildBroadcaster always includes the websocket hub. The NATS, Redis and MQTT
// bridges and the InfluxDB stock history are added when configured; one that
// cannot connect is skipped.
func (s *Server) buildBroadcaster(ctx context.Context) interfaces.EventBroadcaster {
	fanout := infrastructure.NewFanoutBroadcaster(s.hub)

	if s.cfg.NATSURL != "" {
		nb, err := infrastructure.NewNATSBroadcaster(s.cfg.NATSURL, s.cfg.NATSSubjectPrefix, s.logger)
		if err != nil {
			s.logger.Warn("nats bridge disabled", "error", err)
		} else {
			fanout.Add(nb)
			s.closers = append(s.closers, nb.Close)
		}
	}

	if s.cfg.RedisURL != "" {
		rb, err := infrastructure.NewRedisBroadcaster(ctx, s.cfg.RedisURL, s.cfg.RedisChannel, s.logger)
		if err != nil {
			s.logger.Warn("redis bridge disabled", "error", err)
		} else {
			fanout.Add(rb)
			s.closers = append(s.closers, func() { _ = rb.Close() })
		}
	}

	if s.cfg.MQTTBrokerURL != "" {
		mb, err := infrastructure.NewMQTTBroadcaster(s.cfg.MQTTBrokerURL, s.cfg.MQTTTopicPrefix, s.cfg.MQTTClientID, s.logger)
		if err != nil {
			s.logger.Warn("mqtt bridge disabled", "error", err)
		} else {
			fanout.Add(mb)
			s.closers = append(s.closers, mb.Close)
		}
	}

	if s.cfg.InfluxURL != "" {
		recorder, err := infrastructure.NewStockHistoryRecorder(ctx, infrastructure.InfluxConfig{
			URL:    s.cfg.InfluxURL,
			Token:  s.cfg.InfluxToken,
			Org:    s.cfg.InfluxOrg,
			Bucket: s.cfg.InfluxBucket,
		}, s.logger)
		if err != nil {
			s.logger.Warn("stock history disabled", "error", err)
		} else {
			fanout.Add(recorder)
			s.closers = append(s.closers, recorder.Close)
		}
	}

	return fanout
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests
// within the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	limiterCtx, stopLimiter := context.WithCancel(ctx)
	defer stopLimiter()
	go s.limiter.Run(limiterCtx, rateLimiterSweepInterval)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.cfg.HTTPAddr)
		errCh <- s.echo.Start(s.cfg.HTTPAddr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.cfg.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.hub.Close()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// Close releases the bridges and the store. It is safe to call more than once.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		s.hub.Close()
		for _, closeFn := range s.closers {
			closeFn()
		}
		if err := postgres.Close(s.db); err != nil {
			s.logger.Warn("failed to close database", "error", err)
		}
	})
}
