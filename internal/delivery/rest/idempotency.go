package rest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"catalog-service/internal/domain"
	"catalog-service/internal/domain/entities"
	"catalog-service/internal/domain/repositories"
	"catalog-service/internal/infrastructure/logging"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"
	maxIdempotencyKeyLen = 255
)

// Idempotency replays the stored response when a client retries a request
// with an Idempotency-Key it already used. Keys are scoped to the
// authenticated user. A key is reserved before the handler runs, so a retry
// that arrives while the first attempt is still running gets 409 instead of
// executing twice. Only successful responses are kept; a failed attempt
// releases the key so it can be retried.
func Idempotency(repo repositories.IdempotencyRepository, logger *logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			clientKey := c.Request().Header.Get(HeaderIdempotencyKey)
			if clientKey == "" {
				return next(c)
			}
			if len(clientKey) > maxIdempotencyKeyLen {
				return domain.NewValidationError("Idempotency-Key", "Idempotency-Key is too long")
			}

			ctx := c.Request().Context()
			key := scopedKey(c, clientKey)
			fingerprint := c.Request().Method + " " + c.Path()

			stored, err := repo.Find(ctx, key)
			switch {
			case err == nil:
				return replay(c, stored, fingerprint)
			case !errors.Is(err, domain.ErrNotFound):
				return fmt.Errorf("find idempotency record: %w", err)
			}

			if err := repo.Reserve(ctx, key, fingerprint); err != nil {
				if !errors.Is(err, domain.ErrConflict) {
					return fmt.Errorf("reserve idempotency key: %w", err)
				}
				stored, err := repo.Find(ctx, key)
				if err != nil {
					if errors.Is(err, domain.ErrNotFound) {
						// The other attempt failed and released the key in between.
						return errInProgress
					}
					return fmt.Errorf("find idempotency record: %w", err)
				}
				return replay(c, stored, fingerprint)
			}

			completed := false
			defer func() {
				if completed {
					return
				}
				if err := repo.Release(context.WithoutCancel(ctx), key); err != nil {
					logger.Warn("failed to release idempotency key", "key", key, "error", err)
				}
			}()

			recorder := &bodyRecorder{ResponseWriter: c.Response().Writer}
			c.Response().Writer = recorder
			defer func() { c.Response().Writer = recorder.ResponseWriter }()

			if err := next(c); err != nil {
				return err
			}

			status := c.Response().Status
			if status < http.StatusOK || status >= http.StatusMultipleChoices {
				return nil
			}
			if err := repo.Complete(ctx, key, status, recorder.body.Bytes()); err != nil {
				logger.Warn("failed to store idempotent response", "key", key, "error", err)
				return nil
			}
			completed = true
			return nil
		}
	}
}

var errInProgress = echo.NewHTTPError(http.StatusConflict, "A request with this Idempotency-Key is still in progress")

func replay(c echo.Context, stored *entities.IdempotentResponse, fingerprint string) error {
	if stored.Fingerprint != fingerprint {
		return domain.NewValidationError("Idempotency-Key", "Idempotency-Key was already used for a different request")
	}
	if stored.Pending() {
		return errInProgress
	}
	c.Response().Header().Set(HeaderReplayed, "true")
	return c.Blob(stored.StatusCode, echo.MIMEApplicationJSONCharsetUTF8, stored.Body)
}

func scopedKey(c echo.Context, clientKey string) string {
	if claims, ok := UserFromContext(c); ok {
		return strconv.FormatUint(uint64(claims.Id), 10) + ":" + clientKey
	}
	return "anonymous:" + clientKey
}

type bodyRecorder struct {
	http.ResponseWriter
	body bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
