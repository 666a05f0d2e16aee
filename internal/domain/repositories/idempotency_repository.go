package repositories

import (
	"context"

	"catalog-service/internal/domain/entities"
)

// IdempotencyRepository tracks Idempotency-Keys from the moment a request
// claims one until its response is stored.
type IdempotencyRepository interface {
	// Find returns a *domain.NotFoundError when key has not been seen.
	Find(ctx context.Context, key string) (*entities.IdempotentResponse, error)
	// Reserve claims key with a pending record. It returns domain.ErrConflict
	// when another request already holds the key.
	Reserve(ctx context.Context, key, fingerprint string) error
	// Complete stores the response for a reserved key.
	Complete(ctx context.Context, key string, statusCode int, body []byte) error
	// Release drops a reservation that never completed. Completed records are
	// left alone.
	Release(ctx context.Context, key string) error
}
