package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/domain"
	"catalog-service/internal/infrastructure/db/dbtest"
	"catalog-service/internal/infrastructure/db/postgres"
)

func TestIdempotencyRepository(t *testing.T) {
	repo := postgres.NewIdempotencyRepository(dbtest.New(t))
	ctx := context.Background()

	_, err := repo.Find(ctx, "7:abc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, repo.Reserve(ctx, "7:abc", "POST /products"))

	pending, err := repo.Find(ctx, "7:abc")
	require.NoError(t, err)
	assert.True(t, pending.Pending())
	assert.Equal(t, "POST /products", pending.Fingerprint)

	assert.ErrorIs(t, repo.Reserve(ctx, "7:abc", "POST /products"), domain.ErrConflict)

	require.NoError(t, repo.Complete(ctx, "7:abc", 201, []byte(`{"error":false}`)))

	found, err := repo.Find(ctx, "7:abc")
	require.NoError(t, err)
	assert.False(t, found.Pending())
	assert.Equal(t, 201, found.StatusCode)
	assert.JSONEq(t, `{"error":false}`, string(found.Body))

	require.NoError(t, repo.Release(ctx, "7:abc"))
	_, err = repo.Find(ctx, "7:abc")
	assert.NoError(t, err, "completed records survive release")
}

func TestIdempotencyRepository_ReleaseFreesKey(t *testing.T) {
	repo := postgres.NewIdempotencyRepository(dbtest.New(t))
	ctx := context.Background()

	require.NoError(t, repo.Reserve(ctx, "anonymous:k", "POST /users"))
	require.NoError(t, repo.Release(ctx, "anonymous:k"))

	_, err := repo.Find(ctx, "anonymous:k")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, repo.Reserve(ctx, "anonymous:k", "POST /users"))
}

func TestIdempotencyRepository_CompleteUnknownKey(t *testing.T) {
	repo := postgres.NewIdempotencyRepository(dbtest.New(t))

	err := repo.Complete(context.Background(), "9:missing", 201, []byte(`{}`))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
