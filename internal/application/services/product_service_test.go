package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/application/command"
	"catalog-service/internal/application/common"
	"catalog-service/internal/application/query"
	"catalog-service/internal/domain"
	"catalog-service/internal/domain/events"
	"catalog-service/internal/infrastructure/db/dbtest"
	"catalog-service/internal/infrastructure/db/postgres"
	"catalog-service/internal/infrastructure/logging"
)

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingBroadcaster) Broadcast(_ context.Context, event events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingBroadcaster) Events() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.events...)
}

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func newProductService(t *testing.T) (*ProductService, *recordingBroadcaster) {
	t.Helper()
	rec := &recordingBroadcaster{}
	svc := NewProductService(postgres.NewProductRepository(dbtest.New(t)), rec, logging.Discard())
	return svc.(*ProductService), rec
}

func penInput() command.ProductInput {
	return command.ProductInput{Name: "Pen", Qty: intPtr(100), Price: floatPtr(1.5)}
}

func TestCreateProduct_EmitsOneEvent(t *testing.T) {
	svc, rec := newProductService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, &command.CreateProductCommand{Input: penInput()})
	require.NoError(t, err)
	require.NotZero(t, created.Result.Id)

	got := rec.Events()
	require.Len(t, got, 1)
	assert.Equal(t, events.ProductCreated, got[0].Name)
	payload, ok := got[0].Payload.(*common.ProductResult)
	require.True(t, ok)
	assert.Equal(t, created.Result.Id, payload.Id)
	assert.Equal(t, "Pen", payload.Name)
	assert.Equal(t, 100, payload.Qty)
	assert.Equal(t, 1.5, payload.Price)
}

func TestCreateThenFind_RoundTrip(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	in := penInput()
	in.Category = strPtr(" office ")
	created, err := svc.CreateProduct(ctx, &command.CreateProductCommand{Input: in})
	require.NoError(t, err)

	found, err := svc.FindProductById(ctx, created.Result.Id)
	require.NoError(t, err)
	assert.Equal(t, "Pen", found.Result.Name)
	assert.Equal(t, 100, found.Result.Qty)
	assert.Equal(t, 1.5, found.Result.Price)
	require.NotNil(t, found.Result.Category)
	assert.Equal(t, "office", *found.Result.Category)
}

func TestCreateProduct_InvalidEmitsNothing(t *testing.T) {
	svc, rec := newProductService(t)

	_, err := svc.CreateProduct(context.Background(), &command.CreateProductCommand{
		Input: command.ProductInput{Name: " ", Qty: intPtr(1), Price: floatPtr(1)},
	})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, rec.Events())
}

func TestUpdateProduct(t *testing.T) {
	svc, rec := newProductService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, &command.CreateProductCommand{Input: penInput()})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, &command.UpdateProductCommand{
		Id:    created.Result.Id,
		Input: command.ProductInput{Name: "Marker", Qty: intPtr(3), Price: floatPtr(2)},
	})
	require.NoError(t, err)
	assert.Equal(t, created.Result.Id, updated.Result.Id)
	assert.Equal(t, "Marker", updated.Result.Name)

	got := rec.Events()
	require.Len(t, got, 2)
	assert.Equal(t, events.ProductUpdated, got[1].Name)

	_, err = svc.UpdateProduct(ctx, &command.UpdateProductCommand{Id: 999, Input: penInput()})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, rec.Events(), 2)
}

func TestDeleteProduct(t *testing.T) {
	svc, rec := newProductService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, &command.CreateProductCommand{Input: penInput()})
	require.NoError(t, err)

	deleted, err := svc.DeleteProduct(ctx, &command.DeleteProductCommand{Id: created.Result.Id})
	require.NoError(t, err)
	assert.Equal(t, "Pen", deleted.Result.Name)

	got := rec.Events()
	require.Len(t, got, 2)
	assert.Equal(t, events.ProductDeleted, got[1].Name)
	assert.Equal(t, events.DeletedPayload{Id: created.Result.Id}, got[1].Payload)

	_, err = svc.FindProductById(ctx, created.Result.Id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteMissingProduct_NoEvent(t *testing.T) {
	svc, rec := newProductService(t)

	_, err := svc.DeleteProduct(context.Background(), &command.DeleteProductCommand{Id: 12345})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, rec.Events())
}

func TestListProducts(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		_, err := svc.CreateProduct(ctx, &command.CreateProductCommand{Input: penInput()})
		require.NoError(t, err)
	}

	list, err := svc.ListProducts(ctx, &query.ListProductsQuery{Search: "pen", Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, list.Result, 5)
	assert.Equal(t, &common.PaginationResult{
		CurrentPage: 3,
		TotalPages:  3,
		TotalCount:  25,
		HasNext:     false,
		HasPrev:     true,
	}, list.Pagination)

	list, err = svc.ListProducts(ctx, &query.ListProductsQuery{})
	require.NoError(t, err)
	assert.Len(t, list.Result, 10)
	assert.True(t, list.Pagination.HasNext)
}
