package repositories

import (
	"context"

	"catalog-service/internal/domain/entities"
)

// ProductFilter narrows a product listing. Empty fields do not filter.
type ProductFilter struct {
	Search   string
	Category string
}

type ProductRepository interface {
	Create(ctx context.Context, product *entities.ValidatedProduct) (*entities.Product, error)
	FindById(ctx context.Context, id uint) (*entities.Product, error)
	List(ctx context.Context, filter ProductFilter, page Pagination) ([]*entities.Product, int64, error)
	Update(ctx context.Context, id uint, product *entities.ValidatedProduct) (*entities.Product, error)
	Delete(ctx context.Context, id uint) (*entities.Product, error)
}
