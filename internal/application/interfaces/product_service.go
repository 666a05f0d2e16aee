package interfaces

import (
	"context"

	"catalog-service/internal/application/command"
	"catalog-service/internal/application/query"
)

type ProductService interface {
	CreateProduct(ctx context.Context, createCommand *command.CreateProductCommand) (*command.CreateProductCommandResult, error)
	UpdateProduct(ctx context.Context, updateCommand *command.UpdateProductCommand) (*command.UpdateProductCommandResult, error)
	DeleteProduct(ctx context.Context, deleteCommand *command.DeleteProductCommand) (*command.DeleteProductCommandResult, error)
	FindProductById(ctx context.Context, id uint) (*query.ProductQueryResult, error)
	ListProducts(ctx context.Context, listQuery *query.ListProductsQuery) (*query.ProductQueryListResult, error)
}
