package services

import (
	"context"
	"fmt"

	"catalog-service/internal/application/command"
	"catalog-service/internal/application/interfaces"
	"catalog-service/internal/application/mapper"
	"catalog-service/internal/application/query"
	"catalog-service/internal/application/validation"
	"catalog-service/internal/domain/entities"
	"catalog-service/internal/domain/events"
	"catalog-service/internal/domain/repositories"
	"catalog-service/internal/infrastructure/logging"
)

type ProductService struct {
	productRepo repositories.ProductRepository
	broadcaster interfaces.EventBroadcaster
	logger      *logging.Logger
}

func NewProductService(
	productRepo repositories.ProductRepository,
	broadcaster interfaces.EventBroadcaster,
	logger *logging.Logger,
) interfaces.ProductService {
	return &ProductService{
		productRepo: productRepo,
		broadcaster: broadcaster,
		logger:      logger.With("component", "product_service"),
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, createCommand *command.CreateProductCommand) (*command.CreateProductCommandResult, error) {
	validated, err := s.validate(createCommand.Input)
	if err != nil {
		return nil, err
	}

	created, err := s.productRepo.Create(ctx, validated)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	result := command.CreateProductCommandResult{
		Result: mapper.NewProductResultFromEntity(created),
	}
	s.broadcaster.Broadcast(ctx, events.Event{Name: events.ProductCreated, Payload: result.Result})
	s.logger.Info("product created", "product_id", created.Id)

	return &result, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, updateCommand *command.UpdateProductCommand) (*command.UpdateProductCommandResult, error) {
	validated, err := s.validate(updateCommand.Input)
	if err != nil {
		return nil, err
	}

	updated, err := s.productRepo.Update(ctx, updateCommand.Id, validated)
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", updateCommand.Id, err)
	}

	result := command.UpdateProductCommandResult{
		Result: mapper.NewProductResultFromEntity(updated),
	}
	s.broadcaster.Broadcast(ctx, events.Event{Name: events.ProductUpdated, Payload: result.Result})
	s.logger.Info("product updated", "product_id", updated.Id)

	return &result, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, deleteCommand *command.DeleteProductCommand) (*command.DeleteProductCommandResult, error) {
	deleted, err := s.productRepo.Delete(ctx, deleteCommand.Id)
	if err != nil {
		return nil, fmt.Errorf("delete product %d: %w", deleteCommand.Id, err)
	}

	result := command.DeleteProductCommandResult{
		Result: mapper.NewProductResultFromEntity(deleted),
	}
	s.broadcaster.Broadcast(ctx, events.Event{Name: events.ProductDeleted, Payload: events.DeletedPayload{Id: deleted.Id}})
	s.logger.Info("product deleted", "product_id", deleted.Id)

	return &result, nil
}

func (s *ProductService) FindProductById(ctx context.Context, id uint) (*query.ProductQueryResult, error) {
	product, err := s.productRepo.FindById(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product %d: %w", id, err)
	}

	return &query.ProductQueryResult{
		Result: mapper.NewProductResultFromEntity(product),
	}, nil
}

func (s *ProductService) ListProducts(ctx context.Context, listQuery *query.ListProductsQuery) (*query.ProductQueryListResult, error) {
	page := repositories.NewPagination(listQuery.Page, listQuery.Limit)
	filter := repositories.ProductFilter{
		Search:   listQuery.Search,
		Category: listQuery.Category,
	}

	products, total, err := s.productRepo.List(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return &query.ProductQueryListResult{
		Result:     mapper.NewProductResultsFromEntities(products),
		Pagination: mapper.NewPaginationResult(page.Info(total)),
	}, nil
}

func (s *ProductService) validate(input command.ProductInput) (*entities.ValidatedProduct, error) {
	in, err := validation.ValidateProduct(input)
	if err != nil {
		return nil, err
	}
	return entities.NewValidatedProduct(entities.NewProduct(in.Name, *in.Qty, *in.Price, in.Category))
}
