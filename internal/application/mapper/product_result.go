package mapper

import (
	"catalog-service/internal/application/common"
	"catalog-service/internal/domain/entities"
	"catalog-service/internal/domain/repositories"
)

func NewProductResultFromEntity(product *entities.Product) *common.ProductResult {
	return &common.ProductResult{
		Id:        product.Id,
		Name:      product.Name,
		Qty:       product.Qty,
		Price:     product.Price,
		Category:  product.Category,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}

func NewProductResultsFromEntities(products []*entities.Product) []*common.ProductResult {
	results := make([]*common.ProductResult, 0, len(products))
	for _, p := range products {
		results = append(results, NewProductResultFromEntity(p))
	}
	return results
}

func NewPaginationResult(info repositories.PageInfo) *common.PaginationResult {
	return &common.PaginationResult{
		CurrentPage: info.CurrentPage,
		TotalPages:  info.TotalPages,
		TotalCount:  info.TotalCount,
		HasNext:     info.HasNext,
		HasPrev:     info.HasPrev,
	}
}
