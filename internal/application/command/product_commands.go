package command

import "catalog-service/internal/application/common"

// ProductInput is the body accepted by create and update.
type ProductInput struct {
	Name     string   `json:"name" validate:"required"`
	Qty      *int     `json:"qty" validate:"required"`
	Price    *float64 `json:"price" validate:"required"`
	Category *string  `json:"category"`
}

type CreateProductCommand struct {
	Input ProductInput
}

type CreateProductCommandResult struct {
	Result *common.ProductResult `json:"result"`
}

// UpdateProductCommand replaces every field of an existing product.
type UpdateProductCommand struct {
	Id    uint
	Input ProductInput
}

type UpdateProductCommandResult struct {
	Result *common.ProductResult `json:"result"`
}

type DeleteProductCommand struct {
	Id uint
}

type DeleteProductCommandResult struct {
	Result *common.ProductResult `json:"result"`
}
