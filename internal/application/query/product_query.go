package query

import "catalog-service/internal/application/common"

type ListProductsQuery struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

type ProductQueryResult struct {
	Result *common.ProductResult `json:"result"`
}

type ProductQueryListResult struct {
	Result     []*common.ProductResult  `json:"result"`
	Pagination *common.PaginationResult `json:"pagination"`
}
