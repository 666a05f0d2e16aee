package rest

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"catalog-service/internal/application/command"
	"catalog-service/internal/application/interfaces"
	"catalog-service/internal/application/query"
	"catalog-service/internal/domain"
)

type ProductHandler struct {
	productService interfaces.ProductService
}

func NewProductHandler(productService interfaces.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) Create(c echo.Context) error {
	var input command.ProductInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	result, err := h.productService.CreateProduct(c.Request().Context(), &command.CreateProductCommand{Input: input})
	if err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusCreated, "Product created successfully", result.Result)
}

func (h *ProductHandler) List(c echo.Context) error {
	listQuery := query.ListProductsQuery{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	}

	result, err := h.productService.ListProducts(c.Request().Context(), &listQuery)
	if err != nil {
		return err
	}
	if len(result.Result) == 0 {
		return sendJSONError(c, http.StatusNotFound, "No products found")
	}

	return c.JSON(http.StatusOK, Response{
		Error:      false,
		Message:    "Products retrieved successfully",
		Data:       result.Result,
		Pagination: result.Pagination,
	})
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	result, err := h.productService.FindProductById(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusOK, "Product retrieved successfully", result.Result)
}

func (h *ProductHandler) Update(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	var input command.ProductInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	result, err := h.productService.UpdateProduct(c.Request().Context(), &command.UpdateProductCommand{Id: id, Input: input})
	if err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusOK, "Product updated successfully", result.Result)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	result, err := h.productService.DeleteProduct(c.Request().Context(), &command.DeleteProductCommand{Id: id})
	if err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusOK, "Product deleted successfully", result.Result)
}

func productID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, strconv.IntSize)
	if err != nil {
		return 0, domain.NewValidationError("id", "Invalid product ID")
	}
	return uint(id), nil
}

// queryInt returns 0 for a missing or malformed value so pagination falls
// back to its defaults.
func queryInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return n
}
