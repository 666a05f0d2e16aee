package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"catalog-service/internal/application/common"
	"catalog-service/internal/application/validation"
	"catalog-service/internal/domain"
	"catalog-service/internal/infrastructure/logging"
)

// Response is the envelope every endpoint answers with, errors included.
type Response struct {
	Error      bool                     `json:"error"`
	Message    string                   `json:"message"`
	Data       any                      `json:"data"`
	Pagination *common.PaginationResult `json:"pagination,omitempty"`
}

func sendJSONResponse(c echo.Context, statusCode int, message string, data any) error {
	return c.JSON(statusCode, Response{
		Error:   false,
		Message: message,
		Data:    data,
	})
}

func sendJSONError(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, Response{
		Error:   true,
		Message: message,
		Data:    nil,
	})
}

// NewHTTPErrorHandler maps returned errors onto the envelope. Internal failures
// are logged in full and answered with a generic message.
func NewHTTPErrorHandler(logger *logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := classify(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"error", err,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
		}

		if err := sendJSONError(c, status, message); err != nil {
			logger.Warn("failed to write error response", "error", err)
		}
	}
}

func classify(err error) (int, string) {
	var httpErr *echo.HTTPError
	var validationErr *domain.ValidationError
	var notFoundErr *domain.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Message
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, notFoundErr.Error()
	case errors.As(err, &httpErr):
		return httpErr.Code, httpMessage(httpErr)
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Invalid token"
	default:
		return http.StatusInternalServerError, "Unexpected error"
	}
}

func httpMessage(httpErr *echo.HTTPError) string {
	switch {
	case httpErr.Code >= http.StatusInternalServerError:
		return "Unexpected error"
	case httpErr.Code == http.StatusNotFound:
		return "Resource not found"
	case httpErr.Code == http.StatusMethodNotAllowed:
		return "Method not allowed"
	}
	if msg, ok := httpErr.Message.(string); ok && msg != "" {
		return msg
	}
	return http.StatusText(httpErr.Code)
}

// bindJSON decodes the request body into dst, reporting type mismatches and
// unknown keys the same way the validator reports rule failures.
func bindJSON(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return validation.TypeMismatch(typeErr.Field, expectedType(typeErr.Type))
		}
		if field, ok := unknownField(err); ok {
			return validation.NotAllowed(field)
		}
		return domain.NewValidationError("", "Invalid request body")
	}
	return nil
}

// unknownField extracts the key from encoding/json's DisallowUnknownFields
// error, which has no exported type.
func unknownField(err error) (string, bool) {
	const prefix = "json: unknown field "
	for ; err != nil; err = errors.Unwrap(err) {
		quoted, found := strings.CutPrefix(err.Error(), prefix)
		if !found {
			continue
		}
		field, unquoteErr := strconv.Unquote(quoted)
		if unquoteErr != nil {
			return "", false
		}
		return field, true
	}
	return "", false
}

func expectedType(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	default:
		return "a valid value"
	}
}

// strictJSONSerializer rejects body keys that the target struct does not
// declare.
type strictJSONSerializer struct {
	echo.DefaultJSONSerializer
}

func (strictJSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(i)
}
