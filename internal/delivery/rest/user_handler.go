package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"catalog-service/internal/application/command"
	"catalog-service/internal/application/interfaces"
	"catalog-service/internal/domain"
)

type UserHandler struct {
	userService interfaces.UserService
}

func NewUserHandler(userService interfaces.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Create(c echo.Context) error {
	var createCommand command.CreateUserCommand
	if err := bindJSON(c, &createCommand); err != nil {
		return err
	}

	result, err := h.userService.CreateUser(c.Request().Context(), &createCommand)
	if err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusCreated, "User created successfully", result.Result)
}

func (h *UserHandler) AccessToken(c echo.Context) error {
	result, err := h.userService.IssueTokens(c.Request().Context(), &command.IssueTokensCommand{
		UUID: c.Param("uuid"),
	})
	if err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusOK, "Tokens generated successfully", result)
}

// RefreshToken expects the refresh token as a Bearer credential.
func (h *UserHandler) RefreshToken(c echo.Context) error {
	token, ok := bearerToken(c.Request())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
	}

	result, err := h.userService.RefreshTokens(c.Request().Context(), &command.RefreshTokensCommand{
		RefreshToken: token,
	})
	if errors.Is(err, domain.ErrUnauthorized) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid refresh token").SetInternal(err)
	}
	if err != nil {
		return err
	}
	return sendJSONResponse(c, http.StatusOK, "Tokens refreshed successfully", result)
}
