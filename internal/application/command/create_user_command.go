package command

import "catalog-service/internal/application/common"

type CreateUserCommand struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type CreateUserCommandResult struct {
	Result *common.UserResult `json:"result"`
}
