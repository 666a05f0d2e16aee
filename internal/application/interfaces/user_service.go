package interfaces

import (
	"context"

	"catalog-service/internal/application/command"
)

type UserService interface {
	CreateUser(ctx context.Context, createCommand *command.CreateUserCommand) (*command.CreateUserCommandResult, error)
	IssueTokens(ctx context.Context, issueCommand *command.IssueTokensCommand) (*command.TokensCommandResult, error)
	RefreshTokens(ctx context.Context, refreshCommand *command.RefreshTokensCommand) (*command.TokensCommandResult, error)
}
