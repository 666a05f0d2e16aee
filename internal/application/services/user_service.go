package services

import (
	"context"
	"errors"
	"fmt"

	"catalog-service/internal/application/command"
	"catalog-service/internal/application/interfaces"
	"catalog-service/internal/application/mapper"
	"catalog-service/internal/application/validation"
	"catalog-service/internal/domain"
	"catalog-service/internal/domain/entities"
	"catalog-service/internal/domain/repositories"
	"catalog-service/internal/infrastructure"
	"catalog-service/internal/infrastructure/logging"
)

type UserService struct {
	userRepo   repositories.UserRepository
	jwtService *infrastructure.JWTService
	logger     *logging.Logger
}

func NewUserService(
	userRepo repositories.UserRepository,
	jwtService *infrastructure.JWTService,
	logger *logging.Logger,
) interfaces.UserService {
	return &UserService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger.With("component", "user_service"),
	}
}

func (s *UserService) CreateUser(ctx context.Context, createCommand *command.CreateUserCommand) (*command.CreateUserCommandResult, error) {
	in, err := validation.ValidateUser(*createCommand)
	if err != nil {
		return nil, err
	}

	// Check if user already exists
	_, err = s.userRepo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, errEmailTaken()
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	validatedUser, err := entities.NewValidatedUser(entities.NewUser(in.Name, in.Email))
	if err != nil {
		return nil, err
	}

	createdUser, err := s.userRepo.Create(ctx, validatedUser)
	if err != nil {
		// A concurrent signup can pass the lookup above and lose on the unique index.
		if errors.Is(err, domain.ErrConflict) {
			return nil, errEmailTaken()
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.logger.Info("user created", "user_id", createdUser.Id)

	return &command.CreateUserCommandResult{
		Result: mapper.NewUserResultFromEntity(createdUser),
	}, nil
}

func errEmailTaken() *domain.ValidationError {
	return domain.NewValidationError("email", `"email" already exists`)
}

func (s *UserService) IssueTokens(ctx context.Context, issueCommand *command.IssueTokensCommand) (*command.TokensCommandResult, error) {
	user, err := s.userRepo.FindByUUID(ctx, issueCommand.UUID)
	if err != nil {
		return nil, fmt.Errorf("find user by uuid: %w", err)
	}

	return s.issue(user)
}

// RefreshTokens re-reads the user named by a valid refresh token and mints a
// new pair. The token is not bound to the grant that produced it.
func (s *UserService) RefreshTokens(ctx context.Context, refreshCommand *command.RefreshTokensCommand) (*command.TokensCommandResult, error) {
	if !s.jwtService.VerifyRefresh(refreshCommand.RefreshToken) {
		return nil, fmt.Errorf("%w: invalid refresh token", domain.ErrUnauthorized)
	}

	claims, err := s.jwtService.Decode(refreshCommand.RefreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindById(ctx, claims.Id)
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}

	return s.issue(user)
}

func (s *UserService) issue(user *entities.User) (*command.TokensCommandResult, error) {
	pair, err := s.jwtService.Issue(user)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("tokens issued", "user_id", user.Id)

	return &command.TokensCommandResult{
		User:         mapper.NewMaskedUserResultFromEntity(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}
