package repositories

import (
	"context"

	"catalog-service/internal/domain/entities"
)

type UserRepository interface {
	Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error)
	FindById(ctx context.Context, id uint) (*entities.User, error)
	FindByUUID(ctx context.Context, uuid string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
}
