package mapper

import (
	"catalog-service/internal/application/common"
	"catalog-service/internal/domain/entities"
)

func NewUserResultFromEntity(user *entities.User) *common.UserResult {
	return &common.UserResult{
		Id:        user.Id,
		UUID:      user.UUID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewMaskedUserResultFromEntity hides the real uuid.
func NewMaskedUserResultFromEntity(user *entities.User) *common.UserResult {
	return NewUserResultFromEntity(user.Masked())
}
