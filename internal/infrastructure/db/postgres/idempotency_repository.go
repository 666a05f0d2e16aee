package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"catalog-service/internal/domain"
	"catalog-service/internal/domain/entities"
	"catalog-service/internal/domain/repositories"
)

type IdempotencyRepository struct {
	db *gorm.DB
}

func NewIdempotencyRepository(db *gorm.DB) repositories.IdempotencyRepository {
	return &IdempotencyRepository{db: db}
}

func (r *IdempotencyRepository) Find(ctx context.Context, key string) (*entities.IdempotentResponse, error) {
	var record IdempotencyRecord
	if err := r.db.WithContext(ctx).Where("idempotency_key = ?", key).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Idempotency record")
		}
		return nil, err
	}

	return &entities.IdempotentResponse{
		Key:         record.Key,
		Fingerprint: record.Fingerprint,
		StatusCode:  record.StatusCode,
		Body:        []byte(record.Response),
		CreatedAt:   record.CreatedAt,
	}, nil
}

// Reserve relies on the unique index on idempotency_key, so two concurrent
// requests cannot both claim the same key.
func (r *IdempotencyRepository) Reserve(ctx context.Context, key, fingerprint string) error {
	record := IdempotencyRecord{
		Id:          uuid.New(),
		Key:         key,
		Fingerprint: fingerprint,
		CreatedAt:   time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *IdempotencyRepository) Complete(ctx context.Context, key string, statusCode int, body []byte) error {
	result := r.db.WithContext(ctx).
		Model(&IdempotencyRecord{}).
		Where("idempotency_key = ?", key).
		Updates(map[string]any{"status_code": statusCode, "response": string(body)})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Idempotency record")
	}
	return nil
}

func (r *IdempotencyRepository) Release(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("idempotency_key = ? AND status_code = ?", key, 0).
		Delete(&IdempotencyRecord{}).Error
}
