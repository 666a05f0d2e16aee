package postgres

import (
	"time"

	"github.com/google/uuid"
)

type IdempotencyRecord struct {
	Id          uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	Key         string    `gorm:"column:idempotency_key;uniqueIndex;not null"`
	Fingerprint string    `gorm:"not null"`
	StatusCode  int
	Response    string
	CreatedAt   time.Time
}

func (IdempotencyRecord) TableName() string {
	return "idempotency_records"
}
