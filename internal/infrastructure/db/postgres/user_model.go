package postgres

import (
	"time"
)

type UserModel struct {
	Id        uint   `gorm:"primaryKey"`
	UUID      string `gorm:"column:uuid;type:varchar(36);uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string `gorm:"not null"`
	Email     string `gorm:"uniqueIndex;not null"`
}

func (UserModel) TableName() string {
	return "users"
}
