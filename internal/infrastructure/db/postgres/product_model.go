package postgres

import (
	"time"
)

type ProductModel struct {
	Id        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string  `gorm:"not null"`
	Qty       int     `gorm:"not null"`
	Price     float64 `gorm:"not null"`
	Category  *string `gorm:"index"`
}

func (ProductModel) TableName() string {
	return "products"
}
