package entities

import (
	"errors"
	"time"
)

type Product struct {
	Id        uint
	Name      string
	Qty       int
	Price     float64
	Category  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewProduct(name string, qty int, price float64, category *string) *Product {
	now := time.Now()
	return &Product{
		Name:      name,
		Qty:       qty,
		Price:     price,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (p *Product) validate() error {
	if p.Name == "" {
		return errors.New("name must not be empty")
	}
	if p.CreatedAt.After(p.UpdatedAt) {
		return errors.New("created_at must be before updated_at")
	}
	return nil
}

// Replace overwrites every mutable field. The id and creation time are kept.
func (p *Product) Replace(name string, qty int, price float64, category *string) error {
	p.Name = name
	p.Qty = qty
	p.Price = price
	p.Category = category
	p.UpdatedAt = time.Now()
	return p.validate()
}
