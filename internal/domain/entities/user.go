package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MaskedUUID replaces the real uuid in every snapshot that leaves the service.
const MaskedUUID = "xxxxxxxxxxxxx"

type User struct {
	Id        uint
	UUID      string
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewUser(name, email string) *User {
	now := time.Now()
	return &User{
		UUID:      uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (u *User) validate() error {
	if u.UUID == "" {
		return errors.New("uuid must not be empty")
	}
	if u.Name == "" {
		return errors.New("name must not be empty")
	}
	if u.Email == "" {
		return errors.New("email must not be empty")
	}
	if u.CreatedAt.After(u.UpdatedAt) {
		return errors.New("created_at must be before updated_at")
	}
	return nil
}

// Masked returns a copy of the user safe to embed in tokens and responses.
func (u *User) Masked() *User {
	masked := *u
	masked.UUID = MaskedUUID
	return &masked
}
