// Package userrepo persists user accounts.
package userrepo

import (
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/user"
)

// UserDTO is the row of the users table.
type UserDTO struct {
	ID           int64 `gorm:"primaryKey"`
	Name         string
	Email        string
	PasswordHash string
	Role         int
	CreatedAt    time.Time
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:           u.ID().Int64(),
		Name:         u.Name(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		Role:         int(u.Role()),
		CreatedAt:    u.CreatedAt(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	return user.RestoreUser(
		kernel.ID(dto.ID),
		dto.Name,
		dto.Email,
		dto.PasswordHash,
		user.Role(dto.Role),
		dto.CreatedAt,
	)
}
