// Package applicationrepo persists baker applications.
package applicationrepo

import (
	"time"

	"bakery/internal/core/domain/model/application"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/user"
)

type ApplicationDTO struct {
	ID            int64 `gorm:"primaryKey"`
	UserID        int64
	RequestedRole int
	CurrentRole   int
	Experience    string
	Reason        string
	Status        int
	ReviewedBy    *int64
	ReviewedAt    *time.Time
	CreatedAt     time.Time
}

func (ApplicationDTO) TableName() string {
	return "baker_applications"
}

func fromDomain(a *application.BakerApplication) ApplicationDTO {
	return ApplicationDTO{
		ID:            a.ID().Int64(),
		UserID:        a.UserID().Int64(),
		RequestedRole: int(a.RequestedRole()),
		CurrentRole:   int(a.CurrentRole()),
		Experience:    a.Experience(),
		Reason:        a.Reason(),
		Status:        int(a.Status()),
		ReviewedBy:    kernel.RawID(a.ReviewedBy()),
		ReviewedAt:    a.ReviewedAt(),
		CreatedAt:     a.CreatedAt(),
	}
}

func toDomain(dto ApplicationDTO) (*application.BakerApplication, error) {
	return application.RestoreBakerApplication(
		kernel.ID(dto.ID),
		kernel.ID(dto.UserID),
		user.Role(dto.RequestedRole),
		user.Role(dto.CurrentRole),
		dto.Experience,
		dto.Reason,
		application.Status(dto.Status),
		kernel.OptionalID(dto.ReviewedBy),
		dto.ReviewedAt,
		dto.CreatedAt,
	)
}
