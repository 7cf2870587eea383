package ports

import (
	"context"

	"bakery/internal/core/domain/model/application"
	"bakery/internal/core/domain/model/kernel"
)

// ApplicationRepository defines the persistence contract for baker applications.
type ApplicationRepository interface {
	// Add persists a new pending application. A second pending application
	// of the same user fails with errs.DuplicatePendingApplicationError, even
	// when two submissions race.
	Add(ctx context.Context, app *application.BakerApplication) error

	// Update persists a decision. It succeeds only while the stored
	// application is still pending and fails with errs.AlreadyDecidedError
	// when another decision committed first.
	Update(ctx context.Context, app *application.BakerApplication) error

	Get(ctx context.Context, id kernel.ID) (*application.BakerApplication, error)

	// HasPending reports whether the user has an undecided application.
	HasPending(ctx context.Context, userID kernel.ID) (bool, error)

	ListByUser(ctx context.Context, userID kernel.ID) ([]*application.BakerApplication, error)

	// ListByStatus returns applications with the status; application.UnknownStatus lists all.
	ListByStatus(ctx context.Context, status application.Status) ([]*application.BakerApplication, error)
}
