package memory

import (
	"context"
	"sort"

	"bakery/internal/core/domain/model/application"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"
)

type applicationRepository struct {
	uow *UnitOfWork
}

func (r *applicationRepository) Add(ctx context.Context, app *application.BakerApplication) error {
	if err := app.Validate(); err != nil {
		return err
	}
	return r.uow.run(ctx, func(s *state) error {
		if app.Status() == application.Pending && hasPending(s, app.UserID()) {
			return errs.NewDuplicatePendingApplicationError(app.UserID().Int64())
		}
		id := s.nextID()
		if err := app.Identify(id); err != nil {
			return err
		}
		s.applications[id] = applicationToRow(app)
		return nil
	})
}

// Update stores a decision only while the stored application is pending.
func (r *applicationRepository) Update(ctx context.Context, app *application.BakerApplication) error {
	if err := app.Validate(); err != nil {
		return err
	}
	return r.uow.run(ctx, func(s *state) error {
		stored, ok := s.applications[app.ID()]
		if !ok {
			return errs.NewObjectNotFoundError("application", app.ID().Int64())
		}
		if stored.status != application.Pending {
			return errs.NewAlreadyDecidedError(app.ID().Int64(), stored.status.String())
		}
		s.applications[app.ID()] = applicationToRow(app)
		return nil
	})
}

func (r *applicationRepository) Get(ctx context.Context, id kernel.ID) (*application.BakerApplication, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var found *application.BakerApplication
	err := r.uow.run(ctx, func(s *state) error {
		row, ok := s.applications[id]
		if !ok {
			return errs.NewObjectNotFoundError("application", id.Int64())
		}
		var err error
		found, err = rowToApplication(row)
		return err
	})
	return found, err
}

func (r *applicationRepository) HasPending(ctx context.Context, userID kernel.ID) (bool, error) {
	pending := false
	err := r.uow.run(ctx, func(s *state) error {
		pending = hasPending(s, userID)
		return nil
	})
	return pending, err
}

func (r *applicationRepository) ListByUser(ctx context.Context, userID kernel.ID) ([]*application.BakerApplication, error) {
	return r.list(ctx, func(row applicationRow) bool { return row.userID == userID })
}

func (r *applicationRepository) ListByStatus(
	ctx context.Context,
	status application.Status,
) ([]*application.BakerApplication, error) {
	return r.list(ctx, func(row applicationRow) bool {
		return status == application.UnknownStatus || row.status == status
	})
}

func (r *applicationRepository) list(
	ctx context.Context,
	keep func(applicationRow) bool,
) ([]*application.BakerApplication, error) {
	var apps []*application.BakerApplication
	err := r.uow.run(ctx, func(s *state) error {
		rows := make([]applicationRow, 0)
		for _, row := range s.applications {
			if keep(row) {
				rows = append(rows, row)
			}
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].id > rows[j].id })

		apps = make([]*application.BakerApplication, 0, len(rows))
		for _, row := range rows {
			app, err := rowToApplication(row)
			if err != nil {
				return err
			}
			apps = append(apps, app)
		}
		return nil
	})
	return apps, err
}

func hasPending(s *state, userID kernel.ID) bool {
	for _, row := range s.applications {
		if row.userID == userID && row.status == application.Pending {
			return true
		}
	}
	return false
}

func applicationToRow(app *application.BakerApplication) applicationRow {
	return applicationRow{
		id:            app.ID(),
		userID:        app.UserID(),
		requestedRole: app.RequestedRole(),
		currentRole:   app.CurrentRole(),
		experience:    app.Experience(),
		reason:        app.Reason(),
		status:        app.Status(),
		reviewedBy:    app.ReviewedBy(),
		reviewedAt:    app.ReviewedAt(),
		createdAt:     app.CreatedAt(),
	}
}

func rowToApplication(row applicationRow) (*application.BakerApplication, error) {
	return application.RestoreBakerApplication(
		row.id,
		row.userID,
		row.requestedRole,
		row.currentRole,
		row.experience,
		row.reason,
		row.status,
		row.reviewedBy,
		row.reviewedAt,
		row.createdAt,
	)
}
