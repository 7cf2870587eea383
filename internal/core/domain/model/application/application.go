package application

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bakery/internal/core/domain/model/access"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

const (
	maxExperienceLength = 4000
	maxReasonLength     = 2000
)

var ErrBakerApplicationIsNotConstructed = errors.New(
	"BakerApplication must be created via NewBakerApplication or RestoreBakerApplication",
)

// BakerApplication is a user's request to hold a baker role.
type BakerApplication struct {
	id            kernel.ID
	userID        kernel.ID
	requestedRole user.Role
	currentRole   user.Role
	experience    string
	reason        string
	status        Status
	reviewedBy    *kernel.ID
	reviewedAt    *time.Time
	createdAt     time.Time

	guard guard.ConstructorGuard
}

// NewBakerApplication opens a pending application for applicant.
//
// claimedRole is the role the caller believes the applicant holds. A
// mismatch with the stored role means the request was built from stale data
// and is rejected with a StaleRoleError. The requested role must be the next
// step allowed by access.CanApplyFor, otherwise NotEligibleError.
//
// Checks that need other aggregates (one pending application per user, the
// promotion threshold) are done by the caller.
func NewBakerApplication(
	applicant *user.User,
	claimedRole user.Role,
	requestedRole user.Role,
	experience string,
	reason string,
	now time.Time,
) (*BakerApplication, error) {
	if err := applicant.Validate(); err != nil {
		return nil, err
	}
	if err := requestedRole.Validate(); err != nil {
		return nil, err
	}
	if claimedRole != applicant.Role() {
		return nil, errs.NewStaleRoleError(claimedRole.String(), applicant.Role().String())
	}
	if !access.CanApplyFor(applicant.Role(), requestedRole) {
		return nil, errs.NewNotEligibleError(
			fmt.Sprintf("a %s cannot apply for %s", applicant.Role(), requestedRole),
		)
	}

	a := &BakerApplication{
		userID:        applicant.ID(),
		requestedRole: requestedRole,
		currentRole:   applicant.Role(),
		status:        Pending,
		createdAt:     now,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		applicant.ID().Validate(),
		a.setExperience(experience),
		a.setReason(reason),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreBakerApplication rebuilds a stored application.
func RestoreBakerApplication(
	id kernel.ID,
	userID kernel.ID,
	requestedRole user.Role,
	currentRole user.Role,
	experience string,
	reason string,
	status Status,
	reviewedBy *kernel.ID,
	reviewedAt *time.Time,
	createdAt time.Time,
) (*BakerApplication, error) {
	a := &BakerApplication{
		id:            id,
		userID:        userID,
		requestedRole: requestedRole,
		currentRole:   currentRole,
		experience:    experience,
		reason:        reason,
		status:        status,
		reviewedBy:    reviewedBy,
		reviewedAt:    reviewedAt,
		createdAt:     createdAt,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		userID.Validate(),
		requestedRole.Validate(),
		currentRole.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if status != Pending && (reviewedBy == nil || reviewedAt == nil) {
		return nil, errs.NewValueIsRequiredError("reviewer of a decided application")
	}

	return a, nil
}

func (a *BakerApplication) Validate() error {
	if a == nil {
		return ErrBakerApplicationIsNotConstructed
	}
	return a.guard.Validate(ErrBakerApplicationIsNotConstructed)
}

// Identify binds the storage-assigned id. It may be called once.
func (a *BakerApplication) Identify(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if !a.id.IsZero() && a.id != id {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("application already identified as %s", a.id))
	}
	a.id = id
	return nil
}

// Decide resolves a pending application. The reviewer's authority is checked
// against access rules; a resolved application fails with AlreadyDecidedError.
func (a *BakerApplication) Decide(decision Decision, reviewer access.Actor, now time.Time) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := decision.Validate(); err != nil {
		return err
	}
	if err := access.Authorize(reviewer, access.DecideApplication, access.Resource{OwnerID: a.userID}); err != nil {
		return err
	}
	if a.status != Pending {
		return errs.NewAlreadyDecidedError(a.id.Int64(), a.status.String())
	}

	reviewedBy := reviewer.ID
	reviewedAt := now
	a.status = decision.Status()
	a.reviewedBy = &reviewedBy
	a.reviewedAt = &reviewedAt
	return nil
}

func (a *BakerApplication) ID() kernel.ID            { return a.id }
func (a *BakerApplication) UserID() kernel.ID        { return a.userID }
func (a *BakerApplication) RequestedRole() user.Role { return a.requestedRole }
func (a *BakerApplication) CurrentRole() user.Role   { return a.currentRole }
func (a *BakerApplication) Experience() string       { return a.experience }
func (a *BakerApplication) Reason() string           { return a.reason }
func (a *BakerApplication) Status() Status           { return a.status }
func (a *BakerApplication) CreatedAt() time.Time     { return a.createdAt }

func (a *BakerApplication) ReviewedBy() *kernel.ID {
	if a.reviewedBy == nil {
		return nil
	}
	id := *a.reviewedBy
	return &id
}

func (a *BakerApplication) ReviewedAt() *time.Time {
	if a.reviewedAt == nil {
		return nil
	}
	at := *a.reviewedAt
	return &at
}

// IsPromotion reports whether approving the application raises the applicant's role.
func (a *BakerApplication) IsPromotion() bool {
	return a.requestedRole.Outranks(a.currentRole)
}

func (a *BakerApplication) setExperience(experience string) error {
	experience = strings.TrimSpace(experience)
	if len(experience) > maxExperienceLength {
		return errs.NewValueIsOutOfRangeError("experience length", len(experience), 0, maxExperienceLength)
	}
	a.experience = experience
	return nil
}

func (a *BakerApplication) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	if len(reason) > maxReasonLength {
		return errs.NewValueIsOutOfRangeError("reason length", len(reason), 0, maxReasonLength)
	}
	a.reason = reason
	return nil
}
