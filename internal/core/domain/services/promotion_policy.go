package services

import (
	"fmt"
	"time"

	"bakery/internal/core/domain/model/access"
	"bakery/internal/core/domain/model/application"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/pkg/errs"
)

// DefaultMinFulfilledOrders is the track record a junior baker needs before
// applying for main baker.
const DefaultMinFulfilledOrders = 5

// PromotionPolicy holds the rules of the baker application pipeline that
// involve both the application and the applicant.
type PromotionPolicy struct {
	minFulfilledOrders int
}

func NewPromotionPolicy(minFulfilledOrders int) PromotionPolicy {
	if minFulfilledOrders < 0 {
		minFulfilledOrders = 0
	}
	return PromotionPolicy{minFulfilledOrders: minFulfilledOrders}
}

// NeedsTrackRecord reports whether CheckEligibility looks at fulfilled orders
// for the requested role, so callers count them only when needed.
func (p PromotionPolicy) NeedsTrackRecord(requested user.Role) bool {
	return requested == user.MainBaker && p.minFulfilledOrders > 0
}

// CheckEligibility enforces the fulfilled order threshold for main baker requests.
func (p PromotionPolicy) CheckEligibility(requested user.Role, fulfilledOrders int) error {
	if !p.NeedsTrackRecord(requested) {
		return nil
	}
	if fulfilledOrders < p.minFulfilledOrders {
		return errs.NewNotEligibleError(fmt.Sprintf(
			"main_baker requires %d fulfilled orders as junior baker, found %d",
			p.minFulfilledOrders, fulfilledOrders,
		))
	}
	return nil
}

// Resolve records the decision on app and, for an approval, grants the
// requested role to applicant. Every check runs before either aggregate
// changes; the caller persists both in one unit of work.
//
// Approving an application whose applicant changed role since submission
// fails with StaleRoleError.
func (p PromotionPolicy) Resolve(
	app *application.BakerApplication,
	applicant *user.User,
	decision application.Decision,
	reviewer access.Actor,
	now time.Time,
) error {
	if err := app.Validate(); err != nil {
		return err
	}
	if err := applicant.Validate(); err != nil {
		return err
	}
	if applicant.ID() != app.UserID() {
		return errs.NewValueIsInvalidErrorWithCause(
			"applicant",
			fmt.Errorf("user %s does not own application %s", applicant.ID(), app.ID()),
		)
	}
	if app.Status() == application.Pending && decision == application.Approve && applicant.Role() != app.CurrentRole() {
		return errs.NewStaleRoleError(app.CurrentRole().String(), applicant.Role().String())
	}

	if err := app.Decide(decision, reviewer, now); err != nil {
		return err
	}
	if decision == application.Approve {
		return applicant.ChangeRole(app.RequestedRole())
	}
	return nil
}
