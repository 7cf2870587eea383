// Package access is the single authorization module of the bakery core.
// Every role comparison made by the order machine, the assignment engine and
// the application workflow goes through CanAct or Authorize.
package access

import (
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/pkg/errs"
)

// Action names an operation that needs authorization.
type Action string

const (
	ViewOrder         Action = "view order"
	AdvanceOrder      Action = "advance order status"
	CancelOrder       Action = "cancel order"
	CustomerCancel    Action = "cancel own order"
	ClaimOrder        Action = "claim order"
	AssignMainBaker   Action = "assign main baker"
	AssignJuniorBaker Action = "assign junior baker"
	ReviewOrder       Action = "review order"
	MessageOrder      Action = "message about order"
	SubmitApplication Action = "submit baker application"
	DecideApplication Action = "decide baker application"
	ViewApplications  Action = "view all baker applications"
	ViewBakerStats    Action = "view baker statistics"
	SendDirectMessage Action = "send direct message"
	ViewAllOrders     Action = "view all orders"
)

// Actor is the authenticated user performing an action.
type Actor struct {
	ID   kernel.ID
	Role user.Role
}

// ActorOf builds an Actor from a stored user.
func ActorOf(u *user.User) Actor {
	return Actor{ID: u.ID(), Role: u.Role()}
}

// Resource describes what an action touches. For orders OwnerID is the
// customer; for applications and statistics it is the subject user.
type Resource struct {
	OwnerID       kernel.ID
	MainBakerID   *kernel.ID
	JuniorBakerID *kernel.ID
}

func (r Resource) isMainBaker(id kernel.ID) bool {
	return r.MainBakerID != nil && *r.MainBakerID == id
}

func (r Resource) isJuniorBaker(id kernel.ID) bool {
	return r.JuniorBakerID != nil && *r.JuniorBakerID == id
}

// CanAct reports whether actor may perform action on resource.
//
//   - admin: unrestricted.
//   - main_baker: full control over orders it owns as main baker, may claim
//     unclaimed orders and (re)assign junior bakers on its own orders; cannot
//     decide applications.
//   - junior_baker: forward transitions on orders delegated to it only.
//   - customer: read-only on its own orders; may message, review and apply.
//
// Customer-level rights (own orders, messaging, applying) hold for every role.
func CanAct(actor Actor, action Action, res Resource) bool {
	if actor.Role.Validate() != nil || actor.ID.IsZero() {
		return false
	}
	if actor.Role == user.Admin {
		return true
	}

	isOwner := res.OwnerID == actor.ID

	switch action {
	case ViewOrder:
		return isOwner || res.isMainBaker(actor.ID) || res.isJuniorBaker(actor.ID) ||
			(actor.Role == user.MainBaker && res.MainBakerID == nil)
	case CustomerCancel, ReviewOrder, ViewBakerStats:
		return isOwner
	case SubmitApplication, SendDirectMessage:
		return true
	case MessageOrder:
		return isOwner || res.isMainBaker(actor.ID) || res.isJuniorBaker(actor.ID)
	case AdvanceOrder:
		switch actor.Role {
		case user.MainBaker:
			return res.isMainBaker(actor.ID)
		case user.JuniorBaker:
			return res.isJuniorBaker(actor.ID)
		default:
			return false
		}
	case CancelOrder, AssignMainBaker, AssignJuniorBaker:
		return actor.Role == user.MainBaker && res.isMainBaker(actor.ID)
	case ClaimOrder:
		return actor.Role == user.MainBaker && res.MainBakerID == nil
	case DecideApplication, ViewApplications, ViewAllOrders:
		return false
	}

	return false
}

// Authorize is CanAct returning an UnauthorizedError on refusal.
func Authorize(actor Actor, action Action, res Resource) error {
	if !CanAct(actor, action, res) {
		return errs.NewUnauthorizedError(actor.ID.Int64(), actor.Role.String(), string(action))
	}
	return nil
}

// CanApplyFor reports whether a user holding current may apply for the
// requested baker role. Customers apply for junior baker, junior bakers for
// main baker; a main baker may ask to step down to junior baker.
func CanApplyFor(current, requested user.Role) bool {
	switch requested {
	case user.JuniorBaker:
		return current == user.Customer || current == user.MainBaker
	case user.MainBaker:
		return current == user.JuniorBaker
	default:
		return false
	}
}

// HoldsRole reports whether u currently holds role. It exists so callers
// validating assignment targets never compare roles directly.
func HoldsRole(u *user.User, role user.Role) bool {
	return u != nil && u.Role() == role
}
