package services

import (
	"fmt"
	"time"

	"bakery/internal/core/domain/model/access"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/pkg/errs"
)

// Assignment is one assign request after the referenced users were loaded.
type Assignment struct {
	// MainBaker is the requested main baker; nil keeps the current one.
	MainBaker *user.User
	// JuniorBaker is the requested junior baker; nil keeps the current one.
	JuniorBaker *user.User
	// JuniorActiveOrders is the number of assigned or in-progress orders the
	// requested junior baker already works on.
	JuniorActiveOrders int
}

// AssignmentResult reports what an assignment changed.
type AssignmentResult struct {
	StatusAdvanced     bool
	MainBakerChanged   bool
	JuniorBakerChanged bool
}

// Changed reports whether the order was modified at all.
func (r AssignmentResult) Changed() bool {
	return r.StatusAdvanced || r.MainBakerChanged || r.JuniorBakerChanged
}

// AssignmentEngine binds bakers to orders.
//
// Business rules:
//   - A main baker may claim an unclaimed order for itself, either with an
//     empty request or by naming itself as main baker; repeating the empty
//     request once it holds the order changes nothing
//   - A junior baker is set only when a main baker exists or is set in the
//     same call, otherwise AssignmentPreconditionError
//   - Only admins and the order's own (existing or self-claiming) main baker
//     set the junior baker
//   - Named bakers must hold the matching role
//   - A junior baker takes at most maxActiveJuniorOrders open orders (0 = no limit)
//   - Claiming a pending order advances it to assigned in the same step
//
// All checks run before the order is touched, so a failed call leaves it as it was.
type AssignmentEngine struct {
	maxActiveJuniorOrders int
}

// NewAssignmentEngine creates an engine with the given junior baker capacity.
func NewAssignmentEngine(maxActiveJuniorOrders int) AssignmentEngine {
	if maxActiveJuniorOrders < 0 {
		maxActiveJuniorOrders = 0
	}
	return AssignmentEngine{maxActiveJuniorOrders: maxActiveJuniorOrders}
}

// Assign applies req to o on behalf of actor.
//
// Example:
//
//	engine := services.NewAssignmentEngine(3)
//	res, err := engine.Assign(o, access.ActorOf(mainBaker), services.Assignment{
//	    JuniorBaker:        junior,
//	    JuniorActiveOrders: active,
//	}, time.Now())
func (e AssignmentEngine) Assign(
	o *order.Order,
	actor access.Actor,
	req Assignment,
	now time.Time,
) (AssignmentResult, error) {
	if err := o.Validate(); err != nil {
		return AssignmentResult{}, err
	}

	currentMain := o.MainBakerID()
	selfClaim := false

	var mainID *kernel.ID
	switch {
	case req.MainBaker != nil:
		id := req.MainBaker.ID()
		mainID = &id
	case currentMain != nil:
		mainID = currentMain
	case req.JuniorBaker == nil && access.CanAct(actor, access.ClaimOrder, o.Resource()):
		id := actor.ID
		mainID = &id
		selfClaim = true
	}

	if req.MainBaker == nil && req.JuniorBaker == nil && !selfClaim {
		if currentMain != nil && *currentMain == actor.ID {
			return AssignmentResult{}, nil
		}
		return AssignmentResult{}, errs.NewValueIsRequiredError("main baker or junior baker")
	}
	if req.JuniorBaker != nil && mainID == nil {
		return AssignmentResult{}, errs.NewAssignmentPreconditionError(
			fmt.Sprintf("order %s has no main baker to delegate from", o.ID()),
		)
	}

	mainChanged := currentMain == nil || *currentMain != *mainID
	if mainChanged {
		action := access.AssignMainBaker
		if currentMain == nil && *mainID == actor.ID {
			action = access.ClaimOrder
		}
		if err := access.Authorize(actor, action, o.Resource()); err != nil {
			return AssignmentResult{}, err
		}
	}

	if req.JuniorBaker != nil {
		projected := o.Resource()
		projected.MainBakerID = mainID
		if err := access.Authorize(actor, access.AssignJuniorBaker, projected); err != nil {
			return AssignmentResult{}, err
		}
	}

	if req.MainBaker != nil && !access.HoldsRole(req.MainBaker, user.MainBaker) {
		return AssignmentResult{}, errs.NewAssignmentPreconditionError(
			fmt.Sprintf("user %s is %s, not main_baker", req.MainBaker.ID(), req.MainBaker.Role()),
		)
	}

	juniorID := o.JuniorBakerID()
	juniorChanged := false
	if req.JuniorBaker != nil {
		if !access.HoldsRole(req.JuniorBaker, user.JuniorBaker) {
			return AssignmentResult{}, errs.NewAssignmentPreconditionError(
				fmt.Sprintf("user %s is %s, not junior_baker", req.JuniorBaker.ID(), req.JuniorBaker.Role()),
			)
		}

		id := req.JuniorBaker.ID()
		juniorChanged = juniorID == nil || *juniorID != id
		juniorID = &id

		if juniorChanged && e.maxActiveJuniorOrders > 0 && req.JuniorActiveOrders >= e.maxActiveJuniorOrders {
			return AssignmentResult{}, errs.NewAssignmentPreconditionError(
				fmt.Sprintf("junior baker %s already works on %d orders", id, req.JuniorActiveOrders),
			)
		}
	}

	if !mainChanged && !juniorChanged {
		return AssignmentResult{}, nil
	}

	advanced, err := o.Assign(mainID, juniorID, actor.ID, now)
	if err != nil {
		return AssignmentResult{}, err
	}

	return AssignmentResult{
		StatusAdvanced:     advanced,
		MainBakerChanged:   mainChanged,
		JuniorBakerChanged: juniorChanged,
	}, nil
}
