package order

import (
	"errors"
	"fmt"
	"time"

	"bakery/internal/core/domain/model/access"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order is the aggregate root of one customer purchase. It owns the status
// field and the baker assignment, and it is the only place where either of
// them changes.
//
// Order follows these invariants:
//   - customer and items are fixed at creation
//   - a junior baker is never set without a main baker
//   - a pending order has no bakers; every later non-cancelled state has a main baker
//   - status moves only along the transition table (see Status)
//
// Every status change is recorded as a StatusChange and handed to the
// repository through PullStatusChanges.
type Order struct {
	id            kernel.ID
	customerID    kernel.ID
	mainBakerID   *kernel.ID
	juniorBakerID *kernel.ID
	status        Status
	items         []Item
	total         kernel.Money
	paymentMethod PaymentMethod
	deliveryInfo  DeliveryInfo
	createdAt     time.Time
	updatedAt     time.Time
	version       int

	changes []StatusChange
	guard   guard.ConstructorGuard
}

// Snapshot is the flat persisted form of an Order. Repositories map it to
// their storage format and rebuild aggregates with RestoreOrder.
type Snapshot struct {
	ID            kernel.ID
	CustomerID    kernel.ID
	MainBakerID   *kernel.ID
	JuniorBakerID *kernel.ID
	Status        Status
	Items         []Item
	Total         kernel.Money
	PaymentMethod PaymentMethod
	DeliveryInfo  DeliveryInfo
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int
}

// NewOrder places a new order in Pending status. The total is computed from
// the items; the status is never chosen by the caller.
//
// Example:
//
//	price, _ := kernel.ParseMoney("4.50")
//	croissant, _ := order.NewItem(productID, "Croissant", 2, price)
//	delivery, _ := order.NewDeliveryInfo("Ann", "+100200300", "1 Baker St", "London", "")
//	o, err := order.NewOrder(customerID, []order.Item{croissant}, delivery, order.Card, time.Now())
func NewOrder(
	customerID kernel.ID,
	items []Item,
	deliveryInfo DeliveryInfo,
	paymentMethod PaymentMethod,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:    Pending,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setDeliveryInfo(deliveryInfo),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	o.total = o.computeTotal()
	o.changes = append(o.changes, StatusChange{From: Unknown, To: Pending, ActorID: customerID, At: now})
	return o, nil
}

// RestoreOrder rebuilds a stored order and re-checks the assignment invariants.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		id:        s.ID,
		status:    s.Status,
		total:     s.Total,
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
		version:   s.Version,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.ID.Validate(),
		o.setCustomerID(s.CustomerID),
		o.setItems(s.Items),
		o.setDeliveryInfo(s.DeliveryInfo),
		o.setPaymentMethod(s.PaymentMethod),
		s.Status.Validate(),
		s.Total.Validate(),
		validateAssignment(s.Status, s.MainBakerID, s.JuniorBakerID),
	); err != nil {
		return nil, err
	}

	o.mainBakerID = copyID(s.MainBakerID)
	o.juniorBakerID = copyID(s.JuniorBakerID)
	return o, nil
}

// Snapshot returns the persisted form of the order.
func (o *Order) Snapshot() Snapshot {
	items := make([]Item, len(o.items))
	copy(items, o.items)

	return Snapshot{
		ID:            o.id,
		CustomerID:    o.customerID,
		MainBakerID:   copyID(o.mainBakerID),
		JuniorBakerID: copyID(o.juniorBakerID),
		Status:        o.status,
		Items:         items,
		Total:         o.total,
		PaymentMethod: o.paymentMethod,
		DeliveryInfo:  o.deliveryInfo,
		CreatedAt:     o.createdAt,
		UpdatedAt:     o.updatedAt,
		Version:       o.version,
	}
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// Identify binds the storage-assigned id. It may be called once.
func (o *Order) Identify(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if !o.id.IsZero() && o.id != id {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("order already identified as %s", o.id))
	}
	o.id = id
	for i := range o.changes {
		o.changes[i].OrderID = id
	}
	return nil
}

func (o *Order) ID() kernel.ID                { return o.id }
func (o *Order) CustomerID() kernel.ID        { return o.customerID }
func (o *Order) MainBakerID() *kernel.ID      { return copyID(o.mainBakerID) }
func (o *Order) JuniorBakerID() *kernel.ID    { return copyID(o.juniorBakerID) }
func (o *Order) Status() Status               { return o.status }
func (o *Order) Total() kernel.Money          { return o.total }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) DeliveryInfo() DeliveryInfo   { return o.deliveryInfo }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) UpdatedAt() time.Time         { return o.updatedAt }
func (o *Order) Version() int                 { return o.version }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Resource describes the order for access checks.
func (o *Order) Resource() access.Resource {
	return access.Resource{
		OwnerID:       o.customerID,
		MainBakerID:   copyID(o.mainBakerID),
		JuniorBakerID: copyID(o.juniorBakerID),
	}
}

// Participants returns the customer and the assigned bakers.
func (o *Order) Participants() []kernel.ID {
	ids := []kernel.ID{o.customerID}
	if o.mainBakerID != nil {
		ids = append(ids, *o.mainBakerID)
	}
	if o.juniorBakerID != nil {
		ids = append(ids, *o.juniorBakerID)
	}
	return ids
}

// IsParticipant reports whether id is the customer or one of the assigned bakers.
func (o *Order) IsParticipant(id kernel.ID) bool {
	for _, p := range o.Participants() {
		if p == id {
			return true
		}
	}
	return false
}

// Transition moves the order to target on behalf of actor.
//
// Rules, checked in order:
//   - actor must be the assigned main or junior baker, or an admin; only the
//     main baker and admins may cancel
//   - requesting the current status is a successful no-op (changed is false)
//   - target must be the next state of the table, or Cancelled from an open state
//   - Assigned is reached only together with a main baker (see Assign)
//
// On success only status and updatedAt change. On failure the order is untouched.
func (o *Order) Transition(target Status, actor access.Actor, now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if err := target.Validate(); err != nil {
		return false, err
	}

	action := access.AdvanceOrder
	if target == Cancelled {
		action = access.CancelOrder
	}
	if err := access.Authorize(actor, action, o.Resource()); err != nil {
		return false, err
	}

	if target == o.status {
		return false, nil
	}

	if err := o.status.ValidateTransition(target); err != nil {
		return false, err
	}

	if target == Assigned && o.mainBakerID == nil {
		return false, errs.NewAssignmentPreconditionError("an order becomes assigned only by assigning a main baker")
	}

	o.applyStatus(target, actor.ID, now)
	return true, nil
}

// CancelByCustomer lets the ordering customer withdraw an order that no baker
// has claimed yet. Cancelling an already cancelled order is a no-op.
func (o *Order) CancelByCustomer(actor access.Actor, now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if err := access.Authorize(actor, access.CustomerCancel, o.Resource()); err != nil {
		return false, err
	}
	if o.status == Cancelled {
		return false, nil
	}
	if o.status != Pending {
		return false, errs.NewInvalidTransitionError(o.status.String(), Cancelled.String())
	}

	o.applyStatus(Cancelled, actor.ID, now)
	return true, nil
}

// Assign sets the bakers of the order in one step. It enforces the structural
// rules only; who may assign whom is decided by the assignment engine.
//
// A pending order that receives its main baker advances to Assigned as part
// of the same call, so an order never carries bakers while still pending.
// Changing bakers of an order that is already assigned leaves status as is.
// Nothing is modified when an error is returned.
func (o *Order) Assign(mainBakerID, juniorBakerID *kernel.ID, actorID kernel.ID, now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if o.status.IsTerminal() {
		return false, errs.NewInvalidTransitionError(o.status.String(), Assigned.String())
	}
	if mainBakerID == nil {
		return false, errs.NewAssignmentPreconditionError("a main baker is required")
	}
	if err := mainBakerID.Validate(); err != nil {
		return false, err
	}
	if juniorBakerID != nil {
		if err := juniorBakerID.Validate(); err != nil {
			return false, err
		}
	}

	o.mainBakerID = copyID(mainBakerID)
	o.juniorBakerID = copyID(juniorBakerID)
	o.updatedAt = now

	if o.status == Pending {
		o.applyStatus(Assigned, actorID, now)
		return true, nil
	}
	return false, nil
}

// Versioned records the version a repository stored the order under.
func (o *Order) Versioned(version int) {
	o.version = version
}

// PullStatusChanges returns the transitions recorded since the last call and
// forgets them. Repositories call it when persisting the order.
func (o *Order) PullStatusChanges() []StatusChange {
	changes := o.changes
	o.changes = nil
	return changes
}

func (o *Order) applyStatus(target Status, actorID kernel.ID, now time.Time) {
	o.changes = append(o.changes, StatusChange{
		OrderID: o.id,
		From:    o.status,
		To:      target,
		ActorID: actorID,
		At:      now,
	})
	o.status = target
	o.updatedAt = now
}

func (o *Order) computeTotal() kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (o *Order) setCustomerID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setDeliveryInfo(info DeliveryInfo) error {
	if err := info.Validate(); err != nil {
		return err
	}
	o.deliveryInfo = info
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

// validateAssignment checks the consistency between status and bakers of a stored order.
func validateAssignment(status Status, mainBakerID, juniorBakerID *kernel.ID) error {
	if juniorBakerID != nil && mainBakerID == nil {
		return errs.NewAssignmentPreconditionError("junior baker set without a main baker")
	}
	if status == Pending && mainBakerID != nil {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s order must not have bakers", status))
	}
	if status != Pending && status != Cancelled && mainBakerID == nil {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s order must have a main baker", status))
	}
	return nil
}

func copyID(id *kernel.ID) *kernel.ID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
