// Package review holds customer ratings of delivered orders. Ratings feed
// the average shown in a junior baker's statistics.
package review

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bakery/internal/core/domain/model/access"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

const (
	MinRating        = 1
	MaxRating        = 5
	maxCommentLength = 2000
)

var (
	ErrReviewIsNotConstructed = errors.New("Review must be created via NewReview or RestoreReview")

	// ErrOrderAlreadyReviewed is returned by repositories when an order already carries a review.
	ErrOrderAlreadyReviewed = errors.New("order already reviewed")
)

type Review struct {
	id            kernel.ID
	orderID       kernel.ID
	customerID    kernel.ID
	juniorBakerID kernel.ID
	rating        int
	comment       string
	createdAt     time.Time

	guard guard.ConstructorGuard
}

// NewReview lets the customer of a delivered order rate the junior baker who
// worked on it.
func NewReview(o *order.Order, actor access.Actor, rating int, comment string, now time.Time) (*Review, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := access.Authorize(actor, access.ReviewOrder, o.Resource()); err != nil {
		return nil, err
	}
	if o.Status() != order.Delivered {
		return nil, errs.NewNotEligibleError(fmt.Sprintf("order %s is %s, only delivered orders can be reviewed", o.ID(), o.Status()))
	}
	junior := o.JuniorBakerID()
	if junior == nil {
		return nil, errs.NewNotEligibleError(fmt.Sprintf("order %s has no junior baker to review", o.ID()))
	}

	r := &Review{
		orderID:       o.ID(),
		customerID:    o.CustomerID(),
		juniorBakerID: *junior,
		createdAt:     now,
		guard:         guard.NewConstructorGuard(),
	}
	if err := errors.Join(r.setRating(rating), r.setComment(comment)); err != nil {
		return nil, err
	}
	return r, nil
}

// RestoreReview rebuilds a stored review.
func RestoreReview(
	id, orderID, customerID, juniorBakerID kernel.ID,
	rating int,
	comment string,
	createdAt time.Time,
) (*Review, error) {
	r := &Review{
		id:            id,
		orderID:       orderID,
		customerID:    customerID,
		juniorBakerID: juniorBakerID,
		comment:       comment,
		createdAt:     createdAt,
		guard:         guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		customerID.Validate(),
		juniorBakerID.Validate(),
		r.setRating(rating),
	); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Review) Validate() error {
	if r == nil {
		return ErrReviewIsNotConstructed
	}
	return r.guard.Validate(ErrReviewIsNotConstructed)
}

func (r *Review) Identify(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Review) ID() kernel.ID            { return r.id }
func (r *Review) OrderID() kernel.ID       { return r.orderID }
func (r *Review) CustomerID() kernel.ID    { return r.customerID }
func (r *Review) JuniorBakerID() kernel.ID { return r.juniorBakerID }
func (r *Review) Rating() int              { return r.rating }
func (r *Review) Comment() string          { return r.comment }
func (r *Review) CreatedAt() time.Time     { return r.createdAt }

func (r *Review) setRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}
	r.rating = rating
	return nil
}

func (r *Review) setComment(comment string) error {
	comment = strings.TrimSpace(comment)
	if len(comment) > maxCommentLength {
		return errs.NewValueIsOutOfRangeError("comment length", len(comment), 0, maxCommentLength)
	}
	r.comment = comment
	return nil
}
