package http

import (
	"errors"
	"fmt"
	"time"

	"bakery/internal/core/application/usecases/queries"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
)

type Created struct {
	ID int64 `json:"id"`
}

type NewUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type NewItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

type Delivery struct {
	Recipient string `json:"recipient"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type NewOrder struct {
	Items         []NewItem `json:"items"`
	Delivery      Delivery  `json:"delivery"`
	PaymentMethod string    `json:"payment_method"`
}

type StatusUpdate struct {
	Status string `json:"status"`
}

type Assignment struct {
	MainBakerID   *int64 `json:"main_baker_id,omitempty"`
	JuniorBakerID *int64 `json:"junior_baker_id,omitempty"`
}

type NewReview struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type NewMessage struct {
	RecipientID int64  `json:"recipient_id"`
	OrderID     *int64 `json:"order_id,omitempty"`
	Body        string `json:"body"`
}

type NewApplication struct {
	CurrentRole   string `json:"current_role"`
	RequestedRole string `json:"requested_role"`
	Experience    string `json:"experience"`
	Reason        string `json:"reason"`
}

type ApplicationDecision struct {
	Decision string `json:"decision"`
}

type Item struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
}

type Order struct {
	ID            int64     `json:"id"`
	CustomerID    int64     `json:"customer_id"`
	MainBakerID   *int64    `json:"main_baker_id"`
	JuniorBakerID *int64    `json:"junior_baker_id"`
	Status        string    `json:"status"`
	Items         []Item    `json:"items"`
	Total         string    `json:"total"`
	PaymentMethod string    `json:"payment_method"`
	Delivery      Delivery  `json:"delivery"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type StatusChange struct {
	From    string    `json:"from"`
	To      string    `json:"to"`
	ActorID int64     `json:"actor_id"`
	At      time.Time `json:"at"`
}

type Review struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type OrderDetail struct {
	Order   Order          `json:"order"`
	History []StatusChange `json:"history"`
	Review  *Review        `json:"review"`
}

type Message struct {
	ID          int64     `json:"id"`
	SenderID    int64     `json:"sender_id"`
	RecipientID int64     `json:"recipient_id"`
	OrderID     *int64    `json:"order_id"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
}

type Application struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	RequestedRole string     `json:"requested_role"`
	CurrentRole   string     `json:"current_role"`
	Experience    string     `json:"experience"`
	Reason        string     `json:"reason"`
	Status        string     `json:"status"`
	ReviewedBy    *int64     `json:"reviewed_by"`
	ReviewedAt    *time.Time `json:"reviewed_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

type BakerStats struct {
	BakerID         int64   `json:"baker_id"`
	Role            string  `json:"role"`
	FulfilledOrders int     `json:"fulfilled_orders"`
	ActiveOrders    int     `json:"active_orders"`
	ReviewCount     int     `json:"review_count"`
	AverageRating   float64 `json:"average_rating"`
}

func (r NewOrder) toDomain() ([]order.Item, order.DeliveryInfo, order.PaymentMethod, error) {
	items := make([]order.Item, 0, len(r.Items))
	var errList []error
	for i, in := range r.Items {
		item, err := in.toDomain()
		if err != nil {
			errList = append(errList, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		items = append(items, item)
	}

	delivery, err := order.NewDeliveryInfo(
		r.Delivery.Recipient, r.Delivery.Phone, r.Delivery.Address, r.Delivery.City, r.Delivery.Notes,
	)
	errList = append(errList, err)

	payment, err := order.ParsePaymentMethod(r.PaymentMethod)
	errList = append(errList, err)

	if err = errors.Join(errList...); err != nil {
		return nil, order.DeliveryInfo{}, 0, err
	}
	return items, delivery, payment, nil
}

func (r NewItem) toDomain() (order.Item, error) {
	productID, err := kernel.NewID(r.ProductID)
	if err != nil {
		return order.Item{}, err
	}
	price, err := kernel.ParseMoney(r.UnitPrice)
	if err != nil {
		return order.Item{}, err
	}
	return order.NewItem(productID, r.Name, r.Quantity, price)
}

func optionalID(raw *int64) (*kernel.ID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.NewID(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func toOrder(o queries.OrderResponse) Order {
	items := make([]Item, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, Item{
			ProductID: item.ProductID.Int64(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.String(),
			Subtotal:  item.Subtotal.String(),
		})
	}
	return Order{
		ID:            o.ID.Int64(),
		CustomerID:    o.CustomerID.Int64(),
		MainBakerID:   kernel.RawID(o.MainBakerID),
		JuniorBakerID: kernel.RawID(o.JuniorBakerID),
		Status:        o.Status.String(),
		Items:         items,
		Total:         o.Total.String(),
		PaymentMethod: o.PaymentMethod.String(),
		Delivery: Delivery{
			Recipient: o.Delivery.Recipient,
			Phone:     o.Delivery.Phone,
			Address:   o.Delivery.Address,
			City:      o.Delivery.City,
			Notes:     o.Delivery.Notes,
		},
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func toOrders(in []queries.OrderResponse) []Order {
	out := make([]Order, 0, len(in))
	for _, o := range in {
		out = append(out, toOrder(o))
	}
	return out
}

func toOrderDetail(d queries.GetOrderQueryResponse) OrderDetail {
	history := make([]StatusChange, 0, len(d.History))
	for _, ch := range d.History {
		history = append(history, StatusChange{
			From:    ch.From.String(),
			To:      ch.To.String(),
			ActorID: ch.ActorID.Int64(),
			At:      ch.At,
		})
	}
	detail := OrderDetail{Order: toOrder(d.Order), History: history}
	if d.Review != nil {
		detail.Review = &Review{Rating: d.Review.Rating, Comment: d.Review.Comment}
	}
	return detail
}

func toMessages(in []queries.MessageResponse) []Message {
	out := make([]Message, 0, len(in))
	for _, m := range in {
		out = append(out, Message{
			ID:          m.ID.Int64(),
			SenderID:    m.SenderID.Int64(),
			RecipientID: m.RecipientID.Int64(),
			OrderID:     kernel.RawID(m.OrderID),
			Body:        m.Body,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out
}

func toApplication(a queries.ApplicationResponse) Application {
	return Application{
		ID:            a.ID.Int64(),
		UserID:        a.UserID.Int64(),
		RequestedRole: a.RequestedRole.String(),
		CurrentRole:   a.CurrentRole.String(),
		Experience:    a.Experience,
		Reason:        a.Reason,
		Status:        a.Status.String(),
		ReviewedBy:    kernel.RawID(a.ReviewedBy),
		ReviewedAt:    a.ReviewedAt,
		CreatedAt:     a.CreatedAt,
	}
}

func toApplications(in []queries.ApplicationResponse) []Application {
	out := make([]Application, 0, len(in))
	for _, a := range in {
		out = append(out, toApplication(a))
	}
	return out
}

func toBakerStats(s queries.GetBakerStatsQueryResponse) BakerStats {
	return BakerStats{
		BakerID:         s.BakerID.Int64(),
		Role:            s.Role.String(),
		FulfilledOrders: s.FulfilledOrders,
		ActiveOrders:    s.ActiveOrders,
		ReviewCount:     s.ReviewCount,
		AverageRating:   s.AverageRating,
	}
}
