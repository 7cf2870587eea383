package queries

import (
	"time"

	"bakery/internal/core/domain/model/application"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/message"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/user"
)

// OrderResponse is the read model of one order.
type OrderResponse struct {
	ID            kernel.ID
	CustomerID    kernel.ID
	MainBakerID   *kernel.ID
	JuniorBakerID *kernel.ID
	Status        order.Status
	Items         []ItemResponse
	Total         kernel.Money
	PaymentMethod order.PaymentMethod
	Delivery      DeliveryResponse
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ItemResponse struct {
	ProductID kernel.ID
	Name      string
	Quantity  int
	UnitPrice kernel.Money
	Subtotal  kernel.Money
}

type DeliveryResponse struct {
	Recipient string
	Phone     string
	Address   string
	City      string
	Notes     string
}

type StatusChangeResponse struct {
	From    order.Status
	To      order.Status
	ActorID kernel.ID
	At      time.Time
}

type ApplicationResponse struct {
	ID            kernel.ID
	UserID        kernel.ID
	RequestedRole user.Role
	CurrentRole   user.Role
	Experience    string
	Reason        string
	Status        application.Status
	ReviewedBy    *kernel.ID
	ReviewedAt    *time.Time
	CreatedAt     time.Time
}

type MessageResponse struct {
	ID          kernel.ID
	SenderID    kernel.ID
	RecipientID kernel.ID
	OrderID     *kernel.ID
	Body        string
	CreatedAt   time.Time
}

// ToOrderResponse builds the read model of an order, also used to render
// command results.
func ToOrderResponse(o *order.Order) OrderResponse {
	items := o.Items()
	resp := OrderResponse{
		ID:            o.ID(),
		CustomerID:    o.CustomerID(),
		MainBakerID:   o.MainBakerID(),
		JuniorBakerID: o.JuniorBakerID(),
		Status:        o.Status(),
		Items:         make([]ItemResponse, 0, len(items)),
		Total:         o.Total(),
		PaymentMethod: o.PaymentMethod(),
		Delivery: DeliveryResponse{
			Recipient: o.DeliveryInfo().Recipient(),
			Phone:     o.DeliveryInfo().Phone(),
			Address:   o.DeliveryInfo().Address(),
			City:      o.DeliveryInfo().City(),
			Notes:     o.DeliveryInfo().Notes(),
		},
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, ItemResponse{
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
			Subtotal:  item.Subtotal(),
		})
	}
	return resp
}

// ToApplicationResponse builds the read model of a baker application.
func ToApplicationResponse(a *application.BakerApplication) ApplicationResponse {
	return ApplicationResponse{
		ID:            a.ID(),
		UserID:        a.UserID(),
		RequestedRole: a.RequestedRole(),
		CurrentRole:   a.CurrentRole(),
		Experience:    a.Experience(),
		Reason:        a.Reason(),
		Status:        a.Status(),
		ReviewedBy:    a.ReviewedBy(),
		ReviewedAt:    a.ReviewedAt(),
		CreatedAt:     a.CreatedAt(),
	}
}

func toMessageResponses(messages []*message.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, MessageResponse{
			ID:          m.ID(),
			SenderID:    m.SenderID(),
			RecipientID: m.RecipientID(),
			OrderID:     m.OrderID(),
			Body:        m.Body(),
			CreatedAt:   m.CreatedAt(),
		})
	}
	return out
}
