// Package orderrepo maps order aggregates to the orders, order_items and
// order_status_history tables.
package orderrepo

import (
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO is the row of the orders table. Items and history live in their
// own tables and are loaded separately.
type OrderDTO struct {
	ID            int64 `gorm:"primaryKey"`
	CustomerID    int64
	MainBakerID   *int64
	JuniorBakerID *int64
	Status        int
	Total         decimal.Decimal `gorm:"type:numeric(12,2)"`
	PaymentMethod int
	Delivery      DeliveryDTO `gorm:"embedded;embeddedPrefix:delivery_"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int
}

func (OrderDTO) TableName() string {
	return "orders"
}

// DeliveryDTO is embedded into the orders row.
type DeliveryDTO struct {
	Recipient string
	Phone     string
	Address   string
	City      string
	Notes     string
}

// ItemDTO is one line of an order. Position keeps the order of the items
// as placed.
type ItemDTO struct {
	ID        int64 `gorm:"primaryKey"`
	OrderID   int64
	Position  int
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2)"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

// StatusChangeDTO is one row of the audit trail.
type StatusChangeDTO struct {
	ID         int64 `gorm:"primaryKey"`
	OrderID    int64
	FromStatus int
	ToStatus   int
	ActorID    int64
	ChangedAt  time.Time
}

func (StatusChangeDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(o *order.Order) (OrderDTO, []ItemDTO) {
	s := o.Snapshot()
	dto := OrderDTO{
		ID:            s.ID.Int64(),
		CustomerID:    s.CustomerID.Int64(),
		MainBakerID:   kernel.RawID(s.MainBakerID),
		JuniorBakerID: kernel.RawID(s.JuniorBakerID),
		Status:        int(s.Status),
		Total:         s.Total.Decimal(),
		PaymentMethod: int(s.PaymentMethod),
		Delivery: DeliveryDTO{
			Recipient: s.DeliveryInfo.Recipient(),
			Phone:     s.DeliveryInfo.Phone(),
			Address:   s.DeliveryInfo.Address(),
			City:      s.DeliveryInfo.City(),
			Notes:     s.DeliveryInfo.Notes(),
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Version:   s.Version,
	}

	items := make([]ItemDTO, 0, len(s.Items))
	for i, item := range s.Items {
		items = append(items, ItemDTO{
			OrderID:   dto.ID,
			Position:  i,
			ProductID: item.ProductID().Int64(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Decimal(),
		})
	}
	return dto, items
}

func toDomain(dto OrderDTO, itemDTOs []ItemDTO) (*order.Order, error) {
	items := make([]order.Item, 0, len(itemDTOs))
	for _, it := range itemDTOs {
		price, err := kernel.NewMoney(it.UnitPrice)
		if err != nil {
			return nil, err
		}
		item, err := order.NewItem(kernel.ID(it.ProductID), it.Name, it.Quantity, price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	delivery, err := order.NewDeliveryInfo(
		dto.Delivery.Recipient,
		dto.Delivery.Phone,
		dto.Delivery.Address,
		dto.Delivery.City,
		dto.Delivery.Notes,
	)
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:            kernel.ID(dto.ID),
		CustomerID:    kernel.ID(dto.CustomerID),
		MainBakerID:   kernel.OptionalID(dto.MainBakerID),
		JuniorBakerID: kernel.OptionalID(dto.JuniorBakerID),
		Status:        order.Status(dto.Status),
		Items:         items,
		Total:         total,
		PaymentMethod: order.PaymentMethod(dto.PaymentMethod),
		DeliveryInfo:  delivery,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
		Version:       dto.Version,
	})
}

func changesFromDomain(orderID kernel.ID, changes []order.StatusChange) []StatusChangeDTO {
	dtos := make([]StatusChangeDTO, 0, len(changes))
	for _, c := range changes {
		dtos = append(dtos, StatusChangeDTO{
			OrderID:    orderID.Int64(),
			FromStatus: int(c.From),
			ToStatus:   int(c.To),
			ActorID:    c.ActorID.Int64(),
			ChangedAt:  c.At,
		})
	}
	return dtos
}

func changeToDomain(dto StatusChangeDTO) order.StatusChange {
	return order.StatusChange{
		OrderID: kernel.ID(dto.OrderID),
		From:    order.Status(dto.FromStatus),
		To:      order.Status(dto.ToStatus),
		ActorID: kernel.ID(dto.ActorID),
		At:      dto.ChangedAt,
	}
}
