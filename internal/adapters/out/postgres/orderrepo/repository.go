package orderrepo

import (
	"context"
	"errors"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
//
// Updates are optimistic: the row is written only while its version column
// still equals the version the aggregate was loaded with.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts the order with its items and the status changes recorded so far.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, items := fromDomain(aggregate)
	dto.ID = 0
	dto.Version = 1

	db := r.db.WithContext(ctx)
	if err := db.Create(&dto).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = dto.ID
	}
	if err := db.Create(&items).Error; err != nil {
		return err
	}

	id := kernel.ID(dto.ID)
	if err := r.appendHistory(ctx, id, aggregate.PullStatusChanges()); err != nil {
		return err
	}

	if err := aggregate.Identify(id); err != nil {
		return err
	}
	aggregate.Versioned(dto.Version)
	return nil
}

// Update writes status and assignment changes and appends the pending status
// changes to the history.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, _ := fromDomain(aggregate)
	version := dto.Version + 1

	db := r.db.WithContext(ctx)
	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"main_baker_id":   dto.MainBakerID,
			"junior_baker_id": dto.JuniorBakerID,
			"status":          dto.Status,
			"updated_at":      dto.UpdatedAt,
			"version":         version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", dto.ID)
		}
		return errs.NewConflictError("order", dto.ID)
	}

	if err := r.appendHistory(ctx, aggregate.ID(), aggregate.PullStatusChanges()); err != nil {
		return err
	}
	aggregate.Versioned(version)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.Int64())
		}
		return nil, err
	}

	orders, err := r.withItems(ctx, []OrderDTO{dto})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

func (r *GormOrderRepository) ListByCustomer(ctx context.Context, customerID kernel.ID) ([]*order.Order, error) {
	return r.find(ctx, newestFirst, "customer_id = ?", customerID.Int64())
}

func (r *GormOrderRepository) ListByMainBaker(ctx context.Context, mainBakerID kernel.ID) ([]*order.Order, error) {
	return r.find(ctx, newestFirst, "main_baker_id = ?", mainBakerID.Int64())
}

func (r *GormOrderRepository) ListByJuniorBaker(ctx context.Context, juniorBakerID kernel.ID) ([]*order.Order, error) {
	return r.find(ctx, newestFirst, "junior_baker_id = ?", juniorBakerID.Int64())
}

func (r *GormOrderRepository) ListUnclaimed(ctx context.Context, createdBefore time.Time) ([]*order.Order, error) {
	return r.find(ctx, oldestFirst,
		"status = ? AND main_baker_id IS NULL AND created_at < ?", int(order.Pending), createdBefore)
}

func (r *GormOrderRepository) ListAll(ctx context.Context) ([]*order.Order, error) {
	return r.find(ctx, newestFirst, "TRUE")
}

func (r *GormOrderRepository) CountByJuniorBaker(
	ctx context.Context,
	juniorBakerID kernel.ID,
	statuses ...order.Status,
) (int, error) {
	if len(statuses) == 0 {
		return 0, nil
	}
	raw := make([]int, 0, len(statuses))
	for _, s := range statuses {
		raw = append(raw, int(s))
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("junior_baker_id = ? AND status IN ?", juniorBakerID.Int64(), raw).
		Count(&count).Error
	return int(count), err
}

func (r *GormOrderRepository) History(ctx context.Context, orderID kernel.ID) ([]order.StatusChange, error) {
	db := r.db.WithContext(ctx)

	var count int64
	if err := db.Model(&OrderDTO{}).Where("id = ?", orderID.Int64()).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errs.NewObjectNotFoundError("order", orderID.Int64())
	}

	var dtos []StatusChangeDTO
	if err := db.Order("id").Find(&dtos, "order_id = ?", orderID.Int64()).Error; err != nil {
		return nil, err
	}

	changes := make([]order.StatusChange, 0, len(dtos))
	for _, dto := range dtos {
		changes = append(changes, changeToDomain(dto))
	}
	return changes, nil
}

const (
	newestFirst = "created_at DESC, id DESC"
	oldestFirst = "created_at, id"
)

func (r *GormOrderRepository) appendHistory(ctx context.Context, id kernel.ID, changes []order.StatusChange) error {
	if len(changes) == 0 {
		return nil
	}
	dtos := changesFromDomain(id, changes)
	return r.db.WithContext(ctx).Create(&dtos).Error
}

func (r *GormOrderRepository) find(ctx context.Context, orderBy string, query string, args ...any) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Where(query, args...).Order(orderBy).Find(&dtos).Error; err != nil {
		return nil, err
	}
	return r.withItems(ctx, dtos)
}

// withItems loads the items of all given orders in one query and restores
// the aggregates in the same order as dtos.
func (r *GormOrderRepository) withItems(ctx context.Context, dtos []OrderDTO) ([]*order.Order, error) {
	if len(dtos) == 0 {
		return []*order.Order{}, nil
	}

	ids := make([]int64, 0, len(dtos))
	for _, dto := range dtos {
		ids = append(ids, dto.ID)
	}

	var items []ItemDTO
	if err := r.db.WithContext(ctx).Order("order_id, position").Find(&items, "order_id IN ?", ids).Error; err != nil {
		return nil, err
	}
	byOrder := make(map[int64][]ItemDTO, len(dtos))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto, byOrder[dto.ID])
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
