package repository

import (
	"context"
	"time"

	"github.com/SteampunkGill/Docker-final-assignment/internal/domain/model"
	repo "github.com/SteampunkGill/Docker-final-assignment/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, order *model.Order) error {
	err := r.db.WithContext(ctx).Create(order).Error
	if isUniqueViolation(err) {
		return repo.ErrDuplicateKey
	}
	return err
}

func (r *OrderGormRepository) FindByOrderNoForUser(ctx context.Context, orderNo string, userID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Where("order_no = ? AND user_id = ?", orderNo, userID).
		First(&o).Error
	if isNotFound(err) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// newest first
func (r *OrderGormRepository) ListByUser(ctx context.Context, f repo.OrderListFilter) ([]model.Order, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Size <= 0 {
		f.Size = 10
	}

	q := r.db.WithContext(ctx).Model(&model.Order{}).Where("user_id = ?", f.UserID)
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []model.Order{}, 0, err
	}

	var items []model.Order
	offset := (f.Page - 1) * f.Size
	if err := q.Order("created_at desc").Order("id desc").
		Limit(f.Size).
		Offset(offset).
		Find(&items).Error; err != nil {
		return []model.Order{}, 0, err
	}

	return items, total, nil
}

func (r *OrderGormRepository) TransitionStatus(ctx context.Context, orderID int64, from model.OrderStatus, to model.OrderStatus, at time.Time) (bool, error) {
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": at,
	}
	switch to {
	case model.OrderStatusPaid:
		updates["payment_time"] = at
	case model.OrderStatusShipped:
		updates["shipping_time"] = at
	case model.OrderStatusCompleted:
		updates["complete_time"] = at
	case model.OrderStatusCanceled:
		updates["cancel_time"] = at
	}

	// guarded by the current status so a concurrent change wins at most once
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
