package repository

import (
	"context"

	"github.com/SteampunkGill/Docker-final-assignment/internal/domain/model"
	repo "github.com/SteampunkGill/Docker-final-assignment/internal/repository"

	"gorm.io/gorm"
)

type CartLineGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartLineGormRepository(db *gorm.DB) *CartLineGormRepository {
	return &CartLineGormRepository{db: db}
}

func (r *CartLineGormRepository) ListByIDs(ctx context.Context, ids []int64) ([]model.CartLine, error) {
	if len(ids) == 0 {
		return []model.CartLine{}, nil
	}
	var lines []model.CartLine
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *CartLineGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.CartLine, error) {
	var lines []model.CartLine
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *CartLineGormRepository) FindByID(ctx context.Context, id int64) (model.CartLine, error) {
	var line model.CartLine
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&line).Error
	if isNotFound(err) {
		return model.CartLine{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartLine{}, err
	}
	return line, nil
}

func (r *CartLineGormRepository) FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.CartLine, error) {
	var line model.CartLine
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&line).Error
	if isNotFound(err) {
		return model.CartLine{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartLine{}, err
	}
	return line, nil
}

func (r *CartLineGormRepository) Create(ctx context.Context, line *model.CartLine) error {
	err := r.db.WithContext(ctx).Create(line).Error
	if isUniqueViolation(err) {
		return repo.ErrDuplicateKey
	}
	return err
}

func (r *CartLineGormRepository) UpdateQuantity(ctx context.Context, id int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartLine{}).
		Where("id = ?", id).
		Update("quantity", qty)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// Rows of other users are left alone.
func (r *CartLineGormRepository) DeleteByIDs(ctx context.Context, userID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&model.CartLine{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
