package repository

import (
	"context"

	"sazonpos/entity"

	"gorm.io/gorm"
)

type InventoryRepository struct {
	DB *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{DB: db}
}

func (r *InventoryRepository) List(ctx context.Context) ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

// ListLow returns items at or below their minimum threshold.
func (r *InventoryRepository) ListLow(ctx context.Context) ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	err := r.DB.WithContext(ctx).
		Where("quantity <= minimum").
		Order("quantity - minimum ASC, name ASC").
		Find(&items).Error
	return items, err
}

func (r *InventoryRepository) CountLow(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.InventoryItem{}).Where("quantity <= minimum").Count(&n).Error
	return n, err
}

func (r *InventoryRepository) FindByID(ctx context.Context, id uint) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *InventoryRepository) Create(ctx context.Context, item *entity.InventoryItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *InventoryRepository) Update(ctx context.Context, item *entity.InventoryItem) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

// Adjust adds delta (negative to consume) to the stored quantity in one statement.
func (r *InventoryRepository) Adjust(ctx context.Context, id uint, delta float64) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&entity.InventoryItem{}).
		Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", delta))
	return res.RowsAffected, res.Error
}

func (r *InventoryRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.DB.WithContext(ctx).Delete(&entity.InventoryItem{}, id)
	return res.RowsAffected, res.Error
}
