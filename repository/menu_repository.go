package repository

import (
	"context"

	"sazonpos/entity"

	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

// List returns the whole menu sorted by name.
func (r *MenuRepository) List(ctx context.Context) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *MenuRepository) FindByID(ctx context.Context, id uint) (*entity.MenuItem, error) {
	var item entity.MenuItem
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *MenuRepository) Create(ctx context.Context, item *entity.MenuItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *MenuRepository) Update(ctx context.Context, item *entity.MenuItem) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

// Delete removes the row; past order lines keep their copy of the name.
func (r *MenuRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.DB.WithContext(ctx).Delete(&entity.MenuItem{}, id)
	return res.RowsAffected, res.Error
}

func (r *MenuRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.MenuItem{}).Count(&n).Error
	return n, err
}
