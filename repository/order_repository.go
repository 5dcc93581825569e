package repository

import (
	"context"
	"time"

	"sazonpos/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Writes (inside the caller's transaction) ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Omit("Lines").Create(o).Error
}

func (r *OrderRepository) CreateOrderLine(tx *gorm.DB, l *entity.OrderLine) error {
	return tx.Create(l).Error
}

// DecrementInventory subtracts qty from every inventory row named name and
// reports how many rows changed. Zero rows is not an error.
func (r *OrderRepository) DecrementInventory(tx *gorm.DB, name string, qty int) (int64, error) {
	res := tx.Model(&entity.InventoryItem{}).
		Where("name = ?", name).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
	return res.RowsAffected, res.Error
}

// UpdateStatusFromTo moves an order between states only if it is still in from.
func (r *OrderRepository) UpdateStatusFromTo(ctx context.Context, orderID uint, from, to entity.OrderStatus) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ---------------- Reads ----------------

func (r *OrderRepository) GetOrder(ctx context.Context, orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&o, orderID).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// PendingRow is one line of a pending order, flattened by the join.
type PendingRow struct {
	ID        uint
	CreatedAt time.Time
	Status    entity.OrderStatus
	Name      string
	Quantity  int
}

func (r *OrderRepository) ListPendingRows(ctx context.Context) ([]PendingRow, error) {
	var rows []PendingRow
	err := r.DB.WithContext(ctx).Table("orders AS o").
		Select("o.id, o.created_at, o.status, l.name, l.quantity").
		Joins("JOIN order_lines l ON l.order_id = o.id").
		Where("o.status = ?", entity.OrderPending).
		Order("o.id ASC, l.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *OrderRepository) CountByStatus(ctx context.Context, status entity.OrderStatus) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.Order{}).Where("status = ?", status).Count(&n).Error
	return n, err
}
