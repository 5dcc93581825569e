package repository

import (
	"context"
	"fmt"
	"time"

	"sazonpos/entity"

	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// SalesRow is one order line with its order's total and, when a menu item with
// the same name still exists, that item's category. Menu names are not unique, so
// the join goes through one category per name and each line comes back once.
type SalesRow struct {
	OrderID  uint
	Total    float64
	Name     string
	Quantity int
	Category *string
}

func (r *ReportRepository) SalesRows(ctx context.Context, from, to time.Time) ([]SalesRow, error) {
	var rows []SalesRow
	err := r.db.WithContext(ctx).Table("orders AS o").
		Select("o.id AS order_id, o.total, l.name, l.quantity, m.category").
		Joins("JOIN order_lines l ON l.order_id = o.id").
		Joins("LEFT JOIN (SELECT name, MIN(category) AS category FROM menu_items GROUP BY name) m ON m.name = l.name").
		Where("o.created_at >= ? AND o.created_at <= ?", from, to).
		Order("o.id ASC, l.id ASC").
		Scan(&rows).Error
	return rows, err
}

// HistoryRow is an order header as listed in the sales history.
type HistoryRow struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"fecha"`
	Subtotal  float64   `json:"subtotal"`
	Tax       float64   `json:"isv"`
	Total     float64   `json:"total"`
}

func (r *ReportRepository) History(ctx context.Context) ([]HistoryRow, error) {
	var rows []HistoryRow
	err := r.db.WithContext(ctx).Model(&entity.Order{}).
		Select("id, created_at, subtotal, isv AS tax, total").
		Order("id DESC").
		Scan(&rows).Error
	return rows, err
}

// DaySummary counts orders and revenue created at or after since.
func (r *ReportRepository) DaySummary(ctx context.Context, since time.Time) (count int64, revenue float64, err error) {
	var row struct {
		Count   int64
		Revenue float64
	}
	err = r.db.WithContext(ctx).Model(&entity.Order{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS revenue").
		Where("created_at >= ?", since).
		Scan(&row).Error
	return row.Count, row.Revenue, err
}

// ResetSales deletes every order and line and restarts the order id sequence
// so the next order is number 1.
func (r *ReportRepository) ResetSales(ctx context.Context) error {
	db := r.db.WithContext(ctx)

	switch name := db.Dialector.Name(); name {
	case "postgres":
		return db.Exec("TRUNCATE TABLE order_lines, orders RESTART IDENTITY").Error

	case "mysql":
		if err := r.deleteSales(db); err != nil {
			return err
		}
		// DDL commits implicitly in MySQL, so it runs after the deletes.
		for _, table := range []string{"order_lines", "orders"} {
			if err := db.Exec(fmt.Sprintf("ALTER TABLE %s AUTO_INCREMENT = 1", table)).Error; err != nil {
				return err
			}
		}
		return nil

	case "sqlite":
		return db.Transaction(func(tx *gorm.DB) error {
			if err := r.deleteSales(tx); err != nil {
				return err
			}
			if !tx.Migrator().HasTable("sqlite_sequence") {
				return nil
			}
			return tx.Exec("DELETE FROM sqlite_sequence WHERE name IN ?", []string{"orders", "order_lines"}).Error
		})

	default:
		return fmt.Errorf("sales reset not supported for %s", name)
	}
}

func (r *ReportRepository) deleteSales(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.OrderLine{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.Order{}).Error
	})
}
