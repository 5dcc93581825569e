package services

import (
	"context"
	"log"
	"sort"
	"time"

	"sazonpos/entity"
	"sazonpos/pkg/apperr"
	"sazonpos/repository"
)

const (
	dateLayout   = "2006-01-02"
	topItemLimit = 10
)

type ReportService struct {
	repo      *repository.ReportRepository
	orders    *repository.OrderRepository
	inventory *repository.InventoryRepository
	menu      *repository.MenuRepository

	Location *time.Location
	Now      func() time.Time
}

func NewReportService(
	repo *repository.ReportRepository,
	orders *repository.OrderRepository,
	inventory *repository.InventoryRepository,
	menu *repository.MenuRepository,
) *ReportService {
	return &ReportService{
		repo:      repo,
		orders:    orders,
		inventory: inventory,
		menu:      menu,
		Location:  time.Local,
		Now:       time.Now,
	}
}

type TopItem struct {
	Name     string `json:"nombre"`
	Quantity int    `json:"cantidad"`
}

type SalesReport struct {
	Revenue   float64   `json:"ventaTotal"`
	Dishes    int       `json:"totalPlatillos"`
	Beverages int       `json:"totalBebidas"`
	TopItems  []TopItem `json:"topItems"`
}

// AggregateSales folds joined order lines into a report. Each order's total is
// counted once however many lines it has; lines whose category is neither dish
// nor beverage count toward revenue and top items only.
func AggregateSales(rows []repository.SalesRow) SalesReport {
	report := SalesReport{TopItems: []TopItem{}}
	seenOrders := make(map[uint]struct{})
	itemIndex := make(map[string]int)

	for _, r := range rows {
		if _, ok := seenOrders[r.OrderID]; !ok {
			seenOrders[r.OrderID] = struct{}{}
			report.Revenue += r.Total
		}

		if i, ok := itemIndex[r.Name]; ok {
			report.TopItems[i].Quantity += r.Quantity
		} else {
			itemIndex[r.Name] = len(report.TopItems)
			report.TopItems = append(report.TopItems, TopItem{Name: r.Name, Quantity: r.Quantity})
		}

		if r.Category == nil {
			continue
		}
		switch entity.Category(*r.Category) {
		case entity.CategoryDish:
			report.Dishes += r.Quantity
		case entity.CategoryBeverage:
			report.Beverages += r.Quantity
		}
	}

	sort.SliceStable(report.TopItems, func(i, j int) bool {
		return report.TopItems[i].Quantity > report.TopItems[j].Quantity
	})
	if len(report.TopItems) > topItemLimit {
		report.TopItems = report.TopItems[:topItemLimit]
	}
	return report
}

// Summary reports sales between two calendar days, both inclusive.
func (s *ReportService) Summary(ctx context.Context, fromDay, toDay string) (*SalesReport, error) {
	from, err := time.ParseInLocation(dateLayout, fromDay, s.Location)
	if err != nil {
		return nil, apperr.Validation("fechaInicio must be YYYY-MM-DD")
	}
	to, err := time.ParseInLocation(dateLayout, toDay, s.Location)
	if err != nil {
		return nil, apperr.Validation("fechaFin must be YYYY-MM-DD")
	}
	if to.Before(from) {
		return nil, apperr.Validation("fechaFin is before fechaInicio")
	}
	end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)

	rows, err := s.repo.SalesRows(ctx, from.UTC(), end.UTC())
	if err != nil {
		return nil, apperr.Store("could not load sales", err)
	}
	report := AggregateSales(rows)
	return &report, nil
}

func (s *ReportService) History(ctx context.Context) ([]repository.HistoryRow, error) {
	rows, err := s.repo.History(ctx)
	if err != nil {
		return nil, apperr.Store("could not load sales history", err)
	}
	if rows == nil {
		rows = []repository.HistoryRow{}
	}
	return rows, nil
}

// ResetSales wipes all orders and restarts invoice numbering at 1.
func (s *ReportService) ResetSales(ctx context.Context) error {
	if err := s.repo.ResetSales(ctx); err != nil {
		return apperr.Store("could not reset sales", err)
	}
	log.Println("🧹 sales history reset")
	return nil
}

type Dashboard struct {
	OrdersToday   int64   `json:"ordersToday"`
	RevenueToday  float64 `json:"revenueToday"`
	PendingOrders int64   `json:"pendingOrders"`
	LowStockItems int64   `json:"lowStockItems"`
	MenuItems     int64   `json:"menuItems"`
}

func (s *ReportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := s.Now().In(s.Location)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.Location)

	var d Dashboard
	var err error
	if d.OrdersToday, d.RevenueToday, err = s.repo.DaySummary(ctx, startOfDay.UTC()); err != nil {
		return nil, apperr.Store("count orders today failed", err)
	}
	if d.PendingOrders, err = s.orders.CountByStatus(ctx, entity.OrderPending); err != nil {
		return nil, apperr.Store("count pending orders failed", err)
	}
	if d.LowStockItems, err = s.inventory.CountLow(ctx); err != nil {
		return nil, apperr.Store("count low stock failed", err)
	}
	if d.MenuItems, err = s.menu.Count(ctx); err != nil {
		return nil, apperr.Store("count menu items failed", err)
	}
	return &d, nil
}
