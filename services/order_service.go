package services

import (
	"context"
	"log"
	"strings"
	"time"

	"sazonpos/entity"
	"sazonpos/pkg/apperr"
	"sazonpos/repository"

	"gorm.io/gorm"
)

type OrderService struct {
	DB     *gorm.DB
	Repo   *repository.OrderRepository
	Events EventPublisher

	// TaxRate is read once per order so a config reload applies to the next one.
	TaxRate func() float64
	Now     func() time.Time
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	taxRate func() float64,
	events EventPublisher,
) *OrderService {
	if taxRate == nil {
		taxRate = func() float64 { return DefaultTaxRate }
	}
	return &OrderService{
		DB:      db,
		Repo:    repo,
		Events:  publisherOrNop(events),
		TaxRate: taxRate,
		Now:     func() time.Time { return time.Now().UTC() },
	}
}

// ----- DTOs from Controller -----

// OrderItemIn is one unit; repeat an item to order several.
type OrderItemIn struct {
	Name        string  `json:"nombre" binding:"required"`
	Price       float64 `json:"precio" binding:"gt=0"`
	TaxIncluded bool    `json:"impuesto_incluido"`
}

type CreateOrderReq struct {
	Items []OrderItemIn `json:"items" binding:"required,min=1,dive"`
}

type lineGroup struct {
	name  string
	price float64
	qty   int
}

// groupItems collapses repeated names into one line, keeping the first price
// seen for each name and the order names first appeared in.
func groupItems(items []OrderItemIn) []lineGroup {
	index := make(map[string]int, len(items))
	groups := make([]lineGroup, 0, len(items))
	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if i, ok := index[name]; ok {
			groups[i].qty++
			continue
		}
		index[name] = len(groups)
		groups = append(groups, lineGroup{name: name, price: it.Price, qty: 1})
	}
	return groups
}

// ----- Create -----

// Create writes the order header, its grouped lines and the inventory decrement
// in one transaction, then announces the order.
func (s *OrderService) Create(ctx context.Context, req *CreateOrderReq) (*entity.Order, error) {
	if req == nil || len(req.Items) == 0 {
		return nil, apperr.Validation("items is required")
	}

	lines := make([]TaxLine, 0, len(req.Items))
	for _, it := range req.Items {
		if strings.TrimSpace(it.Name) == "" {
			return nil, apperr.Validation("item name is required")
		}
		lines = append(lines, TaxLine{UnitPrice: it.Price, TaxIncluded: it.TaxIncluded})
	}
	totals, err := CalculateTax(lines, s.TaxRate())
	if err != nil {
		return nil, err
	}
	groups := groupItems(req.Items)

	var order entity.Order
	inventoryTouched := false
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order = entity.Order{
			Subtotal:  totals.Subtotal,
			Tax:       totals.Tax,
			Total:     totals.Total,
			CreatedAt: s.Now(),
			Status:    entity.OrderPending,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		order.Lines = make([]entity.OrderLine, 0, len(groups))
		for _, g := range groups {
			l := entity.OrderLine{OrderID: order.ID, Name: g.name, Price: g.price, Quantity: g.qty}
			if err := s.Repo.CreateOrderLine(tx, &l); err != nil {
				return err
			}
			order.Lines = append(order.Lines, l)
		}

		for _, g := range groups {
			n, err := s.Repo.DecrementInventory(tx, g.name, g.qty)
			if err != nil {
				return err
			}
			if n > 0 {
				inventoryTouched = true
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Store("could not create order", err)
	}

	log.Printf("🧾 new order #%d: %d lines, total %.2f", order.ID, len(order.Lines), order.Total)
	s.Events.Publish(Event{Name: EventNewOrder, Data: order})
	if inventoryTouched {
		s.Events.Publish(Event{Name: EventMenuUpdated})
	}
	return &order, nil
}

// ----- Detail & Pending -----

func (s *OrderService) Get(ctx context.Context, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, classify(err, "order not found", "could not load order")
	}
	return o, nil
}

type PendingItem struct {
	Name     string `json:"nombre"`
	Quantity int    `json:"cantidad"`
}

type PendingOrder struct {
	ID        uint               `json:"id"`
	CreatedAt time.Time          `json:"fecha"`
	Status    entity.OrderStatus `json:"estado"`
	Items     []PendingItem      `json:"items"`
}

// ListPending returns the kitchen queue, oldest order first.
func (s *OrderService) ListPending(ctx context.Context) ([]PendingOrder, error) {
	rows, err := s.Repo.ListPendingRows(ctx)
	if err != nil {
		return nil, apperr.Store("could not load pending orders", err)
	}

	out := make([]PendingOrder, 0)
	for _, r := range rows {
		if n := len(out); n == 0 || out[n-1].ID != r.ID {
			out = append(out, PendingOrder{ID: r.ID, CreatedAt: r.CreatedAt, Status: r.Status})
		}
		last := &out[len(out)-1]
		last.Items = append(last.Items, PendingItem{Name: r.Name, Quantity: r.Quantity})
	}
	return out, nil
}
