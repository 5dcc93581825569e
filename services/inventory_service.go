package services

import (
	"context"
	"log"
	"strings"

	"sazonpos/entity"
	"sazonpos/pkg/apperr"
	"sazonpos/repository"
)

type InventoryService struct {
	Repo   *repository.InventoryRepository
	Events EventPublisher
}

func NewInventoryService(repo *repository.InventoryRepository, events EventPublisher) *InventoryService {
	return &InventoryService{Repo: repo, Events: publisherOrNop(events)}
}

// InventoryItemReq creates or edits an item. On create, omitted fields take the
// defaults (0 on hand, "unidades", minimum 5); on update they keep the stored value.
type InventoryItemReq struct {
	Name     string   `json:"nombre" binding:"required"`
	Quantity *float64 `json:"cantidad" binding:"omitempty,gte=0"`
	Unit     string   `json:"unidad"`
	Minimum  *float64 `json:"minimo" binding:"omitempty,gte=0"`
}

type AdjustInventoryReq struct {
	Delta float64 `json:"delta" binding:"required"`
}

// apply overwrites only the fields present in the request.
func (r *InventoryItemReq) apply(item *entity.InventoryItem) error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return apperr.Validation("nombre is required")
	}
	item.Name = name
	if r.Quantity != nil {
		if *r.Quantity < 0 {
			return apperr.Validation("cantidad cannot be negative")
		}
		item.Quantity = *r.Quantity
	}
	if unit := strings.TrimSpace(r.Unit); unit != "" {
		item.Unit = unit
	}
	if r.Minimum != nil {
		if *r.Minimum < 0 {
			return apperr.Validation("minimo cannot be negative")
		}
		item.Minimum = *r.Minimum
	}
	return nil
}

func (s *InventoryService) List(ctx context.Context) ([]entity.InventoryItem, error) {
	items, err := s.Repo.List(ctx)
	if err != nil {
		return nil, apperr.Store("could not load inventory", err)
	}
	return items, nil
}

// LowStock lists items at or below their minimum, most urgent first.
func (s *InventoryService) LowStock(ctx context.Context) ([]entity.InventoryItem, error) {
	items, err := s.Repo.ListLow(ctx)
	if err != nil {
		return nil, apperr.Store("could not load inventory", err)
	}
	return items, nil
}

func (s *InventoryService) Create(ctx context.Context, req *InventoryItemReq) (*entity.InventoryItem, error) {
	item := entity.InventoryItem{
		Unit:    entity.DefaultInventoryUnit,
		Minimum: entity.DefaultInventoryMinimum,
	}
	if err := req.apply(&item); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, &item); err != nil {
		return nil, apperr.Store("could not create inventory item", err)
	}
	log.Printf("📦 inventory item added: %s", item.Name)
	s.Events.Publish(Event{Name: EventMenuUpdated})
	return &item, nil
}

func (s *InventoryService) Update(ctx context.Context, id uint, req *InventoryItemReq) (*entity.InventoryItem, error) {
	item, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, classify(err, "inventory item not found", "could not load inventory item")
	}
	if err := req.apply(item); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, item); err != nil {
		return nil, apperr.Store("could not update inventory item", err)
	}
	s.Events.Publish(Event{Name: EventMenuUpdated})
	return item, nil
}

// Adjust restocks (positive delta) or writes off (negative delta) an item.
func (s *InventoryService) Adjust(ctx context.Context, id uint, delta float64) (*entity.InventoryItem, error) {
	if delta == 0 {
		return nil, apperr.Validation("delta must not be 0")
	}
	n, err := s.Repo.Adjust(ctx, id, delta)
	if err != nil {
		return nil, apperr.Store("could not adjust inventory item", err)
	}
	if n == 0 {
		return nil, apperr.NotFound("inventory item not found")
	}
	item, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, classify(err, "inventory item not found", "could not load inventory item")
	}
	if item.LowStock() {
		log.Printf("⚠️ low stock: %s %.2f %s (min %.2f)", item.Name, item.Quantity, item.Unit, item.Minimum)
	}
	s.Events.Publish(Event{Name: EventMenuUpdated})
	return item, nil
}

func (s *InventoryService) Delete(ctx context.Context, id uint) error {
	n, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return apperr.Store("could not delete inventory item", err)
	}
	if n == 0 {
		return apperr.NotFound("inventory item not found")
	}
	s.Events.Publish(Event{Name: EventMenuUpdated})
	return nil
}
