// services/menu_service.go
package services

import (
	"context"
	"log"
	"strings"

	"sazonpos/entity"
	"sazonpos/pkg/apperr"
	"sazonpos/repository"
)

type MenuService struct {
	Repo   *repository.MenuRepository
	Events EventPublisher
}

func NewMenuService(repo *repository.MenuRepository, events EventPublisher) *MenuService {
	return &MenuService{Repo: repo, Events: publisherOrNop(events)}
}

// MenuItemReq is the body of create and update. TaxIncluded defaults to true.
type MenuItemReq struct {
	Name        string  `json:"nombre" binding:"required"`
	Price       float64 `json:"precio" binding:"gt=0"`
	Category    string  `json:"categoria" binding:"required"`
	TaxIncluded *bool   `json:"impuesto_incluido"`
	Image       *string `json:"imagen"`
}

func (r *MenuItemReq) apply(item *entity.MenuItem) error {
	name := strings.TrimSpace(r.Name)
	category := strings.TrimSpace(r.Category)
	if name == "" || category == "" {
		return apperr.Validation("nombre and categoria are required")
	}
	if r.Price <= 0 {
		return apperr.Validation("price must be greater than 0")
	}
	item.Name = name
	item.Price = r.Price
	item.Category = entity.Category(category)
	item.TaxIncluded = r.TaxIncluded == nil || *r.TaxIncluded
	item.Image = r.Image
	return nil
}

func (s *MenuService) List(ctx context.Context) ([]entity.MenuItem, error) {
	items, err := s.Repo.List(ctx)
	if err != nil {
		return nil, apperr.Store("could not load menu", err)
	}
	return items, nil
}

func (s *MenuService) Create(ctx context.Context, req *MenuItemReq) (*entity.MenuItem, error) {
	var item entity.MenuItem
	if err := req.apply(&item); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, &item); err != nil {
		return nil, apperr.Store("could not create menu item", err)
	}
	log.Printf("🍽️ menu item added: %s", item.Name)
	s.Events.Publish(Event{Name: EventMenuUpdated})
	return &item, nil
}

func (s *MenuService) Update(ctx context.Context, id uint, req *MenuItemReq) (*entity.MenuItem, error) {
	item, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, classify(err, "menu item not found", "could not load menu item")
	}
	if err := req.apply(item); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, item); err != nil {
		return nil, apperr.Store("could not update menu item", err)
	}
	log.Printf("🍽️ menu item %d updated", id)
	s.Events.Publish(Event{Name: EventMenuUpdated})
	return item, nil
}

func (s *MenuService) Delete(ctx context.Context, id uint) error {
	n, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return apperr.Store("could not delete menu item", err)
	}
	if n == 0 {
		return apperr.NotFound("menu item not found")
	}
	log.Printf("🍽️ menu item %d deleted", id)
	s.Events.Publish(Event{Name: EventMenuUpdated})
	return nil
}
