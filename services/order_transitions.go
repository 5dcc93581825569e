package services

import (
	"context"
	"log"

	"sazonpos/entity"
	"sazonpos/pkg/apperr"
)

// OrderStatusChange is the payload of EventOrderStatus.
type OrderStatusChange struct {
	ID     uint               `json:"id"`
	Status entity.OrderStatus `json:"estado"`
}

// MarkReady moves a pending order to ready. Ready is terminal.
func (s *OrderService) MarkReady(ctx context.Context, orderID uint) error {
	ok, err := s.Repo.UpdateStatusFromTo(ctx, orderID, entity.OrderPending, entity.OrderReady)
	if err != nil {
		return apperr.Store("could not update order", err)
	}
	if !ok {
		if _, err := s.Repo.GetOrder(ctx, orderID); err != nil {
			return classify(err, "order not found", "could not update order")
		}
		return apperr.Conflict("order is already ready")
	}

	log.Printf("✅ order #%d ready", orderID)
	s.Events.Publish(Event{
		Name: EventOrderStatus,
		Data: OrderStatusChange{ID: orderID, Status: entity.OrderReady},
	})
	return nil
}
