package controllers

import (
	"sazonpos/entity"
	"sazonpos/pkg/resp"
	"sazonpos/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Service *services.OrderService
}

func NewOrderController(s *services.OrderService) *OrderController {
	return &OrderController{Service: s}
}

// POST /api/ordenes
func (oc *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := oc.Service.Create(c.Request.Context(), &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, order)
}

// GET /api/ordenes/:id
func (oc *OrderController) Detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	order, err := oc.Service.Get(c.Request.Context(), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, order)
}

// GET /api/ordenes-pendientes
func (oc *OrderController) Pending(c *gin.Context) {
	orders, err := oc.Service.ListPending(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, orders)
}

// PUT /api/ordenes/:id/lista
func (oc *OrderController) MarkReady(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := oc.Service.MarkReady(c.Request.Context(), id); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, services.OrderStatusChange{ID: id, Status: entity.OrderReady})
}
