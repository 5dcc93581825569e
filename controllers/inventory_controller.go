package controllers

import (
	"net/http"

	"sazonpos/pkg/resp"
	"sazonpos/services"

	"github.com/gin-gonic/gin"
)

type InventoryController struct {
	Service *services.InventoryService
}

func NewInventoryController(s *services.InventoryService) *InventoryController {
	return &InventoryController{Service: s}
}

// GET /api/inventario
func (ic *InventoryController) List(c *gin.Context) {
	items, err := ic.Service.List(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /api/inventario/alertas
func (ic *InventoryController) LowStock(c *gin.Context) {
	items, err := ic.Service.LowStock(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, items)
}

// POST /api/inventario
func (ic *InventoryController) Create(c *gin.Context) {
	var req services.InventoryItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := ic.Service.Create(c.Request.Context(), &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, item)
}

// PUT /api/inventario/:id
func (ic *InventoryController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req services.InventoryItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := ic.Service.Update(c.Request.Context(), id, &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, item)
}

// POST /api/inventario/:id/ajuste
func (ic *InventoryController) Adjust(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req services.AdjustInventoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := ic.Service.Adjust(c.Request.Context(), id, req.Delta)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, item)
}

// DELETE /api/inventario/:id
func (ic *InventoryController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := ic.Service.Delete(c.Request.Context(), id); err != nil {
		resp.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
