package controllers

import (
	"net/http"

	"sazonpos/pkg/resp"
	"sazonpos/services"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	Service *services.MenuService
}

func NewMenuController(s *services.MenuService) *MenuController {
	return &MenuController{Service: s}
}

// GET /api/menu
func (ctl *MenuController) List(c *gin.Context) {
	items, err := ctl.Service.List(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, items)
}

// POST /api/menu
func (ctl *MenuController) Create(c *gin.Context) {
	var req services.MenuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := ctl.Service.Create(c.Request.Context(), &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, item)
}

// PUT /api/menu/:id
func (ctl *MenuController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req services.MenuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := ctl.Service.Update(c.Request.Context(), id, &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, item)
}

// DELETE /api/menu/:id
func (ctl *MenuController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := ctl.Service.Delete(c.Request.Context(), id); err != nil {
		resp.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
