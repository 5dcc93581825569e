package controllers

import (
	"net/http"

	"sazonpos/pkg/resp"
	"sazonpos/services"
	"sazonpos/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Service *services.AuthService
}

func NewUserController(s *services.AuthService) *UserController {
	return &UserController{Service: s}
}

// GET /api/usuarios
func (uc *UserController) List(c *gin.Context) {
	users, err := uc.Service.ListUsers(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, users)
}

// POST /api/usuarios
func (uc *UserController) Create(c *gin.Context) {
	var req services.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := uc.Service.CreateUser(c.Request.Context(), &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, user)
}

// DELETE /api/usuarios/:id
func (uc *UserController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := uc.Service.DeleteUser(c.Request.Context(), utils.CurrentUserID(c), id); err != nil {
		resp.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
