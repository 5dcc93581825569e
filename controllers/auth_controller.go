package controllers

import (
	"net/http"
	"time"

	"sazonpos/middlewares"
	"sazonpos/pkg/resp"
	"sazonpos/services"
	"sazonpos/utils"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	Service      *services.AuthService
	TTL          time.Duration
	SecureCookie bool
}

func NewAuthController(s *services.AuthService, ttl time.Duration, secure bool) *AuthController {
	return &AuthController{Service: s, TTL: ttl, SecureCookie: secure}
}

// POST /api/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "username and password are required")
		return
	}

	token, sess, err := a.Service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		resp.Fail(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.SessionCookie, token, int(a.TTL.Seconds()), "/", "", a.SecureCookie, true)
	resp.OK(c, gin.H{
		"id": sess.UserID, "username": sess.Username, "role": sess.Role, "expiresAt": sess.ExpiresAt,
	})
}

// POST /api/logout
func (a *AuthController) Logout(c *gin.Context) {
	if sess := utils.CurrentSession(c); sess != nil {
		if err := a.Service.Logout(c.Request.Context(), sess.ID); err != nil {
			resp.Fail(c, err)
			return
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.SessionCookie, "", -1, "/", "", a.SecureCookie, true)
	resp.OK(c, gin.H{"message": "logged out"})
}

// GET /api/me
func (a *AuthController) Me(c *gin.Context) {
	sess := utils.CurrentSession(c)
	resp.OK(c, gin.H{
		"id": sess.UserID, "username": sess.Username, "role": sess.Role, "expiresAt": sess.ExpiresAt,
	})
}
