package utils

import (
	"sazonpos/entity"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// SetSession stores the authenticated session for later handlers.
func SetSession(c *gin.Context, s *entity.Session) {
	c.Set(sessionKey, s)
	c.Set("userId", s.UserID)
	c.Set("role", s.Role)
}

func CurrentSession(c *gin.Context) *entity.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*entity.Session); ok {
			return s
		}
	}
	return nil
}

func CurrentUserID(c *gin.Context) uint {
	if s := CurrentSession(c); s != nil {
		return s.UserID
	}
	return 0
}

func CurrentRole(c *gin.Context) entity.Role {
	if s := CurrentSession(c); s != nil {
		return s.Role
	}
	return ""
}
