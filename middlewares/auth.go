package middlewares

import (
	"context"
	"net/http"
	"strings"

	"sazonpos/entity"
	"sazonpos/pkg/apperr"
	"sazonpos/pkg/resp"
	"sazonpos/utils"

	"github.com/gin-gonic/gin"
)

// SessionCookie holds the signed session token.
const SessionCookie = "pos_session"

const loginPage = "/login.html"

// SessionResolver looks up the live session for a cookie value.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*entity.Session, error)
}

// AuthMiddleware requires a session and, when roles are given, one of those
// roles. Admin passes every role check. API paths get JSON errors; page paths
// are redirected to the login page or shown a denial page.
func AuthMiddleware(auth SessionResolver, roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(SessionCookie)
		authorize(c, auth, token, roles)
	}
}

func authorize(c *gin.Context, auth SessionResolver, token string, roles []entity.Role) {
	sess, err := auth.Resolve(c.Request.Context(), token)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindAuthentication {
			unauthenticated(c)
		} else {
			resp.Fail(c, err)
			c.Abort()
		}
		return
	}
	utils.SetSession(c, sess)

	if !roleAllowed(sess.Role, roles) {
		forbidden(c)
		return
	}
	c.Next()
}

func roleAllowed(role entity.Role, roles []entity.Role) bool {
	if len(roles) == 0 || role == entity.RoleAdmin {
		return true
	}
	for _, r := range roles {
		if role == r {
			return true
		}
	}
	return false
}

func isAPIRequest(c *gin.Context) bool {
	p := c.Request.URL.Path
	return p == "/api" || strings.HasPrefix(p, "/api/") || p == "/ws" || strings.HasPrefix(p, "/ws/")
}

func unauthenticated(c *gin.Context) {
	if isAPIRequest(c) {
		resp.Unauthorized(c, "not authenticated")
		c.Abort()
		return
	}
	c.Redirect(http.StatusFound, loginPage)
	c.Abort()
}

const deniedPage = `<!DOCTYPE html>
<html lang="es">
<head><meta charset="utf-8"><title>Acceso denegado</title></head>
<body>
<h1>Acceso denegado</h1>
<p>Tu usuario no tiene permiso para ver esta página.</p>
<p><a href="/login.html">Cambiar de usuario</a></p>
</body>
</html>
`

func forbidden(c *gin.Context) {
	if isAPIRequest(c) {
		resp.Forbidden(c, "forbidden")
		c.Abort()
		return
	}
	c.Data(http.StatusForbidden, "text/html; charset=utf-8", []byte(deniedPage))
	c.Abort()
}
