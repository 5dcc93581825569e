// middlewares/ws_auth.go
package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// WSAuthMiddleware authenticates a websocket upgrade. Browsers send the session
// cookie; other clients may pass the same token as ?token= or a Bearer header.
func WSAuthMiddleware(auth SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(SessionCookie)
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
				token = strings.TrimPrefix(h, "Bearer ")
			}
		}
		authorize(c, auth, token, nil)
	}
}
