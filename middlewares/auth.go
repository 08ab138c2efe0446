package middlewares

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware accepts the staff token either as a bearer header (API
// clients) or from the auth_token cookie set by the login page. Browser
// requests are bounced to /login, API requests get a 401 body.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			tokenStr = strings.TrimPrefix(h, "Bearer ")
		} else if cookie, err := c.Cookie("auth_token"); err == nil {
			tokenStr = cookie
		}
		if tokenStr == "" {
			reject(c)
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			reject(c)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			reject(c)
			return
		}

		var staffID uint
		if v, ok := claims["staffId"].(float64); ok {
			staffID = uint(v)
		}
		var username string
		if v, ok := claims["username"].(string); ok {
			username = v
		}

		c.Set("staffId", staffID)
		c.Set("username", username)
		c.Next()
	}
}

func reject(c *gin.Context) {
	if strings.HasPrefix(c.GetHeader("Accept"), "text/html") {
		c.Redirect(http.StatusSeeOther, "/login")
	} else {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing or invalid token"})
	}
	c.Abort()
}
