package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"tableside/pkg/resp"
	"tableside/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
	TTL  time.Duration
}

func NewAuthController(auth *services.AuthService, ttl time.Duration) *AuthController {
	return &AuthController{Auth: auth, TTL: ttl}
}

type loginReq struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// POST /auth/login — accepts the login form or a JSON body. The token goes
// into the auth_token cookie either way so the admin pages work; API
// clients also get it back in the response.
func (ac *AuthController) Login(c *gin.Context) {
	fromForm := c.ContentType() != "application/json"

	var req loginReq
	if err := c.ShouldBind(&req); err != nil {
		if fromForm {
			c.Redirect(http.StatusSeeOther, "/login?msg=Username+and+password+are+required")
			return
		}
		resp.BadRequest(c, err.Error())
		return
	}

	token, err := ac.Auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			if fromForm {
				c.Redirect(http.StatusSeeOther, "/login?msg=Invalid+username+or+password")
				return
			}
			resp.Unauthorized(c, "invalid username or password")
			return
		}
		log.Println("login:", err)
		resp.ServerError(c, errInternal)
		return
	}

	c.SetCookie("auth_token", token, int(ac.TTL.Seconds()), "/", "", false, true)
	if fromForm {
		c.Redirect(http.StatusSeeOther, "/admin")
		return
	}
	resp.OK(c, gin.H{"token": token})
}

// POST /auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}
