package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/sahoadmin/dto"
	"github.com/princinho/sahoadmin/middleware"
	"github.com/princinho/sahoadmin/notify"
	"github.com/princinho/sahoadmin/sessions"
)

// GET /login
func (a *App) LoginPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"page":     "login",
			"returnTo": middleware.SafeReturnTo(c.Query("return_to")),
		})
	}
}

// POST /login
func (a *App) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LoginDTO
		if err := c.ShouldBind(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
			return
		}

		s, err := a.Sessions.Login(c.Request.Context(), body.Username, body.Password)
		if err != nil {
			status, msg := http.StatusBadGateway, notify.Describe(err, "Login failed")
			switch {
			case errors.Is(err, sessions.ErrMissingCredentials):
				status, msg = http.StatusBadRequest, "Username and password are required"
			case errors.Is(err, sessions.ErrInvalidCredentials):
				status, msg = http.StatusUnauthorized, "Invalid credentials"
			}
			c.JSON(status, gin.H{"error": msg})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessions.CookieName, s.ID, int(time.Until(s.ExpiresAt).Seconds()), "/", "", a.CookieSecure, true)

		returnTo := middleware.SafeReturnTo(body.ReturnTo)
		if !middleware.WantsJSON(c) {
			c.Redirect(http.StatusSeeOther, returnTo)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user":      s.UserName,
			"expiresAt": s.ExpiresAt,
			"returnTo":  returnTo,
		})
	}
}

// POST /logout
func (a *App) Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(sessions.CookieName)
		if err := a.Sessions.Logout(c.Request.Context(), id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to end session"})
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessions.CookieName, "", -1, "/", "", a.CookieSecure, true)
		if !middleware.WantsJSON(c) {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
