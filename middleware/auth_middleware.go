package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princinho/sahoadmin/models"
	"github.com/princinho/sahoadmin/sessions"
)

const ctxKeySession = "session"

// RequireSession lets a request through only with an active session.
// Pages are redirected to /login?return_to=..., API calls get a 401.
func RequireSession(m *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(sessions.CookieName)
		s, err := m.Current(c.Request.Context(), id)
		if err == nil {
			c.Set(ctxKeySession, s)
			c.Next()
			return
		}

		if WantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		returnTo := c.Request.URL.RequestURI()
		c.Redirect(http.StatusFound, "/login?return_to="+url.QueryEscape(returnTo))
		c.Abort()
	}
}

// CurrentSession returns the session RequireSession stored.
func CurrentSession(c *gin.Context) (*models.Session, bool) {
	v, ok := c.Get(ctxKeySession)
	if !ok {
		return nil, false
	}
	s, ok := v.(*models.Session)
	return s, ok
}

func WantsJSON(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		return true
	}
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}

// SafeReturnTo keeps return_to on this site.
func SafeReturnTo(v string) string {
	if v == "" || !strings.HasPrefix(v, "/") || strings.HasPrefix(v, "//") || strings.HasPrefix(v, "/\\") {
		return "/product-management"
	}
	return v
}
