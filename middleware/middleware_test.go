package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/sahoadmin/sessions"
	"github.com/princinho/sahoadmin/utils"
	"github.com/stretchr/testify/require"
)

func newGuardedRouter(t *testing.T) (*gin.Engine, *sessions.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hash, err := utils.HashPassword("pw")
	require.NoError(t, err)
	m := sessions.NewManager(sessions.NewMemoryStore(), sessions.NewLocalAuthenticator("admin", hash, time.Hour))

	r := gin.New()
	r.Use(RequireSession(m))
	r.GET("/product-management", func(c *gin.Context) {
		s, ok := CurrentSession(c)
		require.True(t, ok)
		c.String(http.StatusOK, s.UserName)
	})
	r.GET("/api/products", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r, m
}

func TestRequireSessionRedirectsPages(t *testing.T) {
	r, _ := newGuardedRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/product-management?page=2", nil))
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login?return_to=%2Fproduct-management%3Fpage%3D2", w.Header().Get("Location"))
}

func TestRequireSessionRejectsAPI(t *testing.T) {
	r, _ := newGuardedRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"error":"authentication required"}`, w.Body.String())
}

func TestRequireSessionAcceptsCookie(t *testing.T) {
	r, m := newGuardedRouter(t)
	s, err := m.Login(context.Background(), "admin", "pw")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/product-management", nil)
	req.AddCookie(&http.Cookie{Name: sessions.CookieName, Value: s.ID})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "admin", w.Body.String())
}

func TestSafeReturnTo(t *testing.T) {
	require.Equal(t, "/category-management", SafeReturnTo("/category-management"))
	require.Equal(t, "/product-management", SafeReturnTo("https://evil.test"))
	require.Equal(t, "/product-management", SafeReturnTo("//evil.test"))
	require.Equal(t, "/product-management", SafeReturnTo(""))
}
