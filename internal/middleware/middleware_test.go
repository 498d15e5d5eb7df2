package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"karesave-backend/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSessionMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(SessionMiddleware(false))
	router.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, GetSessionID(c))
	})

	t.Run("issues a session", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
		require.Equal(t, http.StatusOK, w.Code)
		id := w.Body.String()
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Header().Get(SessionHeader))
		assert.Contains(t, w.Header().Get("Set-Cookie"), SessionCookie+"="+id)
	})

	t.Run("header wins over cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(SessionHeader, "header-session-1")
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-session-1"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, "header-session-1", w.Body.String())
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-session-1"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, "cookie-session-1", w.Body.String())
	})

	t.Run("malformed header replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(SessionHeader, "bad id!")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.NotEqual(t, "bad id!", w.Body.String())
		assert.Len(t, w.Body.String(), 36)
	})
}

func TestRequestIDAndRecovery(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware(), LoggerMiddleware(zap.NewNop()), RecoveryMiddleware(zap.NewNop()))
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
	assert.Contains(t, w.Body.String(), "internal_error")
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", 1, 1)
	am := NewAuthMiddleware(jwtManager)

	router := gin.New()
	router.GET("/admin", am.AuthRequired(), am.AdminRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c))
	})

	call := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, call("").Code)
	assert.Equal(t, http.StatusUnauthorized, call("Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, call("Bearer nope").Code)

	staff, err := jwtManager.GenerateTokenPair("u-2", "staff", "s@karesave.org")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, call("Bearer "+staff.AccessToken).Code)
	assert.Equal(t, http.StatusUnauthorized, call("Bearer "+staff.RefreshToken).Code)

	admin, err := jwtManager.GenerateTokenPair("u-1", RoleAdmin, "a@karesave.org")
	require.NoError(t, err)
	w := call("Bearer " + admin.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-1", w.Body.String())
}
