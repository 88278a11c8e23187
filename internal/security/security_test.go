package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSecurityConfig(t *testing.T) {
	config := DefaultSecurityConfig()

	assert.Equal(t, 120, config.MaxRequestsPerMin)
	assert.Contains(t, config.AllowedOrigins, "http://localhost:3000")
	assert.Contains(t, config.AllowedOrigins, "http://localhost:5173")
	assert.Equal(t, 30*time.Second, config.RequestTimeout)
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeadersMiddleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "1; mode=block", w.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestCSPMiddlewareSetsNonce(t *testing.T) {
	router := gin.New()
	router.Use(CSPMiddleware())

	var nonce string
	router.GET("/", func(c *gin.Context) {
		nonce = GetNonce(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)

	require.NotEmpty(t, nonce)
	csp := w.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "script-src 'self' 'nonce-"+nonce+"'")
	assert.Contains(t, csp, "frame-ancestors 'none'")
}

func TestCSPNoncesAreUnique(t *testing.T) {
	first, err := GenerateNonce()
	require.NoError(t, err)
	second, err := GenerateNonce()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValidateContentType(t *testing.T) {
	sm := NewSecurityMiddleware(DefaultSecurityConfig())

	router := gin.New()
	router.Use(sm.ValidateContentType)
	router.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name        string
		contentType string
		wantStatus  int
	}{
		{"json allowed", "application/json", http.StatusOK},
		{"json with charset allowed", "application/json; charset=utf-8", http.StatusOK},
		{"form allowed", "application/x-www-form-urlencoded", http.StatusOK},
		{"missing content type allowed", "", http.StatusOK},
		{"xml rejected", "application/xml", http.StatusUnsupportedMediaType},
		{"plain text rejected", "text/plain", http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequestTimeoutSetsDeadline(t *testing.T) {
	config := DefaultSecurityConfig()
	config.RequestTimeout = 5 * time.Second
	sm := NewSecurityMiddleware(config)

	router := gin.New()
	router.Use(sm.RequestTimeout)

	var hasDeadline bool
	router.GET("/", func(c *gin.Context) {
		_, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)

	assert.True(t, hasDeadline)
	assert.Equal(t, "5", w.Header().Get("X-Timeout"))
}

func TestGlobalRateLimitShedsLoad(t *testing.T) {
	config := DefaultSecurityConfig()
	config.MaxRequestsPerMin = 1
	sm := NewSecurityMiddleware(config)

	router := gin.New()
	router.Use(sm.GlobalRateLimit)
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	blocked := 0
	for i := 0; i < 30; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		router.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			blocked++
		}
	}

	assert.Greater(t, blocked, 0, "Global limiter should shed load past the burst")
}
