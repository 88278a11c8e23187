package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompressedRouter(cm *CompressionMiddleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(cm.Handler())
	r.GET("/payload", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"data": strings.Repeat("compressible ", 200),
		})
	})
	return r
}

func TestCompressionAppliedForGzipClients(t *testing.T) {
	cm := NewCompressionMiddleware(DefaultCompressionConfig())
	r := newCompressedRouter(cm)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/payload", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	assert.Equal(t, "Accept-Encoding", w.Header().Get("Vary"))

	gz, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Contains(t, string(body), "compressible")
}

func TestCompressionSkippedWithoutAcceptHeader(t *testing.T) {
	cm := NewCompressionMiddleware(DefaultCompressionConfig())
	r := newCompressedRouter(cm)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/payload", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Contains(t, w.Body.String(), "compressible")
}

func TestCompressionSkipsExcludedPaths(t *testing.T) {
	cm := NewCompressionMiddleware(CompressionConfig{
		CompressionLevel: 6,
		ExcludedPaths:    []string{"/payload"},
	})
	r := newCompressedRouter(cm)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/payload", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
}

func TestCompressionStats(t *testing.T) {
	cm := NewCompressionMiddleware(DefaultCompressionConfig())
	r := newCompressedRouter(cm)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/payload", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	stats := cm.GetStats()
	assert.EqualValues(t, 3, stats["total_requests"])
	assert.EqualValues(t, 3, stats["compressed_requests"])

	ratio, ok := stats["compression_ratio"].(float64)
	require.True(t, ok)
	assert.Greater(t, ratio, 0.0)
	assert.Less(t, ratio, 1.0, "repetitive JSON should shrink")
}

func TestCompressionInvalidLevelFallsBack(t *testing.T) {
	cm := NewCompressionMiddleware(CompressionConfig{CompressionLevel: 42})
	assert.Equal(t, gzip.DefaultCompression, cm.config.CompressionLevel)
}
