package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// CompressionConfig holds configuration for response compression
type CompressionConfig struct {
	CompressionLevel int      // Gzip level (1-9)
	ExcludedPaths    []string // Path prefixes that are never compressed
}

// DefaultCompressionConfig returns the default compression configuration.
// Chart geometry responses carry many repeated float fields and compress
// well; pprof output is already binary so profiling paths are excluded.
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		CompressionLevel: 6,
		ExcludedPaths:    []string{"/debug/pprof"},
	}
}

// CompressionMiddleware provides gzip compression for API responses
type CompressionMiddleware struct {
	config CompressionConfig
	stats  *CompressionStats
	pool   sync.Pool
}

// NewCompressionMiddleware creates a new compression middleware
func NewCompressionMiddleware(config CompressionConfig) *CompressionMiddleware {
	if config.CompressionLevel < gzip.BestSpeed || config.CompressionLevel > gzip.BestCompression {
		config.CompressionLevel = gzip.DefaultCompression
	}
	level := config.CompressionLevel
	return &CompressionMiddleware{
		config: config,
		stats:  &CompressionStats{},
		pool: sync.Pool{
			New: func() interface{} {
				gz, _ := gzip.NewWriterLevel(io.Discard, level)
				return gz
			},
		},
	}
}

// Handler returns the Gin middleware function. It swaps the response
// writer for a gzip wrapper when the client advertises gzip support.
func (cm *CompressionMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cm.shouldCompress(c.Request) {
			cm.stats.record(0, 0, false)
			c.Next()
			return
		}

		gz := cm.pool.Get().(*gzip.Writer)
		gz.Reset(c.Writer)

		c.Header("Content-Encoding", "gzip")
		c.Header("Vary", "Accept-Encoding")

		gzw := &gzipWriter{ResponseWriter: c.Writer, gzipWriter: gz}
		c.Writer = gzw

		defer func() {
			gz.Close()
			cm.pool.Put(gz)
			c.Header("Content-Length", strconv.Itoa(c.Writer.Size()))
			cm.stats.record(gzw.rawBytes, int64(c.Writer.Size()), true)
		}()

		c.Next()
	}
}

func (cm *CompressionMiddleware) shouldCompress(r *http.Request) bool {
	if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
		return false
	}
	// WebSocket upgrades and already-encoded ranges must pass through
	if r.Header.Get("Connection") == "Upgrade" || r.Header.Get("Range") != "" {
		return false
	}
	for _, prefix := range cm.config.ExcludedPaths {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return false
		}
	}
	return true
}

// GetStats returns current compression statistics
func (cm *CompressionMiddleware) GetStats() map[string]interface{} {
	return cm.stats.snapshot()
}

// gzipWriter wraps a gin.ResponseWriter, routing the body through gzip
// while counting the uncompressed bytes for the stats
type gzipWriter struct {
	gin.ResponseWriter
	gzipWriter *gzip.Writer
	rawBytes   int64
}

func (gzw *gzipWriter) Write(data []byte) (int, error) {
	gzw.rawBytes += int64(len(data))
	return gzw.gzipWriter.Write(data)
}

func (gzw *gzipWriter) WriteString(s string) (int, error) {
	gzw.rawBytes += int64(len(s))
	return io.WriteString(gzw.gzipWriter, s)
}

// WriteHeader drops any Content-Length set by a handler; the compressed
// length is only known once the stream is closed
func (gzw *gzipWriter) WriteHeader(statusCode int) {
	gzw.Header().Del("Content-Length")
	gzw.ResponseWriter.WriteHeader(statusCode)
}

// CompressionStats tracks compression statistics
type CompressionStats struct {
	totalRequests      int64
	compressedRequests int64
	rawBytes           int64
	compressedBytes    int64
	mutex              sync.RWMutex
}

func (cs *CompressionStats) record(rawSize, compressedSize int64, compressed bool) {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	cs.totalRequests++
	if compressed {
		cs.compressedRequests++
		cs.rawBytes += rawSize
		cs.compressedBytes += compressedSize
	}
}

func (cs *CompressionStats) snapshot() map[string]interface{} {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	ratio := float64(0)
	if cs.rawBytes > 0 {
		ratio = float64(cs.compressedBytes) / float64(cs.rawBytes)
	}

	return map[string]interface{}{
		"total_requests":      cs.totalRequests,
		"compressed_requests": cs.compressedRequests,
		"raw_bytes":           cs.rawBytes,
		"compressed_bytes":    cs.compressedBytes,
		"compression_ratio":   ratio,
	}
}
