package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMiddleware_Blocks(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(0.001, 2)) // tiny refill rate, burst of 2
	r.GET("/limited", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/limited", nil)
		req.RemoteAddr = "10.1.2.3:4000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	require.Equal(t, http.StatusOK, codes[0])
	require.Equal(t, http.StatusOK, codes[1])
	require.Equal(t, http.StatusTooManyRequests, codes[2])
}

func TestRateLimitMiddleware_KeysAreIndependent(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(0.001, 1))
	r.GET("/limited2", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	req1 := httptest.NewRequest("GET", "/limited2", nil)
	req1.RemoteAddr = "10.9.9.1:1000"
	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, req1)
	require.Equal(t, http.StatusOK, w1.Code)

	// exhausted for first IP
	req2 := httptest.NewRequest("GET", "/limited2", nil)
	req2.RemoteAddr = "10.9.9.1:1000"
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req2)
	require.Equal(t, http.StatusTooManyRequests, w2.Code)

	// a different IP still gets through
	req3 := httptest.NewRequest("GET", "/limited2", nil)
	req3.RemoteAddr = "10.9.9.2:1000"
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, req3)
	require.Equal(t, http.StatusOK, w3.Code)
}
