package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveStore(t *testing.T) {
	m := New("test")
	m.ObserveStore("document", "find device", 2*time.Millisecond, nil)
	m.ObserveStore("document", "find device", time.Millisecond, errors.New("disk"))

	assert.Equal(t, 2, testutil.CollectAndCount(m.storeDur))
}

func TestMiddlewareCountsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New("test")
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/devices/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for _, path := range []string{"/devices/a", "/devices/b", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.httpReqCnt.WithLabelValues("GET", "/devices/:id", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.httpReqCnt.WithLabelValues("GET", "unmatched", "404")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_http_requests_total")
}
