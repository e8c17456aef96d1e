package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"boardsync/internal/shared/logger"
)

func performWithIP(allowed []string, remoteAddr string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	log := logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler))

	engine := gin.New()
	engine.Use(TrustedIPs(allowed, log))
	engine.GET("/guarded", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestTrustedIPsEmptyListAllowsAll(t *testing.T) {
	w := performWithIP(nil, "203.0.113.7:12345")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTrustedIPsExactMatch(t *testing.T) {
	w := performWithIP([]string{"203.0.113.7"}, "203.0.113.7:12345")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTrustedIPsCIDRMatch(t *testing.T) {
	w := performWithIP([]string{"203.0.113.0/24"}, "203.0.113.99:12345")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTrustedIPsRejectsUnknown(t *testing.T) {
	w := performWithIP([]string{"203.0.113.7"}, "198.51.100.1:12345")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
