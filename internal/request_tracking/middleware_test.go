package request_tracking

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/vlearn/vlearn-backend/internal/auth"
	"github.com/vlearn/vlearn-backend/internal/config"
)

func newRateLimitRouter(svc *Service, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(string(auth.UserUUIDKey), userID)
		}
		c.Next()
	})
	router.Use(RateLimitMiddleware(svc, testLogger()))
	router.GET("/probe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func doProbe(router *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	setup := func(t *testing.T, enabled, logOnly bool, limit int64) {
		t.Helper()
		setupTestConfig(t, 10, 1)
		config.AppConfig.RateLimitEnabled = enabled
		config.AppConfig.RateLimitLogOnly = logOnly
		config.AppConfig.RateLimitRequestsPerDay = limit
	}

	t.Run("disabled passes through", func(t *testing.T) {
		setup(t, false, false, 10)
		svc := NewService(&fakeStore{count: 999}, testLogger())
		defer svc.Shutdown()

		if w := doProbe(newRateLimitRouter(svc, "u1")); w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("under limit passes", func(t *testing.T) {
		setup(t, true, false, 10)
		svc := NewService(&fakeStore{count: 3}, testLogger())
		defer svc.Shutdown()

		if w := doProbe(newRateLimitRouter(svc, "u1")); w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("over limit blocks", func(t *testing.T) {
		setup(t, true, false, 10)
		svc := NewService(&fakeStore{count: 10}, testLogger())
		defer svc.Shutdown()

		if w := doProbe(newRateLimitRouter(svc, "u1")); w.Code != http.StatusTooManyRequests {
			t.Errorf("status = %d, want 429", w.Code)
		}
	})

	t.Run("over limit in log-only mode passes", func(t *testing.T) {
		setup(t, true, true, 10)
		svc := NewService(&fakeStore{count: 10}, testLogger())
		defer svc.Shutdown()

		if w := doProbe(newRateLimitRouter(svc, "u1")); w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200 in log-only mode", w.Code)
		}
	})

	t.Run("store error fails open", func(t *testing.T) {
		setup(t, true, false, 10)
		svc := NewService(&fakeStore{countErr: errors.New("db down")}, testLogger())
		defer svc.Shutdown()

		if w := doProbe(newRateLimitRouter(svc, "u1")); w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200 (fail open)", w.Code)
		}
	})

	t.Run("unauthenticated request passes through", func(t *testing.T) {
		setup(t, true, false, 10)
		svc := NewService(&fakeStore{count: 999}, testLogger())
		defer svc.Shutdown()

		if w := doProbe(newRateLimitRouter(svc, "")); w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})
}
