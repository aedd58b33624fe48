package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS())
	router.Any("/x", func(c *gin.Context) {
		c.String(http.StatusTeapot, "reached")
	})

	t.Run("Preflight", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/x", nil))

		if rr.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", rr.Code)
		}
		if rr.Body.Len() != 0 {
			t.Errorf("Expected empty body, got %q", rr.Body.String())
		}
		for k, v := range CORSHeaders() {
			if got := rr.Header().Get(k); got != v {
				t.Errorf("Header %s: expected %q, got %q", k, v, got)
			}
		}
	})

	t.Run("PassThrough", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/x", nil))

		if rr.Code != http.StatusTeapot {
			t.Errorf("Expected handler to run, got %d", rr.Code)
		}
		if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Expected CORS origin header, got %q", got)
		}
	})
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	t.Run("Generated", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))

		id := rr.Header().Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("Expected generated UUID, got %q", id)
		}
		if rr.Body.String() != id {
			t.Errorf("Expected context request ID %q, got %q", id, rr.Body.String())
		}
	})

	t.Run("Propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if got := rr.Header().Get("X-Request-ID"); got != "abc-123" {
			t.Errorf("Expected propagated request ID, got %q", got)
		}
	})
}

func TestErrorHandler(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/private", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})
	router.GET("/public", func(c *gin.Context) {
		_ = c.Error(errors.New("bad input")).SetType(gin.ErrorTypePublic)
	})
	router.GET("/written", func(c *gin.Context) {
		_ = c.Error(errors.New("already handled"))
		c.JSON(http.StatusTeapot, gin.H{"error": "handled"})
	})

	tests := []struct {
		path   string
		status int
	}{
		{"/private", http.StatusInternalServerError},
		{"/public", http.StatusBadRequest},
		{"/written", http.StatusTeapot},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))

			if rr.Code != tc.status {
				t.Errorf("Expected %d, got %d", tc.status, rr.Code)
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(Recovery())
	router.GET("/panic", func(c *gin.Context) {
		panic("unexpected")
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rr.Code)
	}
	if rr.Body.String() != `{"error":"Internal server error"}` {
		t.Errorf("Unexpected body %q", rr.Body.String())
	}
}

func TestStructuredLoggerAndPerformanceMonitor(t *testing.T) {
	router := gin.New()
	router.Use(RequestID(), StructuredLogger(), PerformanceMonitor(time.Nanosecond))
	router.POST("/x", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nope"})
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/x", nil))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rr.Code)
	}
	if rr.Body.String() != `{"error":"nope"}` {
		t.Errorf("Response body should pass through unchanged, got %q", rr.Body.String())
	}
}
