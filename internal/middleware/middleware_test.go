package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/cyberfanta/shopping-exercise/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/time/rate"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

type stubParser struct {
	principal domain.Principal
	err       error
}

func (p stubParser) Parse(string) (domain.Principal, error) {
	return p.principal, p.err
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantLogged bool
	}{
		{"validation", domain.Validation("quantity must be at least 1"), http.StatusBadRequest, "VALIDATION", false},
		{"empty cart", domain.ErrEmptyCart, http.StatusBadRequest, "EMPTY_CART", false},
		{"insufficient stock", domain.InsufficientStock("Lamp"), http.StatusConflict, "INSUFFICIENT_STOCK", false},
		{"already cancelled", domain.ErrAlreadyCancelled, http.StatusConflict, "ALREADY_CANCELLED", false},
		{"invalid transition", domain.ErrInvalidTransition, http.StatusForbidden, "INVALID_TRANSITION", false},
		{"payment declined", domain.ErrPaymentDeclined, http.StatusPaymentRequired, "PAYMENT_DECLINED", false},
		{"not found", domain.ErrOrderNotFound, http.StatusNotFound, "ORDER_NOT_FOUND", false},
		{"unauthorized", domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS", false},
		{"rate limited", domain.ErrRateLimited, http.StatusTooManyRequests, "RATE_LIMITED", false},
		{"wrapped", errors.Join(errors.New("cause"), domain.ErrCartNotFound), http.StatusNotFound, "CART_NOT_FOUND", false},
		{"unknown", errors.New("pq: connection refused"), http.StatusInternalServerError, "INTERNAL", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.ErrorLevel)

			router := gin.New()
			router.Use(ErrorHandler(zap.New(core)))
			router.GET("/", func(c *gin.Context) {
				_ = c.Error(tt.err)
			})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, tt.wantLogged, logs.Len() == 1)
			if tt.wantLogged {
				assert.Equal(t, "Internal server error", body.Message)
			}
		})
	}
}

func TestInsufficientStockMessage(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler(zap.NewNop()))
	router.GET("/", func(c *gin.Context) {
		_ = c.Error(domain.InsufficientStock("Desk Lamp"))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "Insufficient stock for Desk Lamp", decodeError(t, rec).Message)
}

func TestAuthenticate(t *testing.T) {
	principal := domain.Principal{UserID: uuid.New(), Email: "ana@example.com", Role: domain.RoleUser}

	tests := []struct {
		name       string
		header     string
		parser     stubParser
		admin      bool
		wantStatus int
	}{
		{name: "missing header", parser: stubParser{principal: principal}, wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", parser: stubParser{principal: principal}, wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer abc", parser: stubParser{err: domain.ErrUnauthorized}, wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer abc", parser: stubParser{principal: principal}, wantStatus: http.StatusOK},
		{name: "user on admin route", header: "Bearer abc", parser: stubParser{principal: principal}, admin: true, wantStatus: http.StatusForbidden},
		{
			name:   "admin on admin route",
			header: "Bearer abc",
			parser: stubParser{principal: domain.Principal{UserID: principal.UserID, Role: domain.RoleSuperadmin}},
			admin:  true, wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(ErrorHandler(zap.NewNop()), Authenticate(tt.parser))
			if tt.admin {
				router.Use(RequireAdmin())
			}
			router.GET("/", func(c *gin.Context) {
				got, ok := PrincipalFrom(c)
				require.True(t, ok)
				c.JSON(http.StatusOK, gin.H{"user_id": got.UserID})
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	var seen string
	router := gin.New()
	router.Use(RequestLogger(zap.New(core)))
	router.GET("/ping", func(c *gin.Context) {
		seen = logger.RequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))

	entries := logs.FilterMessage("http_request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-42", fields[logger.RequestIDKey])
	assert.Equal(t, int64(http.StatusNoContent), fields["status"])

	// generated when absent
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	rl := NewRateLimiter(rate.Every(time.Second), 2, time.Minute)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"), "burst exhausted")
	assert.True(t, rl.Allow("10.0.0.2"), "buckets are per ip")

	now = now.Add(time.Second)
	assert.True(t, rl.Allow("10.0.0.1"), "one token refilled")

	now = now.Add(2 * time.Minute)
	assert.True(t, rl.Allow("10.0.0.3"))
	assert.Equal(t, 1, rl.Len(), "idle clients are swept")
}

func TestRateLimiterMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler(zap.NewNop()), NewRateLimiter(rate.Every(time.Hour), 1, time.Hour).Middleware())
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "RATE_LIMITED", decodeError(t, rec).Code)
}

func TestSecurityHeaders(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeaders())
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}
