package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/personal-finance/internal/integration/kvstore"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type staticTokens struct {
	adapter.TokenService
	claims *adapter.TokenClaims
	err    error
}

func (s *staticTokens) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	if token != "good" {
		return nil, domainerror.ErrInvalidToken
	}
	return s.claims, nil
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) dto.Envelope {
	t.Helper()
	var env dto.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()
	tokens := &staticTokens{claims: &adapter.TokenClaims{UserID: userID, Email: "ada@example.com", Role: "user"}}

	router := gin.New()
	router.GET("/me", NewAuthMiddleware(tokens).Authenticate(), func(c *gin.Context) {
		id, ok := GetUserIDFromContext(c)
		require.True(t, ok)
		role, _ := GetUserRoleFromContext(c)
		c.JSON(http.StatusOK, dto.OK(gin.H{"id": id.String(), "role": role}))
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{"missing header", "", http.StatusUnauthorized, string(domainerror.ErrCodeMissingToken)},
		{"not bearer", "Basic abc", http.StatusUnauthorized, string(domainerror.ErrCodeInvalidToken)},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, string(domainerror.ErrCodeMissingToken)},
		{"invalid token", "Bearer bad", http.StatusUnauthorized, string(domainerror.ErrCodeInvalidToken)},
		{"valid token", "Bearer good", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			env := decodeEnvelope(t, w)
			assert.Equal(t, tt.wantStatus == http.StatusOK, env.Success)
			assert.Equal(t, tt.wantCode, env.Code)
		})
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	tokens := &staticTokens{err: domainerror.ErrExpiredToken}
	router := gin.New()
	router.GET("/me", NewAuthMiddleware(tokens).Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, string(domainerror.ErrCodeExpiredToken), decodeEnvelope(t, w).Code)
}

func newLimitedRouter(counter WindowCounter, limit int) *gin.Engine {
	router := gin.New()
	limiter := NewRateLimiter(counter, RatePolicy{Name: "auth", Limit: limit, Window: time.Minute})
	router.POST("/login", limiter.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.OK(nil))
	})
	return router
}

func TestRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	router := newLimitedRouter(kvstore.NewWindowCounter(client), 2)
	hit := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, hit("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, hit("10.0.0.1").Code)

	w := hit("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Equal(t, string(domainerror.ErrCodeRateLimited), decodeEnvelope(t, w).Code)

	assert.Equal(t, http.StatusOK, hit("10.0.0.2").Code, "other callers keep their own budget")

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, hit("10.0.0.1").Code, "window resets")
}

type brokenCounter struct{}

func (brokenCounter) Hit(context.Context, string, time.Duration) (int64, time.Duration, error) {
	return 0, 0, errors.New("connection refused")
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	router := newLimitedRouter(brokenCounter{}, 1)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, 1, retryAfterSeconds(0))
	assert.Equal(t, 2, retryAfterSeconds(1500*time.Millisecond))
	assert.Equal(t, 60, retryAfterSeconds(time.Minute))
}
