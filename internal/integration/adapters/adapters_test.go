package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/personal-finance/config"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/integration/kvstore"
)

func newTestTokenService(t *testing.T) *tokenService {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: time.Hour,
	}
	return NewTokenService(cfg, kvstore.NewRefreshTokenStore(client)).(*tokenService)
}

func TestTokenService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestTokenService(t)
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(ctx, userID, "ada@example.com", "user")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)

	claims, err = svc.ValidateRefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestTokenService_TokenTypesAreNotInterchangeable(t *testing.T) {
	ctx := context.Background()
	svc := newTestTokenService(t)

	pair, err := svc.GenerateTokenPair(ctx, uuid.New(), "ada@example.com", "user")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)

	_, err = svc.ValidateRefreshToken(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
}

func TestTokenService_InvalidatedRefreshTokenIsRejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestTokenService(t)

	pair, err := svc.GenerateTokenPair(ctx, uuid.New(), "ada@example.com", "user")
	require.NoError(t, err)

	require.NoError(t, svc.InvalidateRefreshToken(ctx, pair.RefreshToken))

	_, err = svc.ValidateRefreshToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)

	assert.NoError(t, svc.InvalidateRefreshToken(ctx, "not-a-token"))
}

func TestTokenService_ExpiredAccessToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestTokenService(t)
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }

	pair, err := svc.GenerateTokenPair(ctx, uuid.New(), "ada@example.com", "user")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, domainerror.ErrExpiredToken)
}

func TestTokenService_RejectsForeignSignature(t *testing.T) {
	ctx := context.Background()
	svc := newTestTokenService(t)
	other := newTestTokenService(t)
	other.secret = []byte("another-secret")

	pair, err := other.GenerateTokenPair(ctx, uuid.New(), "ada@example.com", "user")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
}

func TestPasswordService(t *testing.T) {
	svc := NewPasswordService().(*passwordService)
	svc.cost = 4

	t.Run("hash and verify", func(t *testing.T) {
		hash, err := svc.HashPassword("Str0ng!pass")
		require.NoError(t, err)
		assert.NotEqual(t, "Str0ng!pass", hash)
		assert.NoError(t, svc.VerifyPassword(hash, "Str0ng!pass"))
		assert.Error(t, svc.VerifyPassword(hash, "wrong"))
	})

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Str0ng!pass", false},
		{"too short", "S0!a", true},
		{"no uppercase", "str0ng!pass", true},
		{"no lowercase", "STR0NG!PASS", true},
		{"no digit", "Strong!pass", true},
		{"no special", "Str0ngpass", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidatePasswordStrength(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGeminiService_Unconfigured(t *testing.T) {
	svc := NewGeminiService(&config.GeminiConfig{Model: "gemini-1.5-flash"})
	assert.False(t, svc.IsAvailable())
	assert.ErrorIs(t, svc.Ping(context.Background()), errGeminiNotConfigured)

	_, err := svc.Generate(context.Background(), "hello")
	assert.ErrorIs(t, err, errGeminiNotConfigured)
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello, "), genai.Text("world")}},
		}},
	}
	text, err := responseText(resp)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world", text)

	_, err = responseText(&genai.GenerateContentResponse{})
	assert.Error(t, err)
}
