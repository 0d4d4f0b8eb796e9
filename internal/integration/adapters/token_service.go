// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/config"
	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	tokenIssuer = "personal-finance"
)

// RefreshTokenStore is the allow-list of live refresh token ids.
type RefreshTokenStore interface {
	Save(ctx context.Context, tokenID string, userID uuid.UUID, ttl time.Duration) error
	Exists(ctx context.Context, tokenID string) (bool, error)
	Revoke(ctx context.Context, tokenID string) error
}

// CustomClaims represents the custom claims for JWT tokens.
type CustomClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// tokenService implements the adapter.TokenService interface.
type tokenService struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	refreshTokens RefreshTokenStore
	now           func() time.Time
}

// NewTokenService creates a new token service instance.
func NewTokenService(cfg *config.JWTConfig, refreshTokens RefreshTokenStore) adapter.TokenService {
	return &tokenService{
		secret:        []byte(cfg.Secret),
		accessExpiry:  cfg.AccessTokenExpiry,
		refreshExpiry: cfg.RefreshTokenExpiry,
		refreshTokens: refreshTokens,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// GenerateTokenPair signs an access and a refresh token. The refresh token id
// is recorded so it can be revoked.
func (s *tokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email, role string) (*adapter.TokenPair, error) {
	accessToken, _, err := s.generateJWT(userID, email, role, tokenTypeAccess, s.accessExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshID, err := s.generateJWT(userID, email, role, tokenTypeRefresh, s.refreshExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.refreshTokens.Save(ctx, refreshID, userID, s.refreshExpiry); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return &adapter.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *tokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	claims, err := s.parseJWT(token, tokenTypeAccess)
	if err != nil {
		return nil, err
	}
	return toTokenClaims(claims)
}

// ValidateRefreshToken validates a refresh token and checks it was not revoked.
func (s *tokenService) ValidateRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	claims, err := s.parseJWT(token, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	live, err := s.refreshTokens.Exists(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if !live {
		return nil, fmt.Errorf("refresh token revoked: %w", domainerror.ErrInvalidToken)
	}
	return toTokenClaims(claims)
}

// InvalidateRefreshToken revokes a refresh token. Tokens that fail to parse
// are ignored since they can never validate.
func (s *tokenService) InvalidateRefreshToken(ctx context.Context, token string) error {
	claims, err := s.parseJWT(token, tokenTypeRefresh)
	if err != nil {
		return nil
	}
	return s.refreshTokens.Revoke(ctx, claims.ID)
}

func (s *tokenService) generateJWT(userID uuid.UUID, email, role, tokenType string, duration time.Duration) (string, string, error) {
	now := s.now()
	tokenID := uuid.NewString()
	claims := CustomClaims{
		UserID:    userID.String(),
		Email:     email,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   userID.String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", err
	}
	return signed, tokenID, nil
}

func (s *tokenService) parseJWT(tokenString, expectedType string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("failed to parse token: %w", domainerror.ErrExpiredToken)
		}
		return nil, fmt.Errorf("failed to parse token: %w", errors.Join(domainerror.ErrInvalidToken, err))
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims: %w", domainerror.ErrInvalidToken)
	}
	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("expected %s token: %w", expectedType, domainerror.ErrInvalidToken)
	}
	return claims, nil
}

func toTokenClaims(claims *CustomClaims) (*adapter.TokenClaims, error) {
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token: %w", domainerror.ErrInvalidToken)
	}

	return &adapter.TokenClaims{
		UserID:    userID,
		Email:     claims.Email,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
