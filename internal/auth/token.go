// Package auth issues, verifies and revokes bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// Issuer is the iss claim of every token this service signs.
	Issuer = "socialposts-api"
	// Audience is the aud claim of every token this service signs.
	Audience = "socialposts-client"

	revokedKeyPrefix = "blacklist:"
)

var (
	// ErrInvalidToken covers malformed, expired, mis-signed or foreign tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrRevokedToken is returned for tokens whose jti was revoked on logout.
	ErrRevokedToken = errors.New("token has been revoked")
	// ErrRevocationUnavailable is returned by Revoke when no Redis client is configured.
	ErrRevocationUnavailable = errors.New("token revocation store unavailable")
)

// Claims is the verified identity carried by a bearer token.
type Claims struct {
	UserID    uint
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager signs HS256 tokens and checks revocation in Redis.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	redis  *redis.Client
	now    func() time.Time
}

// NewTokenManager creates a TokenManager. rdb may be nil, in which case
// revocation is neither checked nor possible.
func NewTokenManager(secret string, ttl time.Duration, rdb *redis.Client) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		redis:  rdb,
		now:    time.Now,
	}
}

// Issue signs a token for the given user.
func (m *TokenManager) Issue(userID uint, email string) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := m.now()
	claims := tokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        generateJTI(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses the token, validates its registered claims and checks that
// its jti has not been revoked.
func (m *TokenManager) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	var parsed tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &parsed, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(parsed.Subject, 10, 32)
	if err != nil || userID == 0 {
		return nil, ErrInvalidToken
	}

	claims := &Claims{
		UserID:    uint(userID),
		Email:     parsed.Email,
		TokenID:   parsed.ID,
		ExpiresAt: parsed.ExpiresAt.Time,
	}

	// A Redis outage does not lock every user out; the lookup fails open.
	if claims.TokenID != "" && m.redis != nil {
		revoked, err := m.redis.Exists(ctx, revokedKeyPrefix+claims.TokenID).Result()
		if err == nil && revoked > 0 {
			return nil, ErrRevokedToken
		}
	}

	return claims, nil
}

// Revoke blacklists the token's jti until the token would have expired anyway.
func (m *TokenManager) Revoke(ctx context.Context, claims *Claims) error {
	if m.redis == nil {
		return ErrRevocationUnavailable
	}
	if claims == nil || claims.TokenID == "" {
		return ErrInvalidToken
	}

	ttl := claims.ExpiresAt.Sub(m.now())
	if ttl <= 0 {
		return nil
	}
	if err := m.redis.Set(ctx, revokedKeyPrefix+claims.TokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8])
}
