package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

func newManager(t *testing.T) (*TokenManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewTokenManager(testSecret, time.Hour, rdb), mr
}

func signRaw(t *testing.T, claims jwt.Claims, method jwt.SigningMethod, key any) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m, _ := newManager(t)

	token, err := m.Issue(42, "alice@example.com")
	require.NoError(t, err)

	claims, err := m.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.NotEmpty(t, claims.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestTokenManager_VerifyRejects(t *testing.T) {
	m, _ := newManager(t)
	now := time.Now()

	valid := func() jwt.RegisteredClaims {
		return jwt.RegisteredClaims{
			Subject:   "7",
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        "jti-1",
		}
	}

	tests := []struct {
		name  string
		token func() string
	}{
		{"malformed", func() string { return "malformed.token.here" }},
		{"expired", func() string {
			c := valid()
			c.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))
			return signRaw(t, c, jwt.SigningMethodHS256, []byte(testSecret))
		}},
		{"missing expiry", func() string {
			c := valid()
			c.ExpiresAt = nil
			return signRaw(t, c, jwt.SigningMethodHS256, []byte(testSecret))
		}},
		{"wrong issuer", func() string {
			c := valid()
			c.Issuer = "someone-else"
			return signRaw(t, c, jwt.SigningMethodHS256, []byte(testSecret))
		}},
		{"wrong audience", func() string {
			c := valid()
			c.Audience = jwt.ClaimStrings{"other-client"}
			return signRaw(t, c, jwt.SigningMethodHS256, []byte(testSecret))
		}},
		{"wrong secret", func() string {
			return signRaw(t, valid(), jwt.SigningMethodHS256, []byte("another-secret-another-secret-another"))
		}},
		{"wrong algorithm", func() string {
			return signRaw(t, valid(), jwt.SigningMethodHS512, []byte(testSecret))
		}},
		{"non numeric subject", func() string {
			c := valid()
			c.Subject = "alice"
			return signRaw(t, c, jwt.SigningMethodHS256, []byte(testSecret))
		}},
		{"zero subject", func() string {
			c := valid()
			c.Subject = "0"
			return signRaw(t, c, jwt.SigningMethodHS256, []byte(testSecret))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := m.Verify(context.Background(), tt.token())
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestTokenManager_Revoke(t *testing.T) {
	m, mr := newManager(t)
	ctx := context.Background()

	token, err := m.Issue(1, "bob@example.com")
	require.NoError(t, err)
	claims, err := m.Verify(ctx, token)
	require.NoError(t, err)

	require.NoError(t, m.Revoke(ctx, claims))
	assert.True(t, mr.Exists("blacklist:"+claims.TokenID))
	assert.InDelta(t, time.Hour.Seconds(), mr.TTL("blacklist:"+claims.TokenID).Seconds(), 5)

	_, err = m.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrRevokedToken)

	other, err := m.Issue(1, "bob@example.com")
	require.NoError(t, err)
	_, err = m.Verify(ctx, other)
	assert.NoError(t, err, "revoking one token must not affect others")
}

func TestTokenManager_WithoutRedis(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, nil)
	ctx := context.Background()

	token, err := m.Issue(3, "carol@example.com")
	require.NoError(t, err)
	claims, err := m.Verify(ctx, token)
	require.NoError(t, err)

	assert.ErrorIs(t, m.Revoke(ctx, claims), ErrRevocationUnavailable)
}

func TestTokenManager_VerifyFailsOpenWhenRedisDown(t *testing.T) {
	m, mr := newManager(t)
	token, err := m.Issue(5, "dave@example.com")
	require.NoError(t, err)

	mr.Close()

	claims, err := m.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint(5), claims.UserID)
}

func TestTokenManager_IssueWithoutSecret(t *testing.T) {
	m := NewTokenManager("", time.Hour, nil)
	_, err := m.Issue(1, "x@example.com")
	assert.Error(t, err)
}
