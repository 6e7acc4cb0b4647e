package jwt

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/astra/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

func newTestHS512(t *testing.T, clk clock.Clocker) *HS512 {
	t.Helper()
	j, err := NewHS512(Config{
		Secret:    []byte(strings.Repeat("k", 64)),
		Issuer:    "astra",
		Audiences: []string{"astra-api"},
		TTL:       time.Minute,
		Clock:     clk,
		UUID:      fixedID("jti-1"),
	})
	require.NoError(t, err)
	return j
}

func TestNewHS512_ShortSecret(t *testing.T) {
	_, err := NewHS512(Config{Secret: []byte("short")})
	assert.ErrorIs(t, err, ErrSigningKeyTooShort)
}

func TestHS512_RoundTrip(t *testing.T) {
	clk := clock.NewFrozen(time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC))
	j := newTestHS512(t, clk)

	token, err := j.Generate(42, "ana@example.com")
	require.NoError(t, err)

	claims, err := j.Verify(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.UserEmail)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "jti-1", claims.ID)
}

func TestHS512_Expired(t *testing.T) {
	clk := clock.NewFrozen(time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC))
	j := newTestHS512(t, clk)

	token, err := j.Generate(1, "a@b.c")
	require.NoError(t, err)

	clk.Advance(2 * time.Minute)
	_, err = j.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHS512_Tampered(t *testing.T) {
	j := newTestHS512(t, clock.NewFrozen(time.Now()))

	token, err := j.Generate(1, "a@b.c")
	require.NoError(t, err)

	_, err = j.Verify(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthContext(t *testing.T) {
	assert.Nil(t, GetAuth(context.Background()))

	ctx := SetAuth(context.Background(), Claims{UserID: 7})
	require.NotNil(t, GetAuth(ctx))
	assert.EqualValues(t, 7, GetAuth(ctx).UserID)
}
