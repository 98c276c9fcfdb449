package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActivationToken(t *testing.T) {
	re := regexp.MustCompile(`^[0-9a-f]{32}$`)
	seen := map[string]bool{}
	for i := 0; i < 16; i++ {
		tok, err := NewActivationToken()
		require.NoError(t, err)
		assert.Regexp(t, re, tok)
		assert.False(t, seen[tok], "duplicate token %s", tok)
		seen[tok] = true
	}
}

func TestAccessToken_RoundTrip(t *testing.T) {
	id := uuid.New()
	at, err := NewAccessToken("s3cret", id, 15)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), at.Exp, 5*time.Second)

	got, err := ParseAccessToken("s3cret", at.Token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	at, err := NewAccessToken("s3cret", uuid.New(), 15)
	require.NoError(t, err)
	_, err = ParseAccessToken("other", at.Token)
	assert.Error(t, err)
}

func TestParseAccessToken_Expired(t *testing.T) {
	at, err := NewAccessToken("s3cret", uuid.New(), -1)
	require.NoError(t, err)
	_, err = ParseAccessToken("s3cret", at.Token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseAccessToken_NonV4Subject(t *testing.T) {
	v1, err := uuid.NewUUID()
	require.NoError(t, err)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": v1.String(),
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	raw, err := tok.SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, err = ParseAccessToken("s3cret", raw)
	assert.ErrorIs(t, err, ErrInvalidSubject)
}
