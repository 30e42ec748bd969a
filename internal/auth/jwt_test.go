package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	t.Parallel()

	j := NewJWT("super-secret", time.Hour)

	tok, err := j.Sign("alice@example.com")
	require.NoError(t, err)

	email, err := j.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", email)
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	j := NewJWT("super-secret", -time.Minute)

	tok, err := j.Sign("alice@example.com")
	require.NoError(t, err)

	_, err = j.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewJWT("right-secret", time.Hour).Sign("alice@example.com")
	require.NoError(t, err)

	_, err = NewJWT("wrong-secret", time.Hour).Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	t.Parallel()

	j := NewJWT("secret", time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := j.Verify(tok)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", hash)

	require.True(t, ComparePassword(hash, "hunter22"))
	require.False(t, ComparePassword(hash, "hunter23"))
}
