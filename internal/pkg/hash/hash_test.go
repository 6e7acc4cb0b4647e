package hash

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPassword(t *testing.T) {
	for _, algo := range []string{"", "bcrypt", "ARGON2ID"} {
		t.Run("algo="+algo, func(t *testing.T) {
			h, err := NewPassword(PasswordOptions{Algorithm: algo, Pepper: "pep", BcryptCost: 4, Argon2MemoryKiB: 1024})
			require.NoError(t, err)

			hashed, err := h.Hash("correct horse")
			require.NoError(t, err)

			assert.True(t, h.Verify(string(hashed), "correct horse"))
			assert.False(t, h.Verify(string(hashed), "wrong horse"))
		})
	}

	_, err := NewPassword(PasswordOptions{Algorithm: "md5"})
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
}

func TestArgon2id_RejectsMalformed(t *testing.T) {
	a := NewArgon2id("")
	assert.False(t, a.Verify("$argon2i$v=19$m=1,t=1,p=1$aa$bb", "x"))
	assert.False(t, a.Verify("garbage", "x"))
	assert.False(t, a.Verify("", ""))
}

func TestHMACSHA256(t *testing.T) {
	h := NewHMACSHA256("server-secret")

	a, err := h.Hash("123456")
	require.NoError(t, err)
	b, err := h.Hash("123456")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.True(t, h.Verify(string(a), "123456"))
	assert.False(t, h.Verify(string(a), "123457"))
	assert.False(t, NewHMACSHA256("other").Verify(string(a), "123456"))
}
