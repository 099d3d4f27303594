package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_ProducesEncodedArgon2id(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$"), "hash: %s", hash)
	parts := strings.Split(hash, "$")
	require.Len(t, parts, 6)
	assert.Equal(t, "m=65536,t=1,p=4", parts[3])
}

func TestHashPassword_SaltsAreUnique(t *testing.T) {
	h1, err := HashPassword("same password")
	require.NoError(t, err)
	h2, err := HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "two hashes of the same password must differ by salt")
}

func TestHashPassword_RejectsEmpty(t *testing.T) {
	_, err := HashPassword("")
	require.Error(t, err)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("opening night")
	require.NoError(t, err)

	require.NoError(t, VerifyPassword("opening night", hash))
	require.ErrorIs(t, VerifyPassword("closing night", hash), ErrPasswordMismatch)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not argon2", "$bcrypt$whatever"},
		{"truncated", "$argon2id$v=19$m=65536,t=1,p=4"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=1,p=4$!!!$AAAA"},
		{"bad version", "$argon2id$v=18$m=65536,t=1,p=4$AAAA$AAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPassword("anything", tt.hash)
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrPasswordMismatch)
		})
	}
}
