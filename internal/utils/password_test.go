package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.Len(t, hash, 97)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=4,p=1$"))
	assert.True(t, IsMemoryHard(hash))
	assert.True(t, VerifyPassword(hash, "correct horse battery staple"))
	assert.False(t, VerifyPassword(hash, "correct horse battery stapler"))
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestIsMemoryHard(t *testing.T) {
	tests := []struct {
		name string
		hash string
		want bool
	}{
		{"argon2i", "$argon2i$v=19$m=65536,t=4,p=1$c29tZXNhbHRzb21lc2FsdA$MTIzNDU2Nzg5MDEyMzQ1Njc4OTAxMjM0NTY3ODkwMTI", true},
		{"bcrypt", "$2y$10$abcdefghijklmnopqrstuuJ5Gm0b4V8y8mN6rYzF2d1s1o0Yk8a1e", false},
		{"argon2d", "$argon2d$v=19$m=65536,t=4,p=1$c29tZXNhbHRzb21lc2FsdA$MTIzNDU2Nzg5MDEyMzQ1Njc4OTAxMjM0NTY3ODkwMTI", false},
		{"old version", "$argon2id$v=16$m=65536,t=4,p=1$c29tZXNhbHRzb21lc2FsdA$MTIzNDU2Nzg5MDEyMzQ1Njc4OTAxMjM0NTY3ODkwMTI", false},
		{"bad params", "$argon2id$v=19$memory$c29tZXNhbHRzb21lc2FsdA$MTIzNDU2Nzg5MDEyMzQ1Njc4OTAxMjM0NTY3ODkwMTI", false},
		{"bad salt", "$argon2id$v=19$m=65536,t=4,p=1$***$MTIzNDU2Nzg5MDEyMzQ1Njc4OTAxMjM0NTY3ODkwMTI", false},
		{"missing key", "$argon2id$v=19$m=65536,t=4,p=1$c29tZXNhbHRzb21lc2FsdA", false},
		{"trailing junk in version", "$argon2id$v=19x$m=65536,t=4,p=1$c29tZXNhbHRzb21lc2FsdA$MTIzNDU2Nzg5MDEyMzQ1Njc4OTAxMjM0NTY3ODkwMTI", false},
		{"trailing junk in params", "$argon2id$v=19$m=65536,t=4,p=1x$c29tZXNhbHRzb21lc2FsdA$MTIzNDU2Nzg5MDEyMzQ1Njc4OTAxMjM0NTY3ODkwMTI", false},
		{"signed memory", "$argon2id$v=19$m=+65536,t=4,p=1$c29tZXNhbHRzb21lc2FsdA$MTIzNDU2Nzg5MDEyMzQ1Njc4OTAxMjM0NTY3ODkwMTI", false},
		{"memory over cap", "$argon2id$v=19$m=4194304,t=4,p=1$c29tZXNhbHRzb21lc2FsdA$MTIzNDU2Nzg5MDEyMzQ1Njc4OTAxMjM0NTY3ODkwMTI", false},
		{"memory overflows uint32", "$argon2id$v=19$m=9999999999,t=4,p=1$c29tZXNhbHRzb21lc2FsdA$MTIzNDU2Nzg5MDEyMzQ1Njc4OTAxMjM0NTY3ODkwMTI", false},
		{"too many passes", "$argon2id$v=19$m=65536,t=1000,p=1$c29tZXNhbHRzb21lc2FsdA$MTIzNDU2Nzg5MDEyMzQ1Njc4OTAxMjM0NTY3ODkwMTI", false},
		{"threads overflow uint8", "$argon2id$v=19$m=65536,t=4,p=300$c29tZXNhbHRzb21lc2FsdA$MTIzNDU2Nzg5MDEyMzQ1Njc4OTAxMjM0NTY3ODkwMTI", false},
		{"memory at cap", "$argon2id$v=19$m=262144,t=4,p=1$c29tZXNhbHRzb21lc2FsdA$MTIzNDU2Nzg5MDEyMzQ1Njc4OTAxMjM0NTY3ODkwMTI", true},
		{"plain text", strings.Repeat("a", 97), false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMemoryHard(tt.hash))
		})
	}
}

func TestVerifyPassword_RejectsGarbage(t *testing.T) {
	assert.False(t, VerifyPassword("not a hash", "anything"))
}

func TestVerifyPassword_OversizedMemoryRefused(t *testing.T) {
	// would ask argon2 for 4 GiB if the parameters were trusted
	hash := "$argon2id$v=19$m=4194304,t=4,p=1$c29tZXNhbHRzb21lc2FsdA$MTIzNDU2Nzg5MDEyMzQ1Njc4OTAxMjM0NTY3ODkwMTI"
	assert.False(t, VerifyPassword(hash, "anything"))
}
