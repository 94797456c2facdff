package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher()

	hash, err := h.Hash("Password123!")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	// Stored form is base64 so the salt travels inside the value.
	_, err = base64.StdEncoding.DecodeString(hash)
	assert.NoError(t, err)

	assert.True(t, h.Verify("Password123!", hash))
	assert.False(t, h.Verify("WrongPassword123!", hash))
	assert.False(t, h.Verify("", hash))
}

func TestHasher_HashIsSalted(t *testing.T) {
	h := NewHasher()

	first, err := h.Hash("Password123!")
	require.NoError(t, err)
	second, err := h.Hash("Password123!")
	require.NoError(t, err)

	// Per-call random salt means two hashes of the same password differ,
	// yet both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("Password123!", first))
	assert.True(t, h.Verify("Password123!", second))
}

func TestHasher_VerifyMalformedStored(t *testing.T) {
	h := NewHasher()

	tests := []struct {
		name   string
		stored string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"base64 of garbage", base64.StdEncoding.EncodeToString([]byte("garbage"))},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, h.Verify("Password123!", tt.stored))
		})
	}
}
