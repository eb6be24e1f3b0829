package cryptox

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap parameters, the cost is irrelevant for correctness
func newTestHasher() *Hasher {
	return NewHasher(Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32})
}

func TestHash_Format(t *testing.T) {
	h := newTestHasher()

	hash, err := h.Hash("Secret#123")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=8192,t=1,p=1$"), hash)
	assert.NotContains(t, hash, "Secret#123")
	assert.Len(t, strings.Split(hash, "$"), 6)
}

func TestHash_SaltedPerCall(t *testing.T) {
	h := newTestHasher()

	a, err := h.Hash("samepassword")
	require.NoError(t, err)
	b, err := h.Hash("samepassword")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHash_RejectsEmpty(t *testing.T) {
	_, err := newTestHasher().Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestVerify(t *testing.T) {
	h := newTestHasher()
	hash, err := h.Hash("correct-Horse1!")
	require.NoError(t, err)

	ok, err := h.Verify("correct-Horse1!", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("correct-Horse1?", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = h.Verify("", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_UsesParamsFromHash(t *testing.T) {
	old := NewHasher(Params{Time: 2, Memory: 8 * 1024, Threads: 2, KeyLen: 16})
	hash, err := old.Hash("pw")
	require.NoError(t, err)

	ok, err := newTestHasher().Verify("pw", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_InvalidHash(t *testing.T) {
	h := newTestHasher()

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"garbage", "not-a-hash"},
		{"wrong algorithm", "$argon2i$v=19$m=8192,t=1,p=1$c2FsdHNhbHQ$aGFzaA"},
		{"wrong version", "$argon2id$v=16$m=8192,t=1,p=1$c2FsdHNhbHQ$aGFzaA"},
		{"bad version field", "$argon2id$vXX$m=8192,t=1,p=1$c2FsdHNhbHQ$aGFzaA"},
		{"bad params", "$argon2id$v=19$m=x,t=1,p=1$c2FsdHNhbHQ$aGFzaA"},
		{"zero threads", "$argon2id$v=19$m=8192,t=1,p=0$c2FsdHNhbHQ$aGFzaA"},
		{"too many threads", "$argon2id$v=19$m=8192,t=1,p=300$c2FsdHNhbHQ$aGFzaA"},
		{"bad salt", "$argon2id$v=19$m=8192,t=1,p=1$!!!$aGFzaA"},
		{"bad key", "$argon2id$v=19$m=8192,t=1,p=1$c2FsdHNhbHQ$!!!"},
		{"empty key", "$argon2id$v=19$m=8192,t=1,p=1$c2FsdHNhbHQ$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := h.Verify("pw", tt.hash)
			assert.False(t, ok)
			if !errors.Is(err, ErrInvalidHash) {
				t.Fatalf("want ErrInvalidHash, got %v", err)
			}
		})
	}
}

func TestNewHasher_Defaults(t *testing.T) {
	h := NewHasher(Params{})
	assert.Equal(t, DefaultParams(), h.params)
}
