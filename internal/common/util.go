package common

import "crypto/rand"

// GenerateRandByteArray returns size bytes read from crypto/rand.
// crypto/rand.Read does not fail on supported platforms, so no error is
// returned.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	_, _ = rand.Read(b)
	return b
}

// WipeByteArray overwrites b with zeros. Use it for passwords read from the
// terminal once they have been sent. A nil slice is ignored.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
