// Package credential turns plaintext secrets into stored digests.
//
// Digests are deterministic and unsalted: the same secret always yields the
// same digest, which lets the authenticator match credentials with a plain
// equality lookup in the database.
package credential

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Supported digest algorithms.
const (
	MD5     = "md5"
	BLAKE2b = "blake2b"
)

// Hasher computes password digests.
type Hasher struct {
	algorithm string
	sum       func([]byte) []byte
}

// NewHasher returns a hasher for the named algorithm.
func NewHasher(algorithm string) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case "", MD5:
		return Hasher{algorithm: MD5, sum: func(b []byte) []byte {
			s := md5.Sum(b)
			return s[:]
		}}, nil
	case BLAKE2b:
		return Hasher{algorithm: BLAKE2b, sum: func(b []byte) []byte {
			s := blake2b.Sum256(b)
			return s[:]
		}}, nil
	default:
		return Hasher{}, fmt.Errorf("unsupported password digest %q", algorithm)
	}
}

// Algorithm names the digest in use.
func (h Hasher) Algorithm() string {
	return h.algorithm
}

// Hash returns the lowercase hex digest of secret.
func (h Hasher) Hash(secret string) string {
	return hex.EncodeToString(h.sum([]byte(secret)))
}
