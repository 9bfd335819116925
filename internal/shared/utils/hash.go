package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// HashAlgorithm names a content digest algorithm
type HashAlgorithm string

const (
	SHA256 HashAlgorithm = "sha256"
	XXH64  HashAlgorithm = "xxh64"
)

// ParseHashAlgorithm validates an algorithm name. The empty string selects SHA256.
func ParseHashAlgorithm(name string) (HashAlgorithm, error) {
	switch a := HashAlgorithm(strings.ToLower(name)); a {
	case "":
		return SHA256, nil
	case SHA256, XXH64:
		return a, nil
	default:
		return "", fmt.Errorf("unknown digest algorithm %q", name)
	}
}

// Hasher computes content digests of fixture files
type Hasher struct {
	algorithm HashAlgorithm
}

// NewHasher creates a hasher with the specified algorithm
func NewHasher(algorithm HashAlgorithm) *Hasher {
	if algorithm == "" {
		algorithm = SHA256
	}
	return &Hasher{algorithm: algorithm}
}

// DefaultHasher returns a SHA256 hasher
func DefaultHasher() *Hasher {
	return NewHasher(SHA256)
}

// Algorithm returns the hasher's algorithm
func (h *Hasher) Algorithm() HashAlgorithm {
	return h.algorithm
}

// Hash returns the digest of data prefixed with the algorithm name,
// e.g. "sha256:9f86d0…".
func (h *Hasher) Hash(data []byte) string {
	switch h.algorithm {
	case XXH64:
		return fmt.Sprintf("%s:%016x", XXH64, xxhash.Sum64(data))
	default:
		sum := sha256.Sum256(data)
		return string(SHA256) + ":" + hex.EncodeToString(sum[:])
	}
}

// HashString computes the digest of a string
func (h *Hasher) HashString(s string) string {
	return h.Hash([]byte(s))
}

// ShortHash returns the algorithm prefix and first 8 hex characters of a
// digest, for display.
func ShortHash(digest string) string {
	algo, sum, ok := strings.Cut(digest, ":")
	if !ok {
		algo, sum = "", digest
	}
	if len(sum) > 8 {
		sum = sum[:8]
	}
	if algo == "" {
		return sum
	}
	return algo + ":" + sum
}
