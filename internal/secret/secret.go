// Package secret generates IPsec preshared keys and fingerprints them for
// logs, so the key itself never leaves the rendered configuration.
package secret

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/blake2b"
)

// Charset excludes look-alike characters (I, O, l, 0, 1) and anything that
// would need escaping inside a quoted FortiOS value.
const Charset = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789!@#$%&*+-?"

// DefaultLength is the key length offered by the form.
const DefaultLength = 28

// MaxLength is the longest psksecret FortiOS accepts.
const MaxLength = 128

// Generate returns a random key of the given length.
func Generate(length int) (string, error) {
	return GenerateFrom(rand.Reader, length)
}

// GenerateFrom draws key characters from r.
func GenerateFrom(r io.Reader, length int) (string, error) {
	if length < 1 || length > MaxLength {
		return "", fmt.Errorf("key length must be between 1 and %d, got %d", MaxLength, length)
	}
	max := big.NewInt(int64(len(Charset)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(r, max)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		out[i] = Charset[n.Int64()]
	}
	return string(out), nil
}

// Fingerprint returns a short BLAKE2b digest of s, safe to log.
func Fingerprint(s string) string {
	if s == "" {
		return ""
	}
	sum := blake2b.Sum256([]byte(s))
	return hex.EncodeToString(sum[:8])
}
