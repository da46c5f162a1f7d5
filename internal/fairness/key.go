package fairness

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/big"
)

const KeySize = 32 // 256 bits

var (
	// ErrEntropy wraps failures of the random source. Callers abort the session.
	ErrEntropy = errors.New("random source failure")

	ErrAlreadyRevealed = errors.New("commitment already revealed")
	ErrMalformedKey    = errors.New("malformed key")
	ErrMalformedDigest = errors.New("malformed digest")
)

// Key is a secret HMAC key.
type Key [KeySize]byte

// String returns the key as 64 lowercase hex characters.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// reader is swapped in tests to simulate an exhausted source.
var reader io.Reader = rand.Reader

// NewKey draws a fresh key from the cryptographic random source.
func NewKey() (Key, error) {
	var k Key
	if _, err := io.ReadFull(reader, k[:]); err != nil {
		return Key{}, fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	return k, nil
}

// ParseKey decodes a 64 character hex key.
func ParseKey(s string) (Key, error) {
	var k Key
	b, err := hex.DecodeString(s)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}
	if len(b) != KeySize {
		return Key{}, fmt.Errorf("%w: want %d bytes, got %d", ErrMalformedKey, KeySize, len(b))
	}
	copy(k[:], b)
	return k, nil
}

// PickMove returns a uniformly random index in [0, n).
func PickMove(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("pick move: n must be positive, got %d", n)
	}
	v, err := rand.Int(reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	return int(v.Int64()), nil
}
