package fairness

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"fair_rps/internal/game"
)

// Digest returns hex(HMAC-SHA256(key, label)). The HMAC is keyed with the
// key's hex text, the same string the user is shown, so any HMAC tool given
// the revealed key reproduces the digest.
func Digest(key Key, label string) string {
	return hex.EncodeToString(sum(key, label))
}

func sum(key Key, label string) []byte {
	h := hmac.New(sha256.New, []byte(key.String()))
	h.Write([]byte(label))
	return h.Sum(nil)
}

// Commitment binds the computer to a move before the user picks one. The
// digest may be shown at once; the key only after the round is resolved.
type Commitment struct {
	key      Key
	index    int
	label    string
	digest   string
	revealed bool
}

// Commit picks a random move from moves and commits to it under key.
func Commit(key Key, moves game.MoveSet) (*Commitment, error) {
	idx, err := PickMove(moves.Len())
	if err != nil {
		return nil, err
	}
	return CommitTo(key, moves, idx)
}

// CommitTo commits to a known move index.
func CommitTo(key Key, moves game.MoveSet, index int) (*Commitment, error) {
	if !moves.Valid(index) {
		return nil, fmt.Errorf("commit: move index %d out of range", index)
	}
	label := moves.Label(index)
	return &Commitment{
		key:    key,
		index:  index,
		label:  label,
		digest: Digest(key, label),
	}, nil
}

func (c *Commitment) Digest() string {
	return c.digest
}

// MoveIndex is the committed 0-based move index. It is safe to use inside the
// process for resolution; it must not be shown before Reveal.
func (c *Commitment) MoveIndex() int {
	return c.index
}

// Reveal discloses the committed move and the key. A commitment opens once.
func (c *Commitment) Reveal() (string, Key, error) {
	if c.Revealed() {
		return "", Key{}, ErrAlreadyRevealed
	}
	c.revealed = true
	return c.label, c.key, nil
}

func (c *Commitment) Revealed() bool {
	return c.revealed
}

// Verify recomputes the digest for label under keyHex and compares it to
// digestHex in constant time.
func Verify(keyHex, label, digestHex string) (bool, error) {
	key, err := ParseKey(keyHex)
	if err != nil {
		return false, err
	}
	want, err := hex.DecodeString(digestHex)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedDigest, err)
	}
	if len(want) != sha256.Size {
		return false, fmt.Errorf("%w: want %d bytes, got %d", ErrMalformedDigest, sha256.Size, len(want))
	}
	return hmac.Equal(sum(key, label), want), nil
}
