package game

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMoveSet is returned when a move set is not an odd number (>= 3)
// of unique, non-empty labels.
var ErrInvalidMoveSet = errors.New("invalid move set")

const MinMoves = 3

type Outcome int

const (
	Draw Outcome = iota
	Win
	Lose
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "Win"
	case Lose:
		return "Lose"
	default:
		return "Draw"
	}
}

// Opposite returns the outcome seen from the other side of the pairing.
func (o Outcome) Opposite() Outcome {
	switch o {
	case Win:
		return Lose
	case Lose:
		return Win
	default:
		return Draw
	}
}

// MoveSet is an immutable ordered list of move labels. The index of a label
// is its identity for the lifetime of a session.
type MoveSet struct {
	labels []string
}

// NewMoveSet validates labels and returns a MoveSet that owns a copy of them.
func NewMoveSet(labels []string) (MoveSet, error) {
	if err := validate(labels); err != nil {
		return MoveSet{}, err
	}
	return MoveSet{labels: append([]string(nil), labels...)}, nil
}

func validate(labels []string) error {
	n := len(labels)
	if n < MinMoves {
		return fmt.Errorf("%w: need at least %d moves, got %d", ErrInvalidMoveSet, MinMoves, n)
	}
	if n%2 == 0 {
		return fmt.Errorf("%w: move count must be odd, got %d", ErrInvalidMoveSet, n)
	}

	seen := make(map[string]struct{}, n)
	for i, l := range labels {
		if strings.TrimSpace(l) == "" {
			return fmt.Errorf("%w: move %d is empty", ErrInvalidMoveSet, i+1)
		}
		if _, ok := seen[l]; ok {
			return fmt.Errorf("%w: duplicate move %q", ErrInvalidMoveSet, l)
		}
		seen[l] = struct{}{}
	}
	return nil
}

func (m MoveSet) Len() int {
	return len(m.labels)
}

// Label returns the label at 0-based index i.
func (m MoveSet) Label(i int) string {
	return m.labels[i]
}

// Labels returns a copy of the labels in order.
func (m MoveSet) Labels() []string {
	return append([]string(nil), m.labels...)
}

// Index returns the 0-based index of label, or -1.
func (m MoveSet) Index(label string) int {
	for i, l := range m.labels {
		if l == label {
			return i
		}
	}
	return -1
}

// Valid reports whether i is a 0-based index into the set.
func (m MoveSet) Valid(i int) bool {
	return i >= 0 && i < len(m.labels)
}
