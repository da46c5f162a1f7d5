package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidSelection = errors.New("invalid selection")

const (
	ExitInput = "0"
	HelpInput = "?"
)

type SelectionKind int

const (
	SelectMove SelectionKind = iota
	SelectExit
	SelectHelp
)

// Selection is a validated user input. Index is 0-based and only meaningful
// for SelectMove.
type Selection struct {
	Kind  SelectionKind
	Index int
}

// ParseSelection maps "1".."n" to a move, "0" to exit and "?" to help.
func ParseSelection(input string, n int) (Selection, error) {
	in := strings.TrimSpace(input)
	switch in {
	case ExitInput:
		return Selection{Kind: SelectExit}, nil
	case HelpInput:
		return Selection{Kind: SelectHelp}, nil
	}

	v, err := strconv.Atoi(in)
	if err != nil || v < 1 || v > n || strconv.Itoa(v) != in {
		return Selection{}, fmt.Errorf("%w: %q", ErrInvalidSelection, in)
	}
	return Selection{Kind: SelectMove, Index: v - 1}, nil
}
