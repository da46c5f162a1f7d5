package session

import (
	"errors"
	"testing"
)

func TestParseSelection(t *testing.T) {
	cases := []struct {
		in    string
		kind  SelectionKind
		index int
		ok    bool
	}{
		{"1", SelectMove, 0, true},
		{"5", SelectMove, 4, true},
		{" 3\n", SelectMove, 2, true},
		{"0", SelectExit, 0, true},
		{"?", SelectHelp, 0, true},
		{"6", 0, 0, false},
		{"-1", 0, 0, false},
		{"01", 0, 0, false},
		{"+2", 0, 0, false},
		{"rock", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tc := range cases {
		got, err := ParseSelection(tc.in, 5)
		if !tc.ok {
			if !errors.Is(err, ErrInvalidSelection) {
				t.Fatalf("ParseSelection(%q): expected ErrInvalidSelection, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseSelection(%q): %v", tc.in, err)
		}
		if got.Kind != tc.kind || got.Index != tc.index {
			t.Fatalf("ParseSelection(%q) = %+v", tc.in, got)
		}
	}
}
