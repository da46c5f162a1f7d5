package session

import (
	"errors"
	"testing"

	"fair_rps/internal/fairness"
	"fair_rps/internal/game"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	moves, err := game.NewMoveSet([]string{"rock", "paper", "scissors", "lizard", "spock"})
	if err != nil {
		t.Fatal(err)
	}
	s, err := New(moves, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRoundLifecycle(t *testing.T) {
	s := newSession(t)
	if s.ID == "" {
		t.Fatalf("session has no id")
	}
	if _, err := s.Play(0); !errors.Is(err, ErrWrongState) {
		t.Fatalf("Play before Begin: expected ErrWrongState, got %v", err)
	}

	start, err := s.Begin()
	if err != nil {
		t.Fatal(err)
	}
	if start.Round != 1 || len(start.Digest) != 64 {
		t.Fatalf("unexpected round start %+v", start)
	}
	if s.State() != StateAwaitingMove {
		t.Fatalf("state = %s", s.State())
	}

	// asking again while awaiting keeps the same commitment
	again, _ := s.Begin()
	if again.Digest != start.Digest || again.Round != 1 {
		t.Fatalf("Begin while awaiting changed the commitment")
	}

	res, err := s.Play(2)
	if err != nil {
		t.Fatal(err)
	}
	if s.State() != StateResolved {
		t.Fatalf("state = %s", s.State())
	}
	if res.UserMove != "scissors" || res.Digest != start.Digest {
		t.Fatalf("unexpected result %+v", res)
	}

	ok, err := fairness.Verify(res.Key, res.ComputerMove, start.Digest)
	if err != nil || !ok {
		t.Fatalf("revealed key does not verify the shown digest: %v %v", ok, err)
	}

	comp := s.Moves().Index(res.ComputerMove)
	if want := s.Relation().Resolve(2, comp); res.Outcome != want {
		t.Fatalf("outcome %s; want %s", res.Outcome, want)
	}
}

func TestPlayInvalidIndexKeepsRoundOpen(t *testing.T) {
	s := newSession(t)
	start, _ := s.Begin()

	for _, idx := range []int{-1, 5, 99} {
		if _, err := s.Play(idx); !errors.Is(err, ErrInvalidSelection) {
			t.Fatalf("Play(%d): expected ErrInvalidSelection, got %v", idx, err)
		}
	}
	if s.State() != StateAwaitingMove {
		t.Fatalf("invalid move closed the round")
	}
	res, err := s.Play(0)
	if err != nil || res.Digest != start.Digest {
		t.Fatalf("round not playable after invalid input: %v", err)
	}
}

func TestKeyPolicies(t *testing.T) {
	keys := func(s *Session) map[string]bool {
		seen := make(map[string]bool)
		for i := 0; i < 5; i++ {
			if _, err := s.Begin(); err != nil {
				t.Fatal(err)
			}
			res, err := s.Play(0)
			if err != nil {
				t.Fatal(err)
			}
			seen[res.Key] = true
		}
		return seen
	}

	if got := keys(newSession(t)); len(got) != 5 {
		t.Fatalf("per-round policy reused keys: %d distinct", len(got))
	}
	if got := keys(newSession(t, WithKeyPolicy(PerSession))); len(got) != 1 {
		t.Fatalf("per-session policy produced %d keys", len(got))
	}
}

func TestStatsAndMetrics(t *testing.T) {
	before := testutil.ToFloat64(commitmentsTotal)

	s := newSession(t)
	for i := 0; i < 10; i++ {
		if _, err := s.Begin(); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Play(i % 5); err != nil {
			t.Fatal(err)
		}
	}

	st := s.Stats()
	if st.Rounds != 10 || st.Wins+st.Losses+st.Draws != 10 {
		t.Fatalf("unexpected stats %+v", st)
	}
	if got := testutil.ToFloat64(commitmentsTotal) - before; got != 10 {
		t.Fatalf("commitments counter moved by %v", got)
	}
}

func TestExit(t *testing.T) {
	s := newSession(t)
	s.Begin()
	s.Exit()

	if s.State() != StateExited {
		t.Fatalf("state = %s", s.State())
	}
	if _, err := s.Begin(); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("Begin after exit: %v", err)
	}
	if _, err := s.Play(0); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("Play after exit: %v", err)
	}
}

func TestNewRejectsInvalidMoves(t *testing.T) {
	if _, err := New(game.MoveSet{}); !errors.Is(err, game.ErrInvalidMoveSet) {
		t.Fatalf("expected ErrInvalidMoveSet, got %v", err)
	}
}

func TestParseKeyPolicy(t *testing.T) {
	if p, err := ParseKeyPolicy("session"); err != nil || p != PerSession {
		t.Fatalf("session: %v %v", p, err)
	}
	if p, err := ParseKeyPolicy(""); err != nil || p != PerRound {
		t.Fatalf("empty: %v %v", p, err)
	}
	if _, err := ParseKeyPolicy("never"); err == nil {
		t.Fatalf("expected error")
	}
}
