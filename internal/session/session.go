package session

import (
	"errors"
	"fmt"
	"log/slog"

	"fair_rps/internal/fairness"
	"fair_rps/internal/game"
	"fair_rps/internal/logger"

	"github.com/google/uuid"
)

type State string

const (
	StateAwaitingMove State = "awaiting_move"
	StateResolved     State = "resolved"
	StateExited       State = "exited"
)

type KeyPolicy int

const (
	// PerRound draws a fresh key before every commitment.
	PerRound KeyPolicy = iota
	// PerSession reuses one key for the whole session.
	PerSession
)

func (p KeyPolicy) String() string {
	if p == PerSession {
		return "session"
	}
	return "round"
}

// ParseKeyPolicy accepts "round" or "session".
func ParseKeyPolicy(s string) (KeyPolicy, error) {
	switch s {
	case "", "round":
		return PerRound, nil
	case "session":
		return PerSession, nil
	default:
		return PerRound, fmt.Errorf("unknown key policy %q", s)
	}
}

var (
	ErrSessionClosed = errors.New("session closed")
	ErrWrongState    = errors.New("operation not allowed in current state")
)

// RoundStart is what may be shown before the user moves.
type RoundStart struct {
	Round  int
	Digest string
}

// RoundResult is shown after the user moves. Key is the revealed HMAC key.
type RoundResult struct {
	Round        int
	UserMove     string
	ComputerMove string
	Outcome      game.Outcome
	Digest       string
	Key          string
}

type Stats struct {
	Rounds int `json:"rounds"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

type Option func(*Session)

func WithKeyPolicy(p KeyPolicy) Option {
	return func(s *Session) { s.policy = p }
}

// Session drives one player through rounds. It is not safe for concurrent use.
type Session struct {
	ID       string
	moves    game.MoveSet
	relation *game.Relation
	policy   KeyPolicy

	state   State
	key     fairness.Key
	current *fairness.Commitment
	round   int
	stats   Stats
	log     *slog.Logger
}

// New builds the outcome relation for moves and, under PerSession, the
// session key.
func New(moves game.MoveSet, opts ...Option) (*Session, error) {
	rel, err := game.BuildRelation(moves)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:       uuid.NewString(),
		moves:    moves,
		relation: rel,
		state:    StateResolved,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.policy == PerSession {
		if s.key, err = fairness.NewKey(); err != nil {
			return nil, err
		}
	}

	s.log = logger.ForSession(s.ID)
	s.log.Info("session started", "moves", moves.Labels(), "key_policy", s.policy.String())
	return s, nil
}

// Logger returns the logger tagged with this session's id.
func (s *Session) Logger() *slog.Logger {
	return s.log
}

func (s *Session) Moves() game.MoveSet {
	return s.moves
}

func (s *Session) Relation() *game.Relation {
	return s.relation
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Policy() KeyPolicy {
	return s.policy
}

func (s *Session) Stats() Stats {
	return s.stats
}

// Begin commits to a computer move for the next round. If a round is already
// awaiting a move, its commitment is returned unchanged.
func (s *Session) Begin() (*RoundStart, error) {
	switch s.state {
	case StateExited:
		return nil, ErrSessionClosed
	case StateAwaitingMove:
		return &RoundStart{Round: s.round, Digest: s.current.Digest()}, nil
	}

	if s.policy == PerRound {
		k, err := fairness.NewKey()
		if err != nil {
			return nil, err
		}
		s.key = k
	}

	c, err := fairness.Commit(s.key, s.moves)
	if err != nil {
		return nil, err
	}
	commitmentsTotal.Inc()

	s.current = c
	s.round++
	s.state = StateAwaitingMove
	return &RoundStart{Round: s.round, Digest: c.Digest()}, nil
}

// Play resolves the open round with the user's 0-based move index and
// reveals the commitment.
func (s *Session) Play(userIndex int) (*RoundResult, error) {
	switch s.state {
	case StateExited:
		return nil, ErrSessionClosed
	case StateResolved:
		return nil, fmt.Errorf("%w: no open round", ErrWrongState)
	}
	outcome, err := s.relation.ResolveChecked(userIndex, s.current.MoveIndex())
	if err != nil {
		return nil, fmt.Errorf("%w: move %d", ErrInvalidSelection, userIndex+1)
	}
	label, key, err := s.current.Reveal()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrongState, err)
	}

	s.record(outcome)
	s.state = StateResolved

	res := &RoundResult{
		Round:        s.round,
		UserMove:     s.moves.Label(userIndex),
		ComputerMove: label,
		Outcome:      outcome,
		Digest:       s.current.Digest(),
		Key:          key.String(),
	}
	s.current = nil

	s.log.Debug("round resolved", "round", res.Round, "user", res.UserMove, "computer", res.ComputerMove, "outcome", outcome.String())
	return res, nil
}

// Exit closes the session. An open round is abandoned without revealing.
func (s *Session) Exit() Stats {
	if s.state != StateExited {
		s.state = StateExited
		s.current = nil
		s.log.Info("session exited", "rounds", s.stats.Rounds)
	}
	return s.stats
}

func (s *Session) record(o game.Outcome) {
	s.stats.Rounds++
	switch o {
	case game.Win:
		s.stats.Wins++
	case game.Lose:
		s.stats.Losses++
	default:
		s.stats.Draws++
	}
	roundsTotal.WithLabelValues(o.String()).Inc()
}
