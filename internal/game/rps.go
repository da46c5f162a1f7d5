package game

import (
	"errors"
	"fmt"
)

var ErrIndexOutOfRange = errors.New("move index out of range")

// Relation holds the outcome of every ordered pair of move indices. Rows are
// read from the row move's point of view: At(i, j) == Win means move i beats
// move j.
type Relation struct {
	n     int
	table [][]Outcome
}

// BuildRelation derives the outcome relation for moves. For i < j the move
// at i beats the move at j when j-i is odd and loses to it otherwise.
func BuildRelation(moves MoveSet) (*Relation, error) {
	if err := validate(moves.labels); err != nil {
		return nil, err
	}

	n := moves.Len()
	table := make([][]Outcome, n)
	for i := range table {
		table[i] = make([]Outcome, n)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if (j-i)%2 == 1 {
				table[i][j] = Win
				table[j][i] = Lose
			} else {
				table[i][j] = Lose
				table[j][i] = Win
			}
		}
	}

	return &Relation{n: n, table: table}, nil
}

func (r *Relation) Len() int {
	return r.n
}

// At returns the outcome for the row move against the column move.
func (r *Relation) At(row, col int) Outcome {
	return r.table[row][col]
}

// Resolve returns the round outcome from the user's point of view. The table
// is consulted with the computer's move as the row, so the user gets the
// opposite of the computer's result.
func (r *Relation) Resolve(userIndex, computerIndex int) Outcome {
	if userIndex == computerIndex {
		return Draw
	}
	return r.table[computerIndex][userIndex].Opposite()
}

// ResolveChecked is Resolve with bounds checking for callers that take
// indices from outside the process.
func (r *Relation) ResolveChecked(userIndex, computerIndex int) (Outcome, error) {
	if userIndex < 0 || userIndex >= r.n || computerIndex < 0 || computerIndex >= r.n {
		return Draw, fmt.Errorf("%w: user=%d computer=%d n=%d", ErrIndexOutOfRange, userIndex, computerIndex, r.n)
	}
	return r.Resolve(userIndex, computerIndex), nil
}

// Rows returns a copy of the table as strings, row by row.
func (r *Relation) Rows() [][]string {
	out := make([][]string, r.n)
	for i, row := range r.table {
		out[i] = make([]string, r.n)
		for j, o := range row {
			out[i][j] = o.String()
		}
	}
	return out
}

// UserView returns the grid shown to players: row pc, column user holds the
// user's outcome when the computer plays pc and the user plays user.
func (r *Relation) UserView() [][]string {
	out := make([][]string, r.n)
	for pc := range out {
		out[pc] = make([]string, r.n)
		for user := range out[pc] {
			out[pc][user] = r.Resolve(user, pc).String()
		}
	}
	return out
}
