package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"fair_rps/internal/game"
	"fair_rps/internal/session"
)

const invalidInputMsg = "Invalid input. Please enter a valid move index."

// Usage prints the rejection shown for an invalid move set.
func Usage(w io.Writer, prog string) {
	fmt.Fprintln(w, "Error: You must provide an odd number of unique moves (>=3) as command line arguments.")
	fmt.Fprintf(w, "Example: %s rock paper scissors\n", prog)
	fmt.Fprintf(w, "     or: %s -preset rpsls\n", prog)
}

// Run plays rounds on s, reading selections from in, until the user exits,
// in is exhausted, or ctx is done.
func Run(ctx context.Context, in io.Reader, out io.Writer, s *session.Session) error {
	done := make(chan struct{})
	defer close(done)
	lines := readLines(in, done)
	moves := s.Moves()

	for {
		if err := ctx.Err(); err != nil {
			s.Exit()
			return err
		}

		start, err := s.Begin()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nHMAC: %s\n", start.Digest)
		printMenu(out, moves)

		var ln line
		select {
		case <-ctx.Done():
			s.Exit()
			return ctx.Err()
		case ln = <-lines:
		}
		if ln.eof {
			if ln.err != nil {
				s.Exit()
				return fmt.Errorf("read input: %w", ln.err)
			}
			goodbye(out, s)
			return nil
		}

		sel, err := session.ParseSelection(ln.text, moves.Len())
		if err != nil {
			if errors.Is(err, session.ErrInvalidSelection) {
				fmt.Fprintln(out, invalidInputMsg)
				continue
			}
			return err
		}

		switch sel.Kind {
		case session.SelectExit:
			goodbye(out, s)
			return nil
		case session.SelectHelp:
			if err := game.RenderTable(out, moves, s.Relation()); err != nil {
				return err
			}
			continue
		}

		res, err := s.Play(sel.Index)
		if err != nil {
			return err
		}
		printResult(out, res)
	}
}

type line struct {
	text string
	eof  bool
	err  error
}

// readLines scans in on its own goroutine so a blocked read never holds up
// cancellation. The last value sent has eof set. A read that is still blocked
// when Run returns ends with the reader.
func readLines(in io.Reader, done <-chan struct{}) <-chan line {
	ch := make(chan line)
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case ch <- line{text: sc.Text()}:
			case <-done:
				return
			}
		}
		select {
		case ch <- line{eof: true, err: sc.Err()}:
		case <-done:
		}
	}()
	return ch
}

func printMenu(w io.Writer, moves game.MoveSet) {
	fmt.Fprintln(w, "\nAvailable moves:")
	for i, l := range moves.Labels() {
		fmt.Fprintf(w, "%d - %s\n", i+1, l)
	}
	fmt.Fprintf(w, "%s - Exit\n", session.ExitInput)
	fmt.Fprintf(w, "%s - Help\n", session.HelpInput)
	fmt.Fprint(w, "Enter your move: ")
}

func printResult(w io.Writer, res *session.RoundResult) {
	fmt.Fprintf(w, "\nYour move: %s\n", res.UserMove)
	fmt.Fprintf(w, "Computer move: %s\n", res.ComputerMove)
	switch res.Outcome {
	case game.Win:
		fmt.Fprintln(w, "You win!")
	case game.Lose:
		fmt.Fprintln(w, "You lose!")
	default:
		fmt.Fprintln(w, "Draw!")
	}
	fmt.Fprintf(w, "HMAC Key: %s\n", res.Key)
}

func goodbye(w io.Writer, s *session.Session) {
	st := s.Exit()
	fmt.Fprintln(w, "\nGoodbye!")
	if st.Rounds > 0 {
		fmt.Fprintf(w, "Rounds: %d  Wins: %d  Losses: %d  Draws: %d\n", st.Rounds, st.Wins, st.Losses, st.Draws)
	}
}
