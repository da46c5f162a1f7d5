package main

import (
	"flag"
	"fmt"
	"os"

	"fair_rps/internal/fairness"
)

// Exit codes: 0 digest matches, 2 mismatch, 1 bad input.
func main() {
	key := flag.String("key", "", "revealed HMAC key (64 hex chars)")
	move := flag.String("move", "", "revealed computer move")
	digest := flag.String("hmac", "", "HMAC shown before the round")
	flag.Parse()

	if *key == "" || *move == "" || *digest == "" {
		flag.Usage()
		os.Exit(1)
	}

	ok, err := fairness.Verify(*key, *move, *digest)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if !ok {
		fmt.Println("MISMATCH")
		os.Exit(2)
	}
	fmt.Println("OK")
}
