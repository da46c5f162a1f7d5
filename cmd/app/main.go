package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"fair_rps/internal/config"
	"fair_rps/internal/console"
	"fair_rps/internal/game"
	"fair_rps/internal/logger"
	"fair_rps/internal/presets"
	"fair_rps/internal/session"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	prog := filepath.Base(os.Args[0])
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	preset := fs.String("preset", "", "use a named move set from the presets file")
	presetsFile := fs.String("presets", cfg.PresetsFile, "presets YAML file")
	keyPolicy := fs.String("key-policy", cfg.KeyPolicy, "HMAC key lifetime: round or session")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	policy, err := session.ParseKeyPolicy(*keyPolicy)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	moves, err := resolveMoves(*preset, *presetsFile, fs.Args())
	if err != nil {
		logger.Warn("move set rejected", "error", err)
		if errors.Is(err, game.ErrInvalidMoveSet) {
			console.Usage(os.Stdout, prog)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return 1
	}

	s, err := session.New(moves, session.WithKeyPolicy(policy))
	if err != nil {
		logger.Error("could not start session", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := console.Run(ctx, os.Stdin, os.Stdout, s); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("session aborted", "session", s.ID, "error", err)
		return 1
	}
	return 0
}

func resolveMoves(preset, presetsFile string, args []string) (game.MoveSet, error) {
	if preset == "" {
		return game.NewMoveSet(args)
	}
	if len(args) > 0 {
		return game.MoveSet{}, fmt.Errorf("-preset cannot be combined with explicit moves")
	}
	catalog, err := presets.Load(presetsFile)
	if err != nil {
		return game.MoveSet{}, err
	}
	return catalog.Lookup(preset)
}
