package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/tictac/audio"
	"github.com/lixenwraith/tictac/config"
	"github.com/lixenwraith/tictac/core"
	"github.com/lixenwraith/tictac/engine"
	"github.com/lixenwraith/tictac/input"
	"github.com/lixenwraith/tictac/terminal"
	"github.com/lixenwraith/tictac/tictactoe"
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mTICTAC CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	// Goroutines launched through core.Go restore the terminal before exiting
	core.SetCrashCleanup(func() {
		terminal.EmergencyReset(os.Stdout)
	})

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "tictac: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("tictac", flag.ContinueOnError)
	flags := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(flags.Path)
	if err != nil {
		return err
	}
	flags.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, logFile := setupLogging(cfg.LogDir, cfg.Debug)
	if logFile != nil {
		defer logFile.Close()
	}
	log := logger.WithField("component", "main")

	keys, err := input.LoadKeyConfig(cfg.Keys)
	if err != nil {
		return fmt.Errorf("key bindings: %w", err)
	}

	term, err := newTerminal(cfg.Backend)
	if err != nil {
		return err
	}

	audioCfg := audio.DefaultConfig()
	audioCfg.Enabled = cfg.Sound
	audioCfg.MasterVolume = cfg.Volume
	player := audio.NewPlayer(audioCfg, logger)
	if err := player.Init(); err != nil {
		// Player stays inactive and every cue is skipped
		log.WithError(err).Warn("audio unavailable, continuing without audio")
	}
	defer player.Close()

	e := engine.New[tictactoe.Game](term, engine.Config{
		Width:  cfg.Width,
		Height: cfg.Height,
		FPS:    cfg.FPS,
		Logger: logger,
	})
	if _, err := tictactoe.Setup(e, tictactoe.Options{
		OriginX: cfg.BoardX,
		OriginY: cfg.BoardY,
		Keys:    keys,
		Sound:   player,
		Logger:  logger,
	}); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	game := tictactoe.NewGame()
	runErr := e.Run(ctx, game)

	stats := e.RenderStats()
	log.WithFields(logrus.Fields{
		"frames":   e.Frame(),
		"rendered": stats.Frames,
		"cells":    stats.CellsWritten,
		"winner":   game.Winner().String(),
		"skipped":  player.Skipped(),
	}).Info("session ended")

	return runErr
}

func newTerminal(backend string) (terminal.Terminal, error) {
	switch backend {
	case config.BackendTcell:
		return terminal.NewTcell(nil)
	default:
		return terminal.New(), nil
	}
}
