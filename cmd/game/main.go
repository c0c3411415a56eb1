package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/tomz197/spacepong/internal/config"
	"github.com/tomz197/spacepong/internal/logging"
	"github.com/tomz197/spacepong/internal/loop"
	"github.com/tomz197/spacepong/internal/loop/client"
	tuning "github.com/tomz197/spacepong/internal/loop/config"
	"github.com/tomz197/spacepong/internal/render"
	"github.com/tomz197/spacepong/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "config file (default spacepong.yaml)")
	variant := flag.String("variant", "", "game variant: space or classic")
	frontend := flag.String("frontend", "", "terminal frontend: tcell or ansi")
	flag.Parse()

	if err := run(*configPath, *variant, *frontend); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, variant, frontend string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if variant != "" {
		cfg.Game.Variant = variant
	}
	if frontend != "" {
		cfg.Game.Frontend = frontend
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	closer, err := logging.Setup(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()
	log := logrus.WithField("variant", cfg.Game.Variant)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithField("frontend", cfg.Game.Frontend).Info("game starting")
	defer log.Info("game stopped")

	if cfg.Game.Variant == "classic" {
		c := loop.NewClassic(log)
		return play(ctx, cfg, c, tuning.ClassicWidth, tuning.ClassicHeight, render.DrawClassic)
	}

	opts, err := loop.OptionsFrom(cfg.Game)
	if err != nil {
		return err
	}
	opts.Log = log
	g := loop.NewGame(opts)
	return play(ctx, cfg, g, tuning.ScreenWidth, tuning.ScreenHeight, render.Presenter{}.Draw)
}

// play runs sim on the configured terminal frontend.
func play[F any](ctx context.Context, cfg *config.Settings, sim loop.Simulation[F], width, height float64, present func(render.Surface, F)) error {
	hold := loop.HoldDuration(cfg.Game)

	switch cfg.Game.Frontend {
	case "ansi":
		fd := int(os.Stdin.Fd())
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("failed to enable raw mode: %w", err)
		}
		defer func() {
			_ = term.Restore(fd, oldState)
		}()

		c := client.NewClient(bufio.NewReader(os.Stdin), os.Stdout, width, height, present, client.Options{Hold: hold})
		c.Start()
		defer c.Close()
		return loop.Run(ctx, sim, c, cfg.Game.FPS)
	default:
		scr, err := tui.Open(width, height, present, hold)
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		defer scr.Close()
		return loop.Run(ctx, sim, scr, cfg.Game.FPS)
	}
}
