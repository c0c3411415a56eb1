package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/tomz197/spacepong/internal/config"
	"github.com/tomz197/spacepong/internal/logging"
	"github.com/tomz197/spacepong/internal/loop"
	tuning "github.com/tomz197/spacepong/internal/loop/config"
	"github.com/tomz197/spacepong/internal/render"
	"github.com/tomz197/spacepong/internal/spectate"
	"github.com/tomz197/spacepong/internal/window"
)

func main() {
	configPath := flag.String("config", "", "config file (default spacepong.yaml)")
	variant := flag.String("variant", "", "game variant: space or classic")
	spectateAddr := flag.String("spectate", "", "serve a websocket frame feed on this address, e.g. :8081")
	flag.Parse()

	if err := run(*configPath, *variant, *spectateAddr); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, variant, spectateAddr string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if variant != "" {
		cfg.Game.Variant = variant
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	closer, err := logging.Setup(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()
	log := logrus.WithFields(logrus.Fields{"cmd": "window", "variant": cfg.Game.Variant})

	if cfg.Game.Variant == "classic" {
		w := window.New(tuning.ClassicWidth, tuning.ClassicHeight, "Pong", render.DrawClassic)
		return play(cfg, loop.NewClassic(log), w, w)
	}

	opts, err := loop.OptionsFrom(cfg.Game)
	if err != nil {
		return err
	}
	opts.Log = log
	g := loop.NewGame(opts)
	w := window.New(tuning.ScreenWidth, tuning.ScreenHeight, render.Title, render.Presenter{}.Draw)

	var fe loop.Frontend[loop.Frame] = w
	if spectateAddr != "" {
		hub := spectate.NewHub[loop.Frame](log.WithField("component", "spectate"))
		fe = tee{Frontend: w, hub: hub}
		go func() {
			log.WithField("addr", spectateAddr).Info("spectator feed listening")
			if err := http.ListenAndServe(spectateAddr, hub.Handler()); err != nil {
				log.WithError(err).Error("spectator feed stopped")
			}
		}()
	}
	return play(cfg, g, fe, w)
}

type runner interface {
	Run() error
	Stop()
}

// play runs the simulation in the background while the window owns the
// main goroutine, and stops whichever side is still running once the
// other finishes.
func play[F any](cfg *config.Settings, sim loop.Simulation[F], fe loop.Frontend[F], win runner) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	simErr := make(chan error, 1)
	go func() {
		err := loop.Run(ctx, sim, fe, cfg.Game.FPS)
		win.Stop()
		simErr <- err
	}()

	winErr := win.Run()
	cancel()
	return errors.Join(winErr, <-simErr)
}

// tee shows frames in the window and publishes them to spectators.
type tee struct {
	loop.Frontend[loop.Frame]
	hub *spectate.Hub[loop.Frame]
}

func (t tee) Present(f loop.Frame) error {
	t.hub.Publish(f)
	return t.Frontend.Present(f)
}
