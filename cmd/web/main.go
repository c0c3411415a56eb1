package main

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tomz197/spacepong/internal/config"
	"github.com/tomz197/spacepong/internal/highscore"
	"github.com/tomz197/spacepong/internal/logging"
	"github.com/tomz197/spacepong/internal/loop"
	tuning "github.com/tomz197/spacepong/internal/loop/config"
	"github.com/tomz197/spacepong/internal/render"
	"github.com/tomz197/spacepong/internal/spectate"
)

//go:embed index.html
var htmlPage string

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "web error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.GetEnv("SPACEPONG_CONFIG", ""))
	if err != nil {
		return err
	}
	cfg.Log.File = config.GetEnv("WEB_LOG_FILE", "-")
	closer, err := logging.Setup(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	host := config.GetEnv("WEB_HOST", cfg.Web.Host)
	port := config.GetEnv("WEB_PORT", cfg.Web.Port)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	log := logrus.WithField("cmd", "web")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The demo match plays itself; visitors only watch.
	opts, err := loop.OptionsFrom(cfg.Game)
	if err != nil {
		return err
	}
	board := highscore.NewBoard(highscore.DefaultLimit)
	opts.Autoplay = true
	opts.Board = board
	opts.Log = log.WithField("component", "demo")
	game := loop.NewGame(opts)

	hub := spectate.NewHub[loop.Frame](log.WithField("component", "spectate"))
	go func() {
		if err := loop.Run(ctx, game, hub, cfg.Game.FPS); err != nil {
			log.WithError(err).Error("demo match stopped")
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		page := strings.Replace(htmlPage, "{{.SSHHost}}", sshHost, -1)
		fmt.Fprint(w, page)
	})
	mux.Handle("/ws", hub.Handler())
	mux.HandleFunc("/frame.png", framePNG(hub, log))
	mux.HandleFunc("/scores", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := board.Save(w); err != nil {
			log.WithError(err).Warn("failed to write scores")
		}
	})

	addr := net.JoinHostPort(host, port)
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Infof("Starting web server on http://%s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// framePNG renders the latest demo frame as a PNG snapshot.
func framePNG(hub *spectate.Hub[loop.Frame], log *logrus.Entry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, ok := hub.Latest()
		if !ok {
			http.Error(w, "no frame yet", http.StatusServiceUnavailable)
			return
		}
		raster, err := render.NewRaster(tuning.ScreenWidth, tuning.ScreenHeight)
		if err != nil {
			log.WithError(err).Error("failed to create raster")
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}
		render.Presenter{}.Draw(raster, f)

		var buf bytes.Buffer
		if err := raster.EncodePNG(&buf); err != nil {
			log.WithError(err).Error("failed to encode frame")
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(buf.Bytes())
	}
}
