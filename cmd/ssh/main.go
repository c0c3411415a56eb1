package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/sirupsen/logrus"

	"github.com/tomz197/spacepong/internal/config"
	"github.com/tomz197/spacepong/internal/draw"
	applog "github.com/tomz197/spacepong/internal/logging"
	"github.com/tomz197/spacepong/internal/loop"
	"github.com/tomz197/spacepong/internal/loop/client"
	tuning "github.com/tomz197/spacepong/internal/loop/config"
	"github.com/tomz197/spacepong/internal/loop/server"
	"github.com/tomz197/spacepong/internal/render"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load(config.GetEnv("SPACEPONG_CONFIG", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	cfg.Log.File = config.GetEnv("SSH_LOG_FILE", "-")
	closer, err := applog.Setup(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	host := config.GetEnv("SSH_HOST", cfg.SSH.Host)
	port := config.GetEnv("SSH_PORT", cfg.SSH.Port)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", cfg.SSH.HostKeyPath)
	cfg.SSH.IdleTimeout = config.GetEnvInt("SSH_IDLE_TIMEOUT", cfg.SSH.IdleTimeout)

	log := logrus.WithField("cmd", "ssh")
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		log.WithError(workErr).Warn("failed to get working directory")
	}
	log.WithFields(logrus.Fields{
		"host":        host,
		"port":        port,
		"host_key":    hostKeyPath,
		"working_dir": workingDir,
		"variant":     cfg.Game.Variant,
	}).Info("ssh config")

	// Shared by every session: the high-score board and shutdown notices.
	lobby := server.NewLobby(nil, logrus.WithField("component", "lobby"))

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware(lobby, cfg),
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.WithError(err).Fatal("failed to create server")
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Infof("Starting SSH server on %s", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	<-done
	log.Info("Shutting down server...")

	// Notify players and give them a moment to read it before closing.
	log.WithField("sessions", lobby.Count()).Info("notifying connected players about shutdown")
	lobby.Shutdown(shutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("shutdown error")
	}
}

// gameMiddleware runs a private match for every SSH session.
func gameMiddleware(lobby *server.Lobby, cfg *config.Settings) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			session := lobby.Join(sess.User())
			defer lobby.Leave(session.ID)

			log := logrus.WithFields(logrus.Fields{
				"session": session.ID,
				"user":    sess.User(),
			})
			log.WithFields(logrus.Fields{
				"terminal": pty.Term,
				"width":    pty.Window.Width,
				"height":   pty.Window.Height,
			}).Info("new game session")

			// Create a terminal size tracker that updates on window changes
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

			// Listen for window size changes in a goroutine
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			idle := time.Duration(cfg.SSH.IdleTimeout) * time.Second
			clientOpts := client.Options{
				TermSizeFunc: sizeTracker.getSize,
				Hold:         loop.HoldDuration(cfg.Game),
				Events:       session.Events,
				IdleWarn:     idle * 3 / 4,
				IdleQuit:     idle,
			}

			var err error
			if cfg.Game.Variant == "classic" {
				err = serve(sess, cfg, loop.NewClassic(log), tuning.ClassicWidth, tuning.ClassicHeight, render.DrawClassic, clientOpts)
			} else {
				err = serveSpace(sess, cfg, lobby, log, clientOpts)
			}
			if err != nil {
				log.WithError(err).Warn("game error")
			}

			log.Info("session ended")
			next(sess)
		}
	}
}

func serveSpace(sess ssh.Session, cfg *config.Settings, lobby *server.Lobby, log *logrus.Entry, clientOpts client.Options) error {
	opts, err := loop.OptionsFrom(cfg.Game)
	if err != nil {
		return err
	}
	opts.Board = lobby.Board()
	opts.Log = log
	return serve(sess, cfg, loop.NewGame(opts), tuning.ScreenWidth, tuning.ScreenHeight, render.Presenter{}.Draw, clientOpts)
}

// serve drives sim on the session's terminal until the player quits,
// goes idle or disconnects.
func serve[F any](sess ssh.Session, cfg *config.Settings, sim loop.Simulation[F], width, height float64, present func(render.Surface, F), opts client.Options) error {
	c := client.NewClient(bufio.NewReader(sess), sess, width, height, present, opts)
	c.Start()
	defer c.Close()
	return loop.Run(sess.Context(), sim, c, cfg.Game.FPS)
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
