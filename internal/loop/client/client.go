// Package client is the frontend for one ANSI terminal, local or remote.
// It reads keys from a byte stream, draws frames through a presenter and
// writes colored half-block output in network-sized chunks.
package client

import (
	"image/color"
	"io"
	"time"

	"github.com/tomz197/spacepong/internal/draw"
	"github.com/tomz197/spacepong/internal/input"
	"github.com/tomz197/spacepong/internal/loop"
	"github.com/tomz197/spacepong/internal/loop/config"
	"github.com/tomz197/spacepong/internal/loop/server"
	"github.com/tomz197/spacepong/internal/object"
	"github.com/tomz197/spacepong/internal/render"
)

// PresentFunc draws a frame of type F onto a surface.
type PresentFunc[F any] func(render.Surface, F)

// Client handles rendering and input for a single terminal. It satisfies
// loop.Frontend[F].
type Client[F any] struct {
	canvas       *draw.Canvas
	surface      *draw.TermSurface
	chunkWriter  *draw.ChunkWriter // Accumulates output for chunked writes
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	present      PresentFunc[F]
	events       <-chan server.Event
	now          func() time.Time

	idleWarn   time.Duration
	idleQuit   time.Duration
	lastInput  time.Time
	isInactive bool
	shutdownAt time.Time // Zero unless the server is going down
}

// Options configures the client.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Hold         time.Duration       // Key hold window, see input.Tracker
	Events       <-chan server.Event // Lobby notices, nil for local play
	IdleWarn     time.Duration       // Zero disables the inactivity warning
	IdleQuit     time.Duration       // Zero disables the inactivity disconnect
	Now          func() time.Time
}

// NewClient creates a client drawing a width×height field on the terminal
// behind r and w.
func NewClient[F any](r io.ByteReader, w io.Writer, width, height float64, present PresentFunc[F], opts Options) *Client[F] {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, width, height)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client[F]{
		canvas:       canvas,
		surface:      draw.NewTermSurface(canvas),
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r, opts.Hold),
		termSizeFunc: termSizeFunc,
		present:      present,
		events:       opts.Events,
		now:          now,
		idleWarn:     opts.IdleWarn,
		idleQuit:     opts.IdleQuit,
		lastInput:    now(),
	}
}

// Start prepares the terminal for drawing.
func (c *Client[F]) Start() {
	draw.HideCursor(c.writer)
	draw.ClearScreen(c.writer)
}

// Close restores the terminal.
func (c *Client[F]) Close() {
	draw.ClearScreen(c.writer)
	draw.ShowCursor(c.writer)
}

// Poll reads pending input. It returns loop.ErrQuit once the player has
// been idle for too long or a server shutdown notice has been shown.
func (c *Client[F]) Poll() (input.Frame, error) {
	in := input.ReadInput(c.inputStream)
	now := c.now()

	c.processServerEvents(now)
	if !c.shutdownAt.IsZero() && !now.Before(c.shutdownAt) {
		return in, loop.ErrQuit
	}

	idle := now.Sub(c.lastInput)
	switch {
	case len(in.Pressed) > 0:
		c.lastInput = now
		c.isInactive = false
	case c.idleQuit > 0 && idle > c.idleQuit:
		return in, loop.ErrQuit
	case c.idleWarn > 0 && idle > c.idleWarn:
		c.isInactive = true
	}

	c.updateScreen()
	return in, nil
}

// processServerEvents handles notices from the lobby.
func (c *Client[F]) processServerEvents(now time.Time) {
	for {
		select {
		case ev, ok := <-c.events:
			if !ok {
				c.events = nil
				return
			}
			if ev.Type == server.EventServerShutdown && c.shutdownAt.IsZero() {
				c.shutdownAt = now.Add(config.ShutdownDisplayTime)
			}
		default:
			return
		}
	}
}

// Present draws f and any notices over it.
func (c *Client[F]) Present(f F) error {
	c.present(c.surface, f)

	w, h := c.surface.Size()
	switch {
	case !c.shutdownAt.IsZero():
		c.drawNotice(w, h, "SERVER SHUTTING DOWN",
			"Thanks for playing. This session closes in a few seconds.")
	case c.isInactive:
		c.drawNotice(w, h, "INACTIVITY WARNING",
			"Press any key or you will be disconnected.")
	}

	return c.surface.Flush(c.chunkWriter)
}

func (c *Client[F]) drawNotice(w, h float64, title, msg string) {
	c.surface.FillRect(0, h/2-h/8, w, h/4, color.NRGBA{0, 0, 0, 200})
	centerText(c.surface, w, h/2-h/16, title, object.Gold)
	centerText(c.surface, w, h/2+h/32, msg, object.White)
}

func centerText(s render.Surface, w, y float64, text string, c color.Color) {
	s.Text(w/2-render.TextWidth(text, 1)/2, y, text, 1, c)
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client[F]) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.chunkWriter)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
