package render

import (
	"github.com/tomz197/spacepong/internal/loop"
	"github.com/tomz197/spacepong/internal/object"
)

// DrawClassic renders a classic frame: black field, white paddles and ball.
// The score is only logged.
func DrawClassic(s Surface, f loop.ClassicFrame) {
	s.Clear(object.Black)
	s.FillRect(f.Left.X, f.Left.Y, f.Left.Width, f.Left.Height, object.White)
	s.FillRect(f.Right.X, f.Right.Y, f.Right.Width, f.Right.Height, object.White)
	s.FillRect(f.Ball.X, f.Ball.Y, f.Ball.W, f.Ball.H, object.White)
}
