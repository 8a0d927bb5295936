package app

import (
	"image"

	"maskpaint/internal/paint"
)

// pointerInput is one frame of left-button state in canvas-local pixels.
type pointerInput struct {
	X, Y        float64
	Inside      bool
	Down        bool
	JustPressed bool
}

// canvasPointer maps a cursor position to canvas-local input for a canvas of
// the given size placed at the screen origin.
func canvasPointer(mx, my int, size image.Point, down, justPressed bool) pointerInput {
	return pointerInput{
		X:           float64(mx),
		Y:           float64(my),
		Inside:      mx >= 0 && my >= 0 && mx < size.X && my < size.Y,
		Down:        down,
		JustPressed: justPressed,
	}
}

// pointerTracker turns per-frame input into surface events: press inside the
// canvas, move on position change, release on button up, leave on exit.
type pointerTracker struct {
	lastX, lastY float64
}

func (p *pointerTracker) apply(s *paint.Surface, in pointerInput) {
	if s.State() == paint.Idle {
		if in.Inside && in.JustPressed {
			s.Press(in.X, in.Y)
			p.lastX, p.lastY = in.X, in.Y
		}
		return
	}
	if !in.Inside {
		s.Leave()
		return
	}
	if in.X != p.lastX || in.Y != p.lastY {
		s.Move(in.X, in.Y)
		p.lastX, p.lastY = in.X, in.Y
	}
	if !in.Down {
		s.Release()
	}
}
