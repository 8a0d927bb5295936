package ui

import (
	"context"
	"image"
	"math"
	"unicode"

	"maskpaint/internal/core"
	"maskpaint/internal/inpaint"
)

// BrushTarget is the surface side of the HUD.
type BrushTarget interface {
	core.ParameterProvider
	core.ParameterControlsProvider
	core.IntParameterSetter
}

// Generator is the request side of the HUD.
type Generator interface {
	Prompt() string
	SetPrompt(string)
	Busy() bool
	Outcome() inpaint.Outcome
	Start(ctx context.Context) bool
}

const maxPromptRunes = 200

// slider maps a horizontal track to an integer range.
type slider struct {
	x, y   float64
	width  float64
	min    int
	max    int
	active bool
}

func (s *slider) knobX(value int) float64 {
	if s.max <= s.min || s.width <= 0 {
		return s.x
	}
	return s.x + float64(value-s.min)/float64(s.max-s.min)*s.width
}

// valueAt converts a cursor x position into a value on the track.
func (s *slider) valueAt(mx float64) int {
	if s.max <= s.min || s.width <= 0 {
		return s.min
	}
	t := (mx - s.x) / s.width
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return s.min + int(math.Round(t*float64(s.max-s.min)))
}

// grab reports whether a press at (mx, my) starts dragging the slider. The
// knob and the whole track both accept the press.
func (s *slider) grab(mx, my float64, value int) bool {
	if math.Hypot(mx-s.knobX(value), my-s.y) <= knobRadius*1.5 {
		return true
	}
	return mx >= s.x && mx <= s.x+s.width && math.Abs(my-s.y) <= knobRadius
}

type promptField struct {
	rect    image.Rectangle
	runes   []rune
	focused bool
}

func newPromptField(text string) promptField {
	f := promptField{}
	f.set(text)
	return f
}

func (f *promptField) set(text string) {
	f.runes = f.runes[:0]
	f.insert([]rune(text))
}

func (f *promptField) insert(rs []rune) {
	for _, r := range rs {
		if !unicode.IsPrint(r) || len(f.runes) >= maxPromptRunes {
			continue
		}
		f.runes = append(f.runes, r)
	}
}

func (f *promptField) backspace() {
	if len(f.runes) > 0 {
		f.runes = f.runes[:len(f.runes)-1]
	}
}

func (f *promptField) String() string { return string(f.runes) }

// visibleTail returns the last runes of text that fit in n glyphs.
func visibleTail(text string, n int) string {
	rs := []rune(text)
	if n <= 0 {
		return ""
	}
	if len(rs) <= n {
		return text
	}
	return string(rs[len(rs)-n:])
}

func generateLabel(busy bool) string {
	if busy {
		return "Generating.."
	}
	return "Generate"
}

func statusLine(busy, loading bool, o inpaint.Outcome) string {
	switch {
	case busy:
		return "generating..."
	case loading && o.State == inpaint.OutcomeDone:
		return "loading result..."
	case o.State == inpaint.OutcomeFailed:
		if o.Err != nil {
			return "failed: " + o.Err.Error()
		}
		return "failed"
	case o.State == inpaint.OutcomeDone:
		return "done"
	default:
		return "ready"
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

const knobRadius = 8.0
