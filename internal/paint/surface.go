package paint

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"maskpaint/internal/core"

	"github.com/google/uuid"
	"golang.org/x/image/vector"
)

// State is the pointer state of a Surface.
type State int

const (
	// Idle means no button is held over the surface.
	Idle State = iota
	// Drawing means a press was received and moves stamp the brush.
	Drawing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	default:
		return "unknown"
	}
}

// Stamp is one filled circle applied to both layers.
type Stamp struct {
	X, Y   float64
	Radius float64
}

// layer is a raster buffer together with the colour stamped onto it.
type layer struct {
	img *image.RGBA
	src *image.Uniform
}

// Surface is a freehand mask painter. It keeps a visual layer for on-screen
// feedback and a mask layer (white on black) that is exported to the
// inpainting service. Both layers are only ever written by stamp, so they
// always carry the same geometry.
//
// Stamps are anti-aliased: the mask is opaque grey-scale, white inside the
// brush and black outside, with grey pixels along circle edges. It is not
// strictly binary.
//
// A Surface is not safe for concurrent use; pointer events are expected from a
// single UI loop.
type Surface struct {
	cfg    Config
	visual layer
	mask   layer
	ras    vector.Rasterizer

	state    State
	diameter int
	ref      core.Point
	hasRef   bool

	// history is recorded on every release but nothing reads it back yet;
	// there is no undo or replay of completed strokes.
	history []core.Stroke
	stamps  int

	// OnStamp, when set, observes every stamp after both layers were painted.
	OnStamp func(Stamp)
}

// New allocates both layers and clears them: the visual layer to transparent
// and the mask layer to opaque black.
func New(cfg Config) *Surface {
	def := DefaultConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.Highlight == (color.RGBA{}) {
		cfg.Highlight = def.Highlight
	}
	bounds := image.Rect(0, 0, cfg.Width, cfg.Height)
	s := &Surface{
		cfg:      cfg,
		diameter: clampDiameter(cfg.Diameter),
		visual:   layer{img: image.NewRGBA(bounds), src: image.NewUniform(cfg.Highlight)},
		mask:     layer{img: image.NewRGBA(bounds), src: image.NewUniform(color.White)},
	}
	draw.Draw(s.visual.img, bounds, image.Transparent, image.Point{}, draw.Src)
	draw.Draw(s.mask.img, bounds, image.Black, image.Point{}, draw.Src)
	return s
}

// Size returns the layer dimensions.
func (s *Surface) Size() core.Size { return core.Size{W: s.cfg.Width, H: s.cfg.Height} }

// State reports whether a stroke is in progress.
func (s *Surface) State() State { return s.state }

// BrushDiameter returns the live brush diameter.
func (s *Surface) BrushDiameter() int { return s.brush() }

// SetBrushDiameter updates the brush diameter, clamped to [1, 100], and
// returns the stored value. Stamps already drawn are not affected.
func (s *Surface) SetBrushDiameter(d int) int {
	s.diameter = clampDiameter(d)
	return s.diameter
}

// Press starts a stroke at (x, y). Nothing is stamped until the first move.
func (s *Surface) Press(x, y float64) {
	s.state = Drawing
	s.ref = core.Point{X: x, Y: y, Diameter: s.brush()}
	s.hasRef = true
}

// Move stamps the brush from the reference point to (x, y) and makes (x, y)
// the new reference point. Moves while idle are ignored.
func (s *Surface) Move(x, y float64) {
	if s.state != Drawing || !s.hasRef {
		return
	}
	next := core.Point{X: x, Y: y, Diameter: s.brush()}
	s.segment(s.ref, next)
	s.ref = next
}

// Release ends the stroke and records the last reference point as a
// one-point stroke.
func (s *Surface) Release() {
	if s.state != Drawing {
		return
	}
	s.state = Idle
	if !s.hasRef {
		return
	}
	s.history = append(s.history, core.Stroke{
		ID:     uuid.NewString(),
		Points: []core.Point{s.ref},
	})
	s.ref = core.Point{}
	s.hasRef = false
}

// Leave handles the cursor leaving the surface bounds; it ends the stroke
// exactly like Release.
func (s *Surface) Leave() { s.Release() }

// History returns a copy of the completed stroke records.
func (s *Surface) History() []core.Stroke {
	out := make([]core.Stroke, len(s.history))
	copy(out, s.history)
	return out
}

// Stamps returns the number of stamps applied since the surface was created.
func (s *Surface) Stamps() int { return s.stamps }

// VisualImage exposes the feedback layer. It is nil on a zero Surface.
func (s *Surface) VisualImage() *image.RGBA { return s.visual.img }

// MaskImage exposes the mask layer. It is nil on a zero Surface.
func (s *Surface) MaskImage() *image.RGBA { return s.mask.img }

// brush reads the live diameter. The per-point diameter is informational only.
func (s *Surface) brush() int { return clampDiameter(s.diameter) }

// segment walks from p to q in steps of D/10 and stamps a circle of radius
// D/2 at every step, including the starting point. It returns the number of
// stamps, floor(d/(D/10)) + 1.
func (s *Surface) segment(p, q core.Point) int {
	d := float64(s.brush())
	dist := math.Hypot(q.X-p.X, q.Y-p.Y)
	angle := math.Atan2(q.Y-p.Y, q.X-p.X)
	step := d / 10
	n := int(math.Floor(dist / step))
	cos, sin := math.Cos(angle), math.Sin(angle)
	for k := 0; k <= n; k++ {
		i := float64(k) * step
		s.stamp(p.X+cos*i, p.Y+sin*i, d/2)
	}
	return n + 1
}

// stamp paints one circle into both layers.
func (s *Surface) stamp(x, y, radius float64) {
	if s.mask.img == nil || s.visual.img == nil {
		return
	}
	for _, l := range [...]*layer{&s.visual, &s.mask} {
		l.fillCircle(&s.ras, x, y, radius)
	}
	s.stamps++
	if s.OnStamp != nil {
		s.OnStamp(Stamp{X: x, Y: y, Radius: radius})
	}
}
