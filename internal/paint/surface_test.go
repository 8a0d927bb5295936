package paint

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"math"
	"strings"
	"testing"
)

func newRecorder(s *Surface) *[]Stamp {
	stamps := &[]Stamp{}
	s.OnStamp = func(st Stamp) { *stamps = append(*stamps, st) }
	return stamps
}

func TestPressReleaseCyclesRecordStrokes(t *testing.T) {
	s := New(DefaultConfig())
	cycles := 5
	for c := 0; c < cycles; c++ {
		s.Press(float64(10+c), 20)
		for m := 0; m < c; m++ {
			s.Move(float64(12+c+m), 22)
		}
		s.Release()
		if s.State() != Idle {
			t.Fatalf("cycle %d: expected idle after release, got %s", c, s.State())
		}
	}
	hist := s.History()
	if len(hist) != cycles {
		t.Fatalf("expected %d strokes, got %d", cycles, len(hist))
	}
	seen := map[string]bool{}
	for i, st := range hist {
		if len(st.Points) != 1 {
			t.Fatalf("stroke %d: expected one point, got %d", i, len(st.Points))
		}
		if st.ID == "" || seen[st.ID] {
			t.Fatalf("stroke %d: expected unique id, got %q", i, st.ID)
		}
		seen[st.ID] = true
	}

	// Releases without a press are ignored.
	s.Release()
	s.Leave()
	if got := len(s.History()); got != cycles {
		t.Fatalf("stray release recorded a stroke: %d", got)
	}
}

func TestStampCountPerMove(t *testing.T) {
	diameters := []int{1, 3, 7, 10, 33, 50, 99, 100}
	moves := [][2]float64{{0, 0}, {3, 4}, {10, 0}, {0, 37.5}, {-120, 45}, {200, 200}}
	for _, d := range diameters {
		for _, mv := range moves {
			s := New(DefaultConfig())
			s.SetBrushDiameter(d)
			stamps := newRecorder(s)
			s.Press(150, 150)
			s.Move(150+mv[0], 150+mv[1])

			dist := math.Hypot(mv[0], mv[1])
			want := int(math.Floor(dist/(float64(d)/10))) + 1
			if len(*stamps) != want {
				t.Fatalf("D=%d move=%v: expected %d stamps, got %d", d, mv, want, len(*stamps))
			}
			first := (*stamps)[0]
			if first.X != 150 || first.Y != 150 {
				t.Fatalf("D=%d: first stamp should sit on the reference point, got (%f,%f)", d, first.X, first.Y)
			}
			for _, st := range *stamps {
				if st.Radius != float64(d)/2 {
					t.Fatalf("D=%d: expected radius %f, got %f", d, float64(d)/2, st.Radius)
				}
			}
			if s.Stamps() != want {
				t.Fatalf("D=%d: stamp counter %d, expected %d", d, s.Stamps(), want)
			}
		}
	}
}

func TestMoveWhileIdleDoesNothing(t *testing.T) {
	s := New(DefaultConfig())
	stamps := newRecorder(s)
	s.Move(10, 10)
	s.Move(40, 40)
	if len(*stamps) != 0 {
		t.Fatalf("expected no stamps while idle, got %d", len(*stamps))
	}
}

func TestLayersReceiveSameGeometry(t *testing.T) {
	s := New(DefaultConfig())
	s.SetBrushDiameter(20)
	stamps := newRecorder(s)
	s.Press(100, 100)
	s.Move(160, 130)
	s.Move(260, 90)
	s.Release()

	vis, mask := s.VisualImage(), s.MaskImage()
	b := mask.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			mv := mask.RGBAAt(x, y)
			vv := vis.RGBAAt(x, y)
			if mv.R != mv.G || mv.G != mv.B || mv.A != 0xff {
				t.Fatalf("mask pixel (%d,%d) is not grey: %+v", x, y, mv)
			}
			if vv.A > 0 && mv.R == 0 {
				t.Fatalf("pixel (%d,%d) painted on the visual layer only", x, y)
			}

			px, py := float64(x)+0.5, float64(y)+0.5
			nearest := math.Inf(1)
			for _, st := range *stamps {
				if d := math.Hypot(px-st.X, py-st.Y) - st.Radius; d < nearest {
					nearest = d
				}
			}
			switch {
			case nearest < -1:
				if mv.R != 0xff {
					t.Fatalf("pixel (%d,%d) inside a stamp is not white in the mask: %+v", x, y, mv)
				}
				if vv.A < s.cfg.Highlight.A {
					t.Fatalf("pixel (%d,%d) inside a stamp is not highlighted: %+v", x, y, vv)
				}
			case nearest > 1:
				if mv.R != 0 || vv.A != 0 {
					t.Fatalf("pixel (%d,%d) outside every stamp was painted: mask=%+v visual=%+v", x, y, mv, vv)
				}
			}
		}
	}
}

func decodeMask(t *testing.T, s *Surface) *image.RGBA {
	t.Helper()
	data := s.ExportMaskAsImage()
	if data == nil {
		t.Fatal("export returned nil for an initialized surface")
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("exported mask is not a png: %v", err)
	}
	rgba, ok := img.(*image.RGBA)
	if !ok {
		b := img.Bounds()
		rgba = image.NewRGBA(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				rgba.Set(x, y, img.At(x, y))
			}
		}
	}
	return rgba
}

func TestExportBeforeDrawingIsBlack(t *testing.T) {
	s := New(DefaultConfig())
	img := decodeMask(t, s)
	if img.Bounds() != image.Rect(0, 0, 512, 512) {
		t.Fatalf("expected 512x512 mask, got %v", img.Bounds())
	}
	for y := 0; y < 512; y++ {
		for x := 0; x < 512; x++ {
			c := img.RGBAAt(x, y)
			if c.R != 0 || c.G != 0 || c.B != 0 || c.A != 0xff {
				t.Fatalf("pixel (%d,%d) = %+v, expected opaque black", x, y, c)
			}
		}
	}
}

func TestExportAfterStampHasWhiteNearStamp(t *testing.T) {
	s := New(DefaultConfig())
	s.SetBrushDiameter(8)
	s.Press(300, 40)
	s.Move(300, 40)
	s.Release()

	img := decodeMask(t, s)
	found := false
	for y := 36; y <= 44 && !found; y++ {
		for x := 296; x <= 304; x++ {
			if math.Hypot(float64(x)+0.5-300, float64(y)+0.5-40) > 4 {
				continue
			}
			if img.RGBAAt(x, y).R == 0xff {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatal("expected a white pixel within the brush radius of the stamp")
	}
	if img.RGBAAt(0, 0).R != 0 {
		t.Fatal("far corner should remain black")
	}
}

func TestMaskIsOpaqueGreyWithSoftEdges(t *testing.T) {
	s := New(DefaultConfig())
	s.Press(100, 100)
	s.Move(100, 100)
	s.Release()

	img := decodeMask(t, s)
	if got := img.RGBAAt(100, 100); got.R != 0xff || got.G != 0xff || got.B != 0xff || got.A != 0xff {
		t.Fatalf("expected white at the stamp centre, got %v", got)
	}
	edge := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.A != 0xff || c.R != c.G || c.G != c.B {
				t.Fatalf("pixel (%d,%d) is not opaque grey: %v", x, y, c)
			}
			if c.R != 0 && c.R != 0xff {
				edge++
			}
		}
	}
	if edge == 0 {
		t.Fatal("expected anti-aliased grey pixels along the stamp edge")
	}
}

func TestZeroSurfaceExport(t *testing.T) {
	var s Surface
	if data := s.ExportMaskAsImage(); data != nil {
		t.Fatalf("expected nil export, got %d bytes", len(data))
	}
	if url := s.MaskDataURL(); url != "" {
		t.Fatalf("expected empty data url, got %q", url)
	}
	if err := s.EncodeMask(&bytes.Buffer{}, "png"); !errors.Is(err, ErrUninitialized) {
		t.Fatalf("expected ErrUninitialized, got %v", err)
	}
	// Events on a zero surface must not panic.
	s.Press(1, 1)
	s.Move(5, 5)
	s.Release()
	if s.Stamps() != 0 {
		t.Fatalf("zero surface should not count stamps, got %d", s.Stamps())
	}
}

func TestMaskDataURL(t *testing.T) {
	s := New(DefaultConfig())
	url := s.MaskDataURL()
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("unexpected data url prefix: %.40s", url)
	}
}

func TestLeaveEndsStrokeLikeRelease(t *testing.T) {
	s := New(DefaultConfig())
	s.Press(10, 10)
	s.Move(30, 10)
	s.Leave()
	if s.State() != Idle {
		t.Fatalf("expected idle after leave, got %s", s.State())
	}
	if len(s.History()) != 1 {
		t.Fatalf("expected one stroke after leave, got %d", len(s.History()))
	}
	before := s.Stamps()
	s.Move(60, 10)
	if s.Stamps() != before {
		t.Fatal("moves after leave must not stamp")
	}
	last := s.History()[0].Points[0]
	if last.X != 30 || last.Y != 10 {
		t.Fatalf("expected last reference point (30,10), got (%f,%f)", last.X, last.Y)
	}
}

func TestSinglePointScenario(t *testing.T) {
	s := New(DefaultConfig())
	s.SetBrushDiameter(50)
	stamps := newRecorder(s)
	s.Press(100, 100)
	s.Move(100, 100)
	s.Release()

	if len(*stamps) != 1 {
		t.Fatalf("expected exactly one stamp, got %d", len(*stamps))
	}
	if got := (*stamps)[0]; got != (Stamp{X: 100, Y: 100, Radius: 25}) {
		t.Fatalf("unexpected stamp %+v", got)
	}
	if c := s.MaskImage().RGBAAt(100, 100); c.R != 0xff {
		t.Fatalf("mask centre not white: %+v", c)
	}
	if c := s.VisualImage().RGBAAt(100, 100); c != s.cfg.Highlight {
		t.Fatalf("visual centre %+v, expected %+v", c, s.cfg.Highlight)
	}
	hist := s.History()
	if len(hist) != 1 || len(hist[0].Points) != 1 {
		t.Fatalf("expected one one-point stroke, got %+v", hist)
	}
	if p := hist[0].Points[0]; p.X != 100 || p.Y != 100 || p.Diameter != 50 {
		t.Fatalf("unexpected recorded point %+v", p)
	}
}

func TestDiameterChangeAppliesToNextStamp(t *testing.T) {
	s := New(DefaultConfig())
	s.SetBrushDiameter(20)
	stamps := newRecorder(s)
	s.Press(50, 50)
	s.Move(52, 50)
	s.SetBrushDiameter(60)
	s.Move(52, 50)

	if len(*stamps) != 3 {
		t.Fatalf("expected 3 stamps, got %d", len(*stamps))
	}
	if (*stamps)[0].Radius != 10 || (*stamps)[1].Radius != 10 {
		t.Fatalf("stamps before the change should keep radius 10: %+v", *stamps)
	}
	if (*stamps)[2].Radius != 30 {
		t.Fatalf("stamp after the change should use radius 30: %+v", (*stamps)[2])
	}
	// The mask keeps the small footprint drawn before the change.
	if c := s.MaskImage().RGBAAt(50, 75); c.R != 0xff {
		t.Fatalf("expected the larger stamp to reach (50,75): %+v", c)
	}
}

func TestSetBrushDiameterClamps(t *testing.T) {
	s := New(DefaultConfig())
	if got := s.SetBrushDiameter(0); got != MinDiameter {
		t.Fatalf("expected clamp to %d, got %d", MinDiameter, got)
	}
	if got := s.SetBrushDiameter(250); got != MaxDiameter {
		t.Fatalf("expected clamp to %d, got %d", MaxDiameter, got)
	}
	if got := s.BrushDiameter(); got != MaxDiameter {
		t.Fatalf("expected live diameter %d, got %d", MaxDiameter, got)
	}
}

func TestStampsClipAtEdges(t *testing.T) {
	s := New(DefaultConfig())
	s.SetBrushDiameter(100)
	s.Press(-30, -30)
	s.Move(5, 5)
	s.Press(600, 600)
	s.Move(600, 600)
	s.Release()
	if c := s.MaskImage().RGBAAt(0, 0); c.R != 0xff {
		t.Fatalf("corner under the brush should be white: %+v", c)
	}
	if c := s.MaskImage().RGBAAt(511, 511); c.R != 0 {
		t.Fatalf("stamp fully outside must not paint: %+v", c)
	}
}
