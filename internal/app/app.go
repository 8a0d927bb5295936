//go:build ebiten

package app

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
	"net/http"
	"os"

	"maskpaint/internal/imageio"
	"maskpaint/internal/inpaint"
	"maskpaint/internal/paint"
	"maskpaint/internal/render"
	"maskpaint/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUDWidth is the width of the control panel in logical pixels.
const HUDWidth = 240

// Game adapts the painting surface and the inpainting controller to the
// ebiten.Game interface. The screen is laid out as the canvas (source image
// with the surface on top), the result panel and the HUD.
type Game struct {
	ctx     context.Context
	cfg     *Config
	hc      *http.Client
	surface *paint.Surface
	ctrl    *inpaint.Controller

	painter *render.LayerPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	source *ebiten.Image
	result *ebiten.Image

	inbox   resultInbox
	pointer pointerTracker

	dirty   bool
	inside  bool
	loading bool
	size    image.Point
}

// New wires a Game around the surface and controller. source may be nil when
// the image could not be loaded.
func New(ctx context.Context, cfg *Config, surface *paint.Surface, ctrl *inpaint.Controller, source image.Image, hc *http.Client) *Game {
	s := surface.Size()
	g := &Game{
		ctx:     ctx,
		cfg:     cfg,
		hc:      hc,
		surface: surface,
		ctrl:    ctrl,
		painter: render.NewLayerPainter(s.W, s.H),
		overlay: ui.NewOverlay(s.W, s.H),
		size:    image.Pt(s.W, s.H),
		dirty:   true,
	}
	if source != nil {
		g.source = ebiten.NewImageFromImage(source)
	}
	g.hud = ui.NewHUD(ctx, surface, ctrl, HUDWidth, s.H)
	g.hud.OnSave = g.SaveMask
	surface.OnStamp = func(paint.Stamp) { g.dirty = true }
	ctrl.OnDone = g.onDone
	return g
}

// SaveMask writes the mask layer to the configured output path.
func (g *Game) SaveMask() error {
	format, err := imageio.FormatFromPath(g.cfg.MaskOut)
	if err != nil {
		return err
	}
	f, err := os.Create(g.cfg.MaskOut)
	if err != nil {
		return fmt.Errorf("unable to create mask file: %w", err)
	}
	if err := g.surface.EncodeMask(f, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("mask saved to %s", g.cfg.MaskOut)
	return nil
}

// onDone runs on the request goroutine.
func (g *Game) onDone(o inpaint.Outcome) {
	g.inbox.load(g.ctx, g.hc, o, g.size.X, g.size.Y)
}

// Update handles per-frame input.
func (g *Game) Update() error {
	if !g.hud.Editing() {
		if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyS) {
			if err := g.SaveMask(); err != nil {
				log.Printf("save mask: %v", err)
				g.hud.Notify("save failed: " + err.Error())
			} else {
				g.hud.Notify("mask saved")
			}
		}
		g.overlay.Update()
	}

	g.handlePointer()
	g.hud.Update(2 * g.size.X)

	d := g.inbox.take()
	if d.Image != nil {
		g.result = ebiten.NewImageFromImage(d.Image)
	}
	if d.Notice != "" {
		g.hud.Notify(d.Notice)
	}
	g.loading = d.Loading
	g.hud.SetLoading(d.Loading)
	return nil
}

// handlePointer feeds the left mouse button to the surface.
func (g *Game) handlePointer() {
	mx, my := ebiten.CursorPosition()
	in := canvasPointer(mx, my, g.size, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft))
	g.inside = in.Inside
	g.pointer.apply(g.surface, in)
}

// Draw renders the canvas, the result panel and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 8, B: 10, A: 255})
	if g.source != nil {
		screen.DrawImage(g.source, nil)
	}
	// The painter keeps the last upload, so clean frames skip WritePixels.
	if g.dirty {
		g.painter.Blit(screen, g.surface.VisualImage(), 0, 0)
		g.dirty = false
	} else {
		g.painter.Redraw(screen, 0, 0)
	}
	mx, my := ebiten.CursorPosition()
	g.overlay.Draw(screen, g.surface.MaskImage(), 0, 0, float64(mx), float64(my), g.surface.BrushDiameter(), g.inside)

	g.drawResult(screen, float64(g.size.X))
	g.hud.Draw(screen, 2*g.size.X)
}

func (g *Game) drawResult(screen *ebiten.Image, x float64) {
	if g.result == nil {
		msg := "no result yet"
		switch {
		case g.ctrl.Busy():
			msg = "generating..."
		case g.loading:
			msg = "loading result..."
		}
		text.Draw(screen, msg, basicfont.Face7x13, int(x)+16, g.size.Y/2, color.RGBA{R: 140, G: 140, B: 150, A: 255})
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, 0)
	screen.DrawImage(g.result, op)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 2*g.size.X + HUDWidth, g.size.Y
}
