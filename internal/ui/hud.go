//go:build ebiten

package ui

import (
	"context"
	"image"
	"image/color"
	"math"
	"strconv"

	"maskpaint/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the control panel to the right of the result view.
type HUD struct {
	ctx   context.Context
	brush BrushTarget
	gen   Generator

	width  int
	height int
	panel  *ebiten.Image

	controls     []hudControlState
	slider       slider
	prompt       promptField
	generateRect image.Rectangle
	saveRect     image.Rectangle
	panelOffsetX int
	notice       string
	loading      bool
	runes        []rune

	// OnSave is called by the save button. A non-nil error is shown on the panel.
	OnSave func() error
}

// NewHUD constructs a HUD of the given panel size.
func NewHUD(ctx context.Context, brush BrushTarget, gen Generator, width, height int) *HUD {
	h := &HUD{ctx: ctx, brush: brush, gen: gen, width: width, height: height}
	for _, ctrl := range brush.ParameterControls() {
		h.controls = append(h.controls, hudControlState{control: ctrl, value: "--"})
	}
	h.prompt = newPromptField(gen.Prompt())
	h.layout()
	return h
}

// Editing reports whether the prompt field has keyboard focus.
func (h *HUD) Editing() bool { return h != nil && h.prompt.focused }

// Notify replaces the notice line below the status. Like every HUD method it
// must be called from the UI loop.
func (h *HUD) Notify(msg string) {
	if h != nil {
		h.notice = msg
	}
}

// SetLoading marks the result image of a finished request as still downloading.
func (h *HUD) SetLoading(v bool) {
	if h != nil {
		h.loading = v
	}
}

// Update refreshes control values and handles HUD interactions.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.refreshControlValues()
	h.handleMouse()
	h.handleKeys()
}

// Draw paints the HUD panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int) {
	if h == nil || h.width <= 0 || h.height <= 0 {
		return
	}
	if h.panel == nil {
		h.panel = ebiten.NewImage(h.width, h.height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) refreshControlValues() {
	snap := h.brush.Parameters()
	for i := range h.controls {
		state := &h.controls[i]
		state.hasValue = false
		state.value = "--"
		param, ok := snap.Lookup(state.control.Key)
		if !ok || state.control.Type != core.ParamTypeInt {
			continue
		}
		parsed, err := strconv.Atoi(param.Value)
		if err != nil {
			continue
		}
		state.intValue = parsed
		state.value = param.Value
		state.hasValue = true
	}
}

func (h *HUD) handleMouse() {
	mx, my := ebiten.CursorPosition()
	px := mx - h.panelOffsetX

	if h.slider.active {
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			h.setBrush(h.slider.valueAt(float64(px)))
		} else {
			h.slider.active = false
		}
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	if px < 0 {
		h.prompt.focused = false
		return
	}
	h.prompt.focused = pointInRect(px, my, h.prompt.rect)
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(px, my, state.minusRect) {
			h.applyAdjustment(state, -1)
			return
		}
		if pointInRect(px, my, state.plusRect) {
			h.applyAdjustment(state, 1)
			return
		}
	}
	if brush, ok := h.brushState(); ok && h.slider.grab(float64(px), float64(my), brush.intValue) {
		h.slider.active = true
		h.setBrush(h.slider.valueAt(float64(px)))
		return
	}
	if pointInRect(px, my, h.generateRect) {
		h.submit()
		return
	}
	if pointInRect(px, my, h.saveRect) && h.OnSave != nil {
		if err := h.OnSave(); err != nil {
			h.notice = "save failed: " + err.Error()
		} else {
			h.notice = "mask saved"
		}
	}
}

func (h *HUD) handleKeys() {
	if !h.prompt.focused {
		return
	}
	h.runes = ebiten.AppendInputChars(h.runes[:0])
	h.prompt.insert(h.runes)
	if repeatingKeyPressed(ebiten.KeyBackspace) {
		h.prompt.backspace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		h.submit()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		h.prompt.focused = false
	}
}

// submit starts a request with the current prompt unless one is running.
func (h *HUD) submit() {
	if h.gen.Busy() {
		return
	}
	h.gen.SetPrompt(h.prompt.String())
	if h.gen.Start(h.ctx) {
		h.notice = ""
	}
}

func (h *HUD) brushState() (*hudControlState, bool) {
	for i := range h.controls {
		if h.controls[i].control.Type == core.ParamTypeInt && h.controls[i].hasValue {
			return &h.controls[i], true
		}
	}
	return nil, false
}

func (h *HUD) setBrush(v int) {
	state, ok := h.brushState()
	if !ok || v == state.intValue {
		return
	}
	if h.brush.SetIntParameter(state.control.Key, v) {
		h.refreshControlValues()
	}
}

func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	if !h.canAdjust(state, direction) {
		return
	}
	if h.brush.SetIntParameter(state.control.Key, state.intValue+direction*controlStep(state.control)) {
		h.refreshControlValues()
	}
}

func (h *HUD) canAdjust(state *hudControlState, direction int) bool {
	if state == nil || direction == 0 || !state.hasValue {
		return false
	}
	target := state.intValue + direction*controlStep(state.control)
	if state.control.HasMin && target < int(math.Round(state.control.Min)) {
		return false
	}
	if state.control.HasMax && target > int(math.Round(state.control.Max)) {
		return false
	}
	return true
}

func controlStep(ctrl core.ParameterControl) int {
	step := int(math.Round(ctrl.Step))
	if step <= 0 {
		step = 1
	}
	return step
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	text.Draw(h.panel, "Mask", face, panelPadding, panelPadding+headerBaseline, colTitle)

	for i := range h.controls {
		state := &h.controls[i]
		text.Draw(h.panel, state.control.Label, face, panelPadding, state.top+labelBaseline, colLabel)
		valueColor := colLabel
		if !state.hasValue {
			valueColor = colMuted
		}
		bounds := text.BoundString(face, state.value)
		text.Draw(h.panel, state.value, face, state.minusRect.Min.X-buttonGap-bounds.Dx(), state.top+labelBaseline, valueColor)
		h.drawButton(state.minusRect, "-", h.canAdjust(state, -1))
		h.drawButton(state.plusRect, "+", h.canAdjust(state, 1))
	}
	if brush, ok := h.brushState(); ok {
		h.drawSlider(brush.intValue)
	}

	text.Draw(h.panel, "Prompt", face, panelPadding, h.prompt.rect.Min.Y-6, colLabel)
	h.drawPrompt()

	busy := h.gen.Busy()
	h.drawButton(h.generateRect, generateLabel(busy), !busy)
	h.drawButton(h.saveRect, "Save mask", h.OnSave != nil)

	statusY := h.saveRect.Max.Y + 24
	text.Draw(h.panel, visibleTail(statusLine(busy, h.loading, h.gen.Outcome()), h.glyphs()), face, panelPadding, statusY, colLabel)
	if h.notice != "" {
		text.Draw(h.panel, visibleTail(h.notice, h.glyphs()), face, panelPadding, statusY+18, colMuted)
	}
	text.Draw(h.panel, "S save  M mask  Q quit", face, panelPadding, h.height-panelPadding, colMuted)
}

func (h *HUD) drawSlider(value int) {
	s := h.slider
	vector.DrawFilledRect(h.panel, float32(s.x), float32(s.y-trackHeight/2), float32(s.width), trackHeight, colTrack, false)
	vector.DrawFilledCircle(h.panel, float32(s.knobX(value)), float32(s.y), knobRadius, colKnob, true)
}

func (h *HUD) drawPrompt() {
	r := h.prompt.rect
	border := colButton
	if h.prompt.focused {
		border = colFocus
	}
	vector.DrawFilledRect(h.panel, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), border, false)
	vector.DrawFilledRect(h.panel, float32(r.Min.X+1), float32(r.Min.Y+1), float32(r.Dx()-2), float32(r.Dy()-2), colField, false)
	value := visibleTail(h.prompt.String(), h.glyphs()-1)
	if h.prompt.focused {
		value += "_"
	}
	text.Draw(h.panel, value, basicfont.Face7x13, r.Min.X+4, r.Min.Y+17, colLabel)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg, fg := colButton, colLabel
	if !enabled {
		bg, fg = colButtonOff, colMuted
	}
	vector.DrawFilledRect(h.panel, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), bg, false)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

// glyphs is the number of 7px glyphs that fit across the panel.
func (h *HUD) glyphs() int {
	return (h.width - 2*panelPadding) / 7
}

func (h *HUD) layout() {
	top := controlsTop
	for i := range h.controls {
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
		top += lineHeight
	}
	inner := h.width - 2*panelPadding
	h.slider = slider{
		x:     panelPadding + knobRadius,
		y:     float64(top + 12),
		width: float64(inner) - 2*knobRadius,
		min:   1,
		max:   100,
	}
	if len(h.controls) > 0 {
		h.slider.min = int(math.Round(h.controls[0].control.Min))
		h.slider.max = int(math.Round(h.controls[0].control.Max))
	}
	top += 48
	h.prompt.rect = image.Rect(panelPadding, top, panelPadding+inner, top+fieldHeight)
	top += fieldHeight + 14
	h.generateRect = image.Rect(panelPadding, top, panelPadding+inner, top+fieldHeight)
	top += fieldHeight + 10
	h.saveRect = image.Rect(panelPadding, top, panelPadding+inner, top+fieldHeight)
}

// repeatingKeyPressed reports a key press once, then repeatedly while held.
func repeatingKeyPressed(key ebiten.Key) bool {
	const (
		delay    = 30
		interval = 3
	)
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= delay && (d-delay)%interval == 0
}

type hudControlState struct {
	control core.ParameterControl
	value   string

	intValue int
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	fieldHeight    = 26
	trackHeight    = 6
	headerBaseline = 18
	labelBaseline  = 24
	controlsTop    = panelPadding + headerBaseline + 14
)

var (
	colTitle     = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	colLabel     = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	colMuted     = color.RGBA{R: 140, G: 140, B: 150, A: 255}
	colButton    = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	colButtonOff = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	colField     = color.RGBA{R: 24, G: 24, B: 30, A: 255}
	colFocus     = color.RGBA{R: 255, G: 64, B: 160, A: 255}
	colTrack     = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	colKnob      = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)
