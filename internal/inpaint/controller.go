package inpaint

import (
	"context"
	"errors"
	"log"
	"sync"
)

var (
	// ErrBusy is returned when a generation is already in flight.
	ErrBusy = errors.New("inpaint: a generation is already running")
	// ErrNoMask is returned when the mask exporter has nothing to export.
	ErrNoMask = errors.New("inpaint: mask is not available")
	// ErrNoImages is returned when a completed request carried no image.
	ErrNoImages = errors.New("inpaint: service returned no images")
)

// DefaultPrompt is the prompt the page starts with.
const DefaultPrompt = "a cat"

// MaskExporter is the capability the painting surface hands to the
// controller.
type MaskExporter interface {
	MaskDataURL() string
}

// Generator runs one generation request to completion.
type Generator interface {
	Subscribe(ctx context.Context, input Input) (Output, error)
}

// OutcomeState distinguishes "nothing yet" from a result or a failure.
type OutcomeState int

const (
	OutcomeNone OutcomeState = iota
	OutcomeDone
	OutcomeFailed
)

// Outcome is the result of the last finished generation.
type Outcome struct {
	State OutcomeState
	URL   string
	Err   error
}

// Controller owns the prompt and allows one request at a time.
type Controller struct {
	gen    Generator
	mask   MaskExporter
	source string
	seed   int

	mu      sync.Mutex
	prompt  string
	busy    bool
	outcome Outcome

	// OnDone, when set, is called with every finished outcome. Calls from
	// Start happen on the request goroutine.
	OnDone func(Outcome)
}

// NewController wires a generator to a mask exporter.
func NewController(gen Generator, mask MaskExporter, source string, seed int) *Controller {
	if source == "" {
		source = DefaultSourceImage
	}
	return &Controller{gen: gen, mask: mask, source: source, seed: seed, prompt: DefaultPrompt}
}

// Prompt returns the current prompt text.
func (c *Controller) Prompt() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prompt
}

// SetPrompt replaces the prompt text.
func (c *Controller) SetPrompt(p string) {
	c.mu.Lock()
	c.prompt = p
	c.mu.Unlock()
}

// Busy reports whether a request is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Outcome returns the last finished outcome.
func (c *Controller) Outcome() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

// Generate exports the mask and runs one request on the calling goroutine.
func (c *Controller) Generate(ctx context.Context) (Outcome, error) {
	input, ok := c.begin()
	if !ok {
		return Outcome{}, ErrBusy
	}
	o := c.run(ctx, input)
	return o, o.Err
}

// Start exports the mask on the calling goroutine and runs the request in the
// background. It returns false, doing nothing, while a request is in flight.
func (c *Controller) Start(ctx context.Context) bool {
	input, ok := c.begin()
	if !ok {
		return false
	}
	go c.run(ctx, input)
	return true
}

func (c *Controller) begin() (Input, bool) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return Input{}, false
	}
	c.busy = true
	prompt := c.prompt
	c.mu.Unlock()

	var mask string
	if c.mask != nil {
		mask = c.mask.MaskDataURL()
	}
	return NewInput(prompt, c.source, mask, c.seed), true
}

func (c *Controller) run(ctx context.Context, input Input) Outcome {
	var o Outcome
	switch {
	case input.MaskImageURL == "":
		o = Outcome{State: OutcomeFailed, Err: ErrNoMask}
	default:
		out, err := c.gen.Subscribe(ctx, input)
		switch {
		case err != nil:
			o = Outcome{State: OutcomeFailed, Err: err}
		case len(out.Images) == 0 || out.Images[0].URL == "":
			o = Outcome{State: OutcomeFailed, Err: ErrNoImages}
		default:
			o = Outcome{State: OutcomeDone, URL: out.Images[0].URL}
		}
	}
	if o.Err != nil {
		log.Printf("inpaint: generation failed: %v", o.Err)
	}

	c.mu.Lock()
	c.busy = false
	c.outcome = o
	onDone := c.OnDone
	c.mu.Unlock()
	if onDone != nil {
		onDone(o)
	}
	return o
}
