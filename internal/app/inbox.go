package app

import (
	"context"
	"image"
	"log"
	"net/http"
	"sync"

	"maskpaint/internal/imageio"
	"maskpaint/internal/inpaint"
)

// delivery is what the UI loop picks up from a finished request.
type delivery struct {
	Image   image.Image
	Notice  string
	Loading bool
}

// resultInbox hands results from request goroutines to the UI loop. Only
// the UI loop touches the HUD; everything crossing goroutines goes through here.
type resultInbox struct {
	mu      sync.Mutex
	img     image.Image
	notice  string
	loading bool
}

// load downloads the first result image for o and fits it to w*h. It runs on
// the request goroutine.
func (b *resultInbox) load(ctx context.Context, hc *http.Client, o inpaint.Outcome, w, h int) {
	if o.State != inpaint.OutcomeDone {
		return
	}
	b.mu.Lock()
	b.loading = true
	b.mu.Unlock()

	img, err := imageio.Fetch(ctx, hc, o.URL)
	var fitted image.Image
	if err == nil {
		fitted = imageio.Fit(img, w, h)
	} else {
		log.Printf("unable to load result: %v", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.loading = false
	if err != nil {
		b.notice = "result could not be loaded"
		return
	}
	b.img = fitted
}

// take returns the pending image and notice, clearing both.
func (b *resultInbox) take() delivery {
	b.mu.Lock()
	defer b.mu.Unlock()
	d := delivery{Image: b.img, Notice: b.notice, Loading: b.loading}
	b.img = nil
	b.notice = ""
	return d
}
