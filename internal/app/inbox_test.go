package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"runtime"
	"sync"
	"time"
	"testing"

	"maskpaint/internal/inpaint"
)

func TestInboxHandsResultToUILoop(t *testing.T) {
	data := testPNG(t, 32, 32)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	var inbox resultInbox
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		inbox.load(context.Background(), srv.Client(), inpaint.Outcome{State: inpaint.OutcomeDone, URL: srv.URL + "/r.png"}, 64, 64)
	}()

	// Poll from this goroutine the way Update does every frame.
	sawLoading := false
	deadline := time.Now().Add(2 * time.Second)
	for !sawLoading && time.Now().Before(deadline) {
		sawLoading = inbox.take().Loading
		runtime.Gosched()
	}
	close(release)
	wg.Wait()
	if !sawLoading {
		t.Fatal("expected the inbox to report a download in progress")
	}

	d := inbox.take()
	if d.Loading || d.Notice != "" {
		t.Fatalf("unexpected delivery %+v", d)
	}
	if d.Image == nil || d.Image.Bounds().Dx() != 64 || d.Image.Bounds().Dy() != 64 {
		t.Fatalf("expected a fitted 64x64 image, got %v", d.Image)
	}
	if again := inbox.take(); again.Image != nil {
		t.Fatal("take must clear the pending image")
	}
}

func TestInboxReportsFailedDownloadAsNotice(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	var inbox resultInbox
	done := make(chan struct{})
	go func() {
		defer close(done)
		inbox.load(context.Background(), srv.Client(), inpaint.Outcome{State: inpaint.OutcomeDone, URL: srv.URL + "/gone.png"}, 64, 64)
	}()

	notice := ""
	for finished := false; !finished; {
		select {
		case <-done:
			finished = true
		default:
			runtime.Gosched()
		}
		if d := inbox.take(); d.Notice != "" {
			notice = d.Notice
		}
	}
	if notice != "result could not be loaded" {
		t.Fatalf("unexpected notice %q", notice)
	}
	if d := inbox.take(); d.Image != nil || d.Loading {
		t.Fatalf("failed download must not leave an image or a loading flag: %+v", d)
	}
}

func TestInboxIgnoresFailedOutcome(t *testing.T) {
	var inbox resultInbox
	inbox.load(context.Background(), nil, inpaint.Outcome{State: inpaint.OutcomeFailed}, 64, 64)
	if d := inbox.take(); d != (delivery{}) {
		t.Fatalf("expected an empty delivery, got %+v", d)
	}
}
