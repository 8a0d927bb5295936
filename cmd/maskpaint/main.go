//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"image"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"maskpaint/internal/app"
	"maskpaint/internal/core"
	"maskpaint/internal/inpaint"
	"maskpaint/internal/paint"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	hc := &http.Client{Timeout: 60 * time.Second}
	surface := paint.New(cfg.PaintConfig())
	size := surface.Size()

	var source image.Image
	if img, err := app.LoadSource(ctx, hc, cfg.Source, size.W, size.H); err != nil {
		log.Printf("painting without a source image: %v", err)
	} else {
		source = img
	}

	svc := cfg.ServiceConfig()
	if svc.ProxyURL == "" && svc.Key == "" {
		log.Printf("neither -proxy nor %s is set; requests will be rejected", app.KeyEnv)
	}
	seed := cfg.ResolveSeed(core.NewRNG(time.Now().UnixNano()))
	sourceURL, err := app.SourceURL(cfg.Source, source)
	if err != nil {
		log.Printf("requests will fail: %v", err)
	}
	ctrl := inpaint.NewController(inpaint.NewClient(svc, hc), surface, sourceURL, seed)
	ctrl.SetPrompt(cfg.Prompt)

	game := app.New(ctx, cfg, surface, ctrl, source, hc)

	w, h := game.Layout(0, 0)
	ebiten.SetWindowTitle("maskpaint")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w*cfg.Scale, h*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
