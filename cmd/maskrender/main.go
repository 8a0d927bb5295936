// Command maskrender replays a stroke script onto a painting surface and
// writes the resulting mask, optionally sending it to the inpainting service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"maskpaint/internal/app"
	"maskpaint/internal/core"
	"maskpaint/internal/imageio"
	"maskpaint/internal/inpaint"
	"maskpaint/internal/paint"

	"golang.org/x/term"
)

const pipeName = "-"

type options struct {
	*app.Config
	Script   string
	Generate bool
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("maskrender: ")

	opts := options{Config: app.NewConfig()}
	opts.MaskOut = pipeName
	opts.Bind(flag.CommandLine)
	flag.StringVar(&opts.Script, "script", pipeName, "stroke script (json), - reads stdin")
	flag.BoolVar(&opts.Generate, "generate", false, "send the mask to the service and print the result url")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdin, os.Stdout, http.DefaultClient); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, opts options, stdin io.Reader, stdout io.Writer, hc *http.Client) error {
	src, err := openScript(opts.Script, stdin)
	if err != nil {
		return err
	}
	events, err := paint.LoadScript(src)
	src.Close()
	if err != nil {
		return err
	}

	surface := paint.New(opts.PaintConfig())
	if err := paint.Replay(surface, events); err != nil {
		return err
	}
	log.Printf("%d strokes, %d stamps", len(surface.History()), surface.Stamps())

	if err := writeMask(surface, opts.MaskOut, stdout); err != nil {
		return err
	}
	if !opts.Generate {
		return nil
	}

	sourceURL := opts.Source
	if !imageio.IsValidURL(sourceURL) {
		size := surface.Size()
		img, err := app.LoadSource(ctx, hc, opts.Source, size.W, size.H)
		if err != nil {
			return err
		}
		if sourceURL, err = app.SourceURL(opts.Source, img); err != nil {
			return err
		}
	}
	seed := opts.ResolveSeed(core.NewRNG(time.Now().UnixNano()))
	ctrl := inpaint.NewController(inpaint.NewClient(opts.ServiceConfig(), hc), surface, sourceURL, seed)
	ctrl.SetPrompt(opts.Prompt)
	o, err := ctrl.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	if opts.MaskOut == pipeName {
		log.Printf("result: %s", o.URL)
		return nil
	}
	_, err = fmt.Fprintln(stdout, o.URL)
	return err
}

func openScript(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path != pipeName {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("unable to open the stroke script: %w", err)
		}
		return f, nil
	}
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, errors.New("`-` should be used with a pipe for stdin")
	}
	return io.NopCloser(stdin), nil
}

func writeMask(s *paint.Surface, out string, stdout io.Writer) error {
	format, err := imageio.FormatFromPath(out)
	if err != nil {
		return err
	}
	if out == pipeName {
		if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return errors.New("`-` should be used with a pipe for stdout")
		}
		return s.EncodeMask(stdout, format)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	if err := s.EncodeMask(f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
