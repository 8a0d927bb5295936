package app

import (
	"flag"
	"os"
	"time"

	"maskpaint/internal/core"
	"maskpaint/internal/inpaint"
	"maskpaint/internal/paint"
)

// KeyEnv names the environment variable holding the service key for direct calls.
const KeyEnv = "FAL_KEY"

// RandomSeed asks for a fresh generation seed on every start.
const RandomSeed = -1

// Config represents the command-line parameters for the application.
type Config struct {
	Diameter int
	Scale    int
	TPS      int

	Source  string
	MaskOut string

	Proxy    string
	Endpoint string
	Prompt   string
	Seed     int
	Poll     time.Duration
	Timeout  time.Duration
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	svc := inpaint.DefaultConfig()
	return &Config{
		Diameter: paint.DefaultConfig().Diameter,
		Scale:    1,
		TPS:      60,
		Source:   inpaint.DefaultSourceImage,
		MaskOut:  "mask.png",
		Endpoint: svc.Endpoint,
		Prompt:   inpaint.DefaultPrompt,
		Seed:     inpaint.DefaultSeed,
		Poll:     svc.PollInterval,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Diameter, "diameter", c.Diameter, "initial brush diameter in pixels (1-100)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "window scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.StringVar(&c.Source, "source", c.Source, "source image url or file path")
	fs.StringVar(&c.MaskOut, "mask-out", c.MaskOut, "file the mask is saved to (png, jpg or bmp)")
	fs.StringVar(&c.Proxy, "proxy", c.Proxy, "proxy url forwarding requests to the service")
	fs.StringVar(&c.Endpoint, "endpoint", c.Endpoint, "queue endpoint of the service")
	fs.StringVar(&c.Prompt, "prompt", c.Prompt, "initial prompt")
	fs.IntVar(&c.Seed, "seed", c.Seed, "generation seed (-1 picks a random one)")
	fs.DurationVar(&c.Poll, "poll", c.Poll, "status polling interval")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "give up on a request after this long (0 waits forever)")
}

// PaintConfig derives the painting surface configuration.
func (c *Config) PaintConfig() paint.Config {
	cfg := paint.DefaultConfig()
	cfg.Diameter = c.Diameter
	return cfg
}

// ServiceConfig derives the client configuration. The key is read from the
// environment and only used when no proxy is configured.
func (c *Config) ServiceConfig() inpaint.Config {
	cfg := inpaint.DefaultConfig()
	if c.Endpoint != "" {
		cfg.Endpoint = c.Endpoint
	}
	cfg.ProxyURL = c.Proxy
	cfg.Key = os.Getenv(KeyEnv)
	if c.Poll > 0 {
		cfg.PollInterval = c.Poll
	}
	cfg.Timeout = c.Timeout
	return cfg
}

// ResolveSeed returns the configured seed, drawing one from rng for RandomSeed.
func (c *Config) ResolveSeed(rng *core.RNG) int {
	if c.Seed >= 0 {
		return c.Seed
	}
	if rng == nil {
		return inpaint.DefaultSeed
	}
	return rng.Seed(maxSeed)
}

const maxSeed = 1 << 31
