package config

import (
	"flag"
	"io"
	"time"

	"github.com/momverse/momverse/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Only the flags listed in doc.go are considered; everything else in args
// is left for other loaders. Parse errors panic.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-d", "-m", "-t", "-v", "-l"})

	fs := flag.NewFlagSet("momverse", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.StoreDSN, "d", cfg.StoreDSN, "store DSN")
	fs.StringVar(&cfg.AIModel, "m", cfg.AIModel, "generative model name")
	timeout := fs.Int("t", int(cfg.AITimeout.Seconds()), "AI request timeout (in seconds)")
	fs.BoolVar(&cfg.VerifyCredentials, "v", cfg.VerifyCredentials, "verify passwords on login")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AITimeout = time.Duration(*timeout) * time.Second
}
