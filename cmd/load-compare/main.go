package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/herodex/internal/loadtest"
	"github.com/okian/herodex/pkg/logger"
)

const defaultRunTimeout = 10 * time.Minute

func main() {
	var (
		baseURL  = flag.String("url", loadtest.DefaultBaseURL, "Base URL of the service")
		requests = flag.Int("requests", loadtest.DefaultRequests, "Number of hero pairs to compare")
		workers  = flag.Int("workers", loadtest.DefaultWorkers, "Maximum pairs in flight")
		rps      = flag.Float64("rps", 0, "Request rate cap, 0 for unlimited")
		timeout  = flag.Duration("timeout", loadtest.DefaultTimeout, "HTTP request timeout")
		seed     = flag.Uint64("seed", 0, "Pair generator seed, 0 for time based")
		format   = flag.String("format", logger.FormatText, "Log format: text or json")
		verbose  = flag.Bool("verbose", false, "Log every mismatch")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadtest.ShowHelp(os.Stdout)
		return
	}

	if err := logger.Init(logger.WithFormat(*format)); err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &loadtest.Config{
		BaseURL:  *baseURL,
		Requests: *requests,
		Workers:  *workers,
		RPS:      *rps,
		Timeout:  *timeout,
		Seed:     *seed,
		Verbose:  *verbose,
	}

	if _, err := loadtest.Run(ctx, config); err != nil {
		logger.Get().Error(ctx, "load run failed", logger.Error(err))
		cancel()
		os.Exit(1)
	}
}
