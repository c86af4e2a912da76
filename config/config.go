package config

import (
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

type (
	Pool struct {
		// Workers is the number of worker goroutines serving connections. Also the upper bound
		// of connections being processed at the same time, the rest wait in the queue.
		Workers int
	}

	NET struct {
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket
		ReadBufferSize int
		// AcceptLoopInterruptPeriod controls how often will the Accept() call be interrupted
		// in order to check whether it's time to stop. Defaults to 5 seconds.
		AcceptLoopInterruptPeriod time.Duration
	}

	Responses struct {
		// BadRequest is the body sent along with 400 when a request couldn't be parsed.
		BadRequest string
		// NotFound is the body sent along with 404 when no route matches the request.
		NotFound string
	}
)

// Config holds settings used across various parts of workhttp.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	Pool      Pool
	NET       NET
	Responses Responses
}

// Default returns default config.
func Default() *Config {
	return &Config{
		Pool: Pool{
			Workers: 4,
		},
		NET: NET{
			ReadBufferSize:            4096,
			AcceptLoopInterruptPeriod: 5 * time.Second,
		},
		Responses: Responses{
			BadRequest: "Bad Request",
			NotFound:   "Not Found",
		},
	}
}

// WorkersEnv overrides Pool.Workers when set to a positive integer.
const WorkersEnv = "WORKERS"

// FromEnv overlays the environment onto the passed config and returns it. Invalid values
// are reported and ignored, leaving the previous value in place.
func FromEnv(cfg *Config, log logrus.FieldLogger) *Config {
	if log == nil {
		log = logrus.StandardLogger()
	}

	if raw, ok := os.LookupEnv(WorkersEnv); ok {
		workers, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			log.WithError(err).WithField("value", raw).Warn("WORKERS isn't a number, ignoring")
		case workers <= 0:
			log.WithField("value", raw).Warn("WORKERS must be positive, ignoring")
		default:
			cfg.Pool.Workers = workers
		}
	}

	return cfg
}
