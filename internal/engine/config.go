package engine

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"webpulse/internal/urlparams"
)

var (
	ErrInvalidTarget = errors.New("engine: invalid target URL")
	ErrInvalidConfig = errors.New("engine: invalid configuration")
)

var validMethods = map[string]struct{}{
	"GET":     {},
	"HEAD":    {},
	"POST":    {},
	"PUT":     {},
	"DELETE":  {},
	"OPTIONS": {},
}

// Config is the immutable per-instance configuration, already resolved by
// the outer configuration layer.
type Config struct {
	// TargetURL is the URL every hit is issued against.
	TargetURL string

	// Method is the HTTP method, GET when empty.
	Method string

	// MinRate and MaxRate bound the per-phase target rate in hits per minute.
	MinRate int
	MaxRate int

	// Concurrency is the number of scheduler workers.
	Concurrency int

	// Timeout bounds each request; on expiry the request is canceled and
	// recorded as a failure.
	Timeout time.Duration

	// DesktopShare is the desktop portion of the device mix, in percent.
	DesktopShare float64

	// ActiveMin and ActiveMax bound the duration of one active phase.
	ActiveMin time.Duration
	ActiveMax time.Duration

	// IdleChance is the probability in [0,1] of entering an idle phase
	// after an active phase expires.
	IdleChance float64

	// IdleMin and IdleMax bound the duration of one idle phase.
	IdleMin time.Duration
	IdleMax time.Duration

	// UniqueChance is the probability in [0,1] that a hit originates a new
	// subnet instead of reusing an issued one.
	UniqueChance float64

	// Params are the URL-parameter injection rules, applied in order.
	Params []urlparams.Rule

	// Seed makes the engine's randomness reproducible when non-zero.
	Seed int64
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.TargetURL)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidTarget, c.TargetURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q: scheme must be http or https", ErrInvalidTarget, c.TargetURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %q: missing host", ErrInvalidTarget, c.TargetURL)
	}

	if c.Method == "" {
		c.Method = "GET"
	}
	if _, ok := validMethods[c.Method]; !ok {
		return fmt.Errorf("%w: unsupported method %q", ErrInvalidConfig, c.Method)
	}

	if c.MinRate <= 0 || c.MaxRate < c.MinRate {
		return fmt.Errorf("%w: rate bounds %d..%d", ErrInvalidConfig, c.MinRate, c.MaxRate)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("%w: concurrency %d", ErrInvalidConfig, c.Concurrency)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout %s", ErrInvalidConfig, c.Timeout)
	}
	if c.ActiveMin <= 0 || c.ActiveMax < c.ActiveMin {
		return fmt.Errorf("%w: active bounds %s..%s", ErrInvalidConfig, c.ActiveMin, c.ActiveMax)
	}
	if c.IdleMin < 0 || c.IdleMax < c.IdleMin {
		return fmt.Errorf("%w: idle bounds %s..%s", ErrInvalidConfig, c.IdleMin, c.IdleMax)
	}
	if c.DesktopShare < 0 || c.DesktopShare > 100 {
		return fmt.Errorf("%w: desktop share %v", ErrInvalidConfig, c.DesktopShare)
	}
	if c.IdleChance < 0 || c.IdleChance > 1 {
		return fmt.Errorf("%w: idle chance %v", ErrInvalidConfig, c.IdleChance)
	}
	if c.UniqueChance < 0 || c.UniqueChance > 1 {
		return fmt.Errorf("%w: unique chance %v", ErrInvalidConfig, c.UniqueChance)
	}

	return urlparams.Validate(c.Params)
}
