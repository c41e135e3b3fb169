// Package engine drives the traffic simulation for a single target URL:
// a pool of scheduler workers alternating between active and idle phases,
// each active tick issuing one synthetic request. Distinct engine
// instances share no state.
package engine

import (
	"io"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"webpulse/internal/hit"
	"webpulse/internal/identity"
	"webpulse/internal/subnet"
)

const (
	// workerStagger offsets each worker's launch so the simulation does
	// not open with a synchronized burst.
	workerStagger = 200 * time.Millisecond

	// minHitDelay floors the jittered inter-hit delay.
	minHitDelay = 100 * time.Millisecond
)

// Listener receives every hit record as it is produced. Records are not
// retained by the engine.
type Listener func(rec hit.Record)

type Engine struct {
	cfg    Config
	target *url.URL
	seed   int64

	client   *http.Client
	identity *identity.Generator
	subnets  *subnet.Tracker
	report   *reporter

	hits     atomic.Int64
	failures atomic.Int64

	mu        sync.Mutex
	running   atomic.Bool
	stopCh    chan struct{}
	wg        sync.WaitGroup
	listeners []Listener
}

// Stats is a point-in-time snapshot of the aggregate counters.
type Stats struct {
	Hits     int64
	Failures int64
	Subnets  int
}

// New validates cfg and builds an engine. Status lines for the external
// supervision layer are written to statusOut; pass nil to discard them.
func New(cfg Config, statusOut io.Writer) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	target, err := url.Parse(cfg.TargetURL)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if statusOut == nil {
		statusOut = io.Discard
	}

	return &Engine{
		cfg:    cfg,
		target: target,
		seed:   seed,
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        2 * cfg.Concurrency,
				MaxIdleConnsPerHost: 2 * cfg.Concurrency,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		identity: identity.NewGenerator(seed + 1),
		subnets:  subnet.NewTracker(seed + 2),
		report:   newReporter(statusOut),
	}, nil
}

// OnHit registers a listener. Must be called before Start.
func (e *Engine) OnHit(fn Listener) {
	if e.running.Load() {
		zap.L().Warn("listener registered on a running engine, ignored")
		return
	}
	e.listeners = append(e.listeners, fn)
}

// Start launches the configured number of workers. A second Start on a
// running engine is a no-op. A stopped engine may be started again; workers
// of the earlier run are waited out first so the pool never doubles.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running.Load() {
		zap.L().Warn("engine already running", zap.String("target", e.cfg.TargetURL))
		return
	}

	// Workers of a previous run exit on the cleared flag; they must be
	// gone before the flag flips back to true.
	e.wg.Wait()

	e.stopCh = make(chan struct{})
	e.running.Store(true)

	zap.L().Info("engine starting",
		zap.String("target", e.cfg.TargetURL),
		zap.Int("workers", e.cfg.Concurrency),
	)

	for id := 1; id <= e.cfg.Concurrency; id++ {
		e.wg.Add(1)
		go e.worker(id)
	}
}

// Stop clears the running flag. Workers observe it at their next
// checkpoint; an in-flight request still runs to completion or timeout.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running.Swap(false) {
		return
	}
	close(e.stopCh)
	zap.L().Info("engine stopping", zap.String("target", e.cfg.TargetURL))
}

// Wait blocks until every worker has exited.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// Stats is safe to call regardless of running state.
func (e *Engine) Stats() Stats {
	return Stats{
		Hits:     e.hits.Load(),
		Failures: e.failures.Load(),
		Subnets:  e.subnets.Count(),
	}
}

func (e *Engine) notify(rec hit.Record) {
	for _, fn := range e.listeners {
		fn(rec)
	}
}

// sleep suspends for d and reports whether the engine is still running.
// A Stop during the sleep wakes it immediately.
func (e *Engine) sleep(d time.Duration) bool {
	if d <= 0 {
		return e.running.Load()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return e.running.Load()
	case <-e.stopCh:
		return false
	}
}
