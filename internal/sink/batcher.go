package sink

import (
	"sync"
	"sync/atomic"
	"time"

	"webpulse/internal/hit"
)

type flushFn func(batch []hit.Record)

// batcher groups hit records into batches, flushing when the buffer
// reaches flushSize or when flushInterval elapses, whichever comes first.
type batcher struct {
	flush    flushFn
	size     int
	interval time.Duration

	mu  sync.Mutex
	buf []hit.Record

	stopCh  chan struct{}
	wg      sync.WaitGroup
	stopped atomic.Bool
}

func newBatcher(flush flushFn, size int, interval time.Duration) *batcher {
	b := &batcher{
		flush:    flush,
		size:     size,
		interval: interval,
		buf:      make([]hit.Record, 0, size),
		stopCh:   make(chan struct{}),
	}

	b.wg.Add(1)
	go b.loop()

	return b
}

func (b *batcher) push(rec hit.Record) error {
	if b.stopped.Load() {
		return ErrClosed
	}

	b.mu.Lock()
	b.buf = append(b.buf, rec)
	var batch []hit.Record
	if len(b.buf) >= b.size {
		batch = b.take()
	}
	b.mu.Unlock()

	if batch != nil {
		b.flush(batch)
	}

	return nil
}

func (b *batcher) loop() {
	defer b.wg.Done()

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.flushPending()
		case <-b.stopCh:
			b.flushPending()
			return
		}
	}
}

func (b *batcher) flushPending() {
	b.mu.Lock()
	batch := b.take()
	b.mu.Unlock()

	if len(batch) > 0 {
		b.flush(batch)
	}
}

// take copies and resets the buffer. Callers hold b.mu.
func (b *batcher) take() []hit.Record {
	if len(b.buf) == 0 {
		return nil
	}
	batch := make([]hit.Record, len(b.buf))
	copy(batch, b.buf)
	b.buf = b.buf[:0]
	return batch
}

// close flushes the remainder and stops the timer goroutine.
func (b *batcher) close() {
	if b.stopped.Swap(true) {
		return
	}
	close(b.stopCh)
	b.wg.Wait()
}
