package sink

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"webpulse/internal/hit"
)

var (
	ErrClosed    = errors.New("sink: closed")
	ErrQueueFull = errors.New("sink: queue full")
)

type writeFn func(ctx context.Context, batch []hit.Record) error

// publisher fans batches out to a fixed pool of delivery workers over a
// bounded queue. Enqueueing never blocks: when the queue is full the batch
// is rejected, so a slow broker cannot stall the engine's workers.
type publisher struct {
	write           writeFn
	batches         chan []hit.Record
	closeCh         chan struct{}
	workersFinished chan struct{}
	closed          atomic.Bool
}

func newPublisher(ctx context.Context, write writeFn, workerCount, queueSize int) *publisher {
	p := &publisher{
		write:           write,
		batches:         make(chan []hit.Record, queueSize),
		closeCh:         make(chan struct{}),
		workersFinished: make(chan struct{}),
	}

	wg := &sync.WaitGroup{}
	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go p.worker(ctx, wg)
	}

	go func() {
		wg.Wait()
		close(p.workersFinished)
	}()

	return p
}

func (p *publisher) send(batch []hit.Record) error {
	if p.closed.Load() {
		return ErrClosed
	}

	select {
	case p.batches <- batch:
		return nil
	default:
		return ErrQueueFull
	}
}

// close stops the workers and waits for them to finish. Batches already
// queued at close time are still delivered; a repeated close returns
// ErrClosed.
func (p *publisher) close() error {
	if p.closed.Swap(true) {
		return ErrClosed
	}

	close(p.closeCh)
	<-p.workersFinished

	return nil
}

func (p *publisher) worker(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.closeCh:
			p.drain(ctx)
			return
		case batch := <-p.batches:
			if err := p.write(ctx, batch); err != nil {
				zap.L().Error(err.Error())
			}
		}
	}
}

// drain delivers what is still queued when the publisher closes, so the
// batcher's final flush is not lost to the select race between closeCh
// and batches.
func (p *publisher) drain(ctx context.Context) {
	for {
		select {
		case batch := <-p.batches:
			if err := p.write(ctx, batch); err != nil {
				zap.L().Error(err.Error())
			}
		default:
			return
		}
	}
}
