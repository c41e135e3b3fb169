package sink

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webpulse/internal/hit"
)

func TestPublisherDeliversBatches(t *testing.T) {
	var mu sync.Mutex
	var got [][]hit.Record
	delivered := make(chan struct{}, 8)

	write := func(ctx context.Context, batch []hit.Record) error {
		mu.Lock()
		got = append(got, batch)
		mu.Unlock()
		delivered <- struct{}{}
		return nil
	}

	p := newPublisher(context.Background(), write, 2, 8)
	defer p.close()

	require.NoError(t, p.send([]hit.Record{{Seq: 1}}))
	require.NoError(t, p.send([]hit.Record{{Seq: 2}}))

	for i := 0; i < 2; i++ {
		select {
		case <-delivered:
		case <-time.After(2 * time.Second):
			t.Fatal("batch not delivered")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, got, 2)
}

func TestPublisherRejectsWhenQueueFull(t *testing.T) {
	block := make(chan struct{})
	write := func(ctx context.Context, batch []hit.Record) error {
		<-block
		return nil
	}

	p := newPublisher(context.Background(), write, 1, 1)
	defer func() {
		close(block)
		p.close()
	}()

	// First batch occupies the worker, second fills the queue. Further
	// sends must be rejected rather than block.
	require.NoError(t, p.send([]hit.Record{{Seq: 1}}))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, p.send([]hit.Record{{Seq: 2}}))

	assert.ErrorIs(t, p.send([]hit.Record{{Seq: 3}}), ErrQueueFull)
}

func TestPublisherCloseDeliversQueuedBatches(t *testing.T) {
	block := make(chan struct{})
	var delivered atomic.Int64
	write := func(ctx context.Context, batch []hit.Record) error {
		<-block
		delivered.Add(1)
		return nil
	}

	p := newPublisher(context.Background(), write, 1, 4)

	// The worker holds the first batch; the next two sit in the queue
	// when close begins. All three must still be written.
	require.NoError(t, p.send([]hit.Record{{Seq: 1}}))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, p.send([]hit.Record{{Seq: 2}}))
	require.NoError(t, p.send([]hit.Record{{Seq: 3}}))

	closed := make(chan error, 1)
	go func() { closed <- p.close() }()
	time.Sleep(50 * time.Millisecond)
	close(block)

	select {
	case err := <-closed:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("close did not return")
	}

	assert.Equal(t, int64(3), delivered.Load())
}

func TestPublisherSendAfterClose(t *testing.T) {
	p := newPublisher(context.Background(), func(context.Context, []hit.Record) error { return nil }, 1, 1)

	require.NoError(t, p.close())
	assert.ErrorIs(t, p.send(nil), ErrClosed)
	assert.ErrorIs(t, p.close(), ErrClosed)
}

func TestPublisherStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := newPublisher(ctx, func(context.Context, []hit.Record) error { return nil }, 2, 1)

	cancel()

	select {
	case <-p.workersFinished:
	case <-time.After(2 * time.Second):
		t.Fatal("workers did not exit on context cancel")
	}
}
