// Package sink delivers hit records to a Kafka topic for downstream
// analytics pipelines. Delivery is asynchronous and lossy by design:
// records are batched, queued to a small worker pool, and dropped with a
// log line when the queue is full, so the simulation never waits on the
// broker.
package sink

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"webpulse/internal/hit"
)

type Config struct {
	Brokers       []string
	Topic         string
	Workers       int
	QueueSize     int
	FlushSize     int
	FlushInterval time.Duration
}

func (c *Config) withDefaults() {
	if c.Workers == 0 {
		c.Workers = 2
	}
	if c.QueueSize == 0 {
		c.QueueSize = 64
	}
	if c.FlushSize == 0 {
		c.FlushSize = 100
	}
	if c.FlushInterval == 0 {
		c.FlushInterval = time.Second
	}
}

type Sink struct {
	writer *kafka.Writer
	pub    *publisher
	batch  *batcher
}

func New(ctx context.Context, cfg Config) (*Sink, error) {
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		return nil, fmt.Errorf("sink: brokers and topic are required")
	}
	cfg.withDefaults()

	s := &Sink{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(cfg.Brokers...),
			Topic:    cfg.Topic,
			Balancer: &kafka.Hash{},
		},
	}
	s.pub = newPublisher(ctx, s.writeBatch, cfg.Workers, cfg.QueueSize)
	s.batch = newBatcher(s.enqueue, cfg.FlushSize, cfg.FlushInterval)

	return s, nil
}

// Record accepts one hit record. Matches the engine's listener signature.
func (s *Sink) Record(rec hit.Record) {
	if err := s.batch.push(rec); err != nil {
		zap.L().Error(err.Error())
	}
}

func (s *Sink) enqueue(batch []hit.Record) {
	if err := s.pub.send(batch); err != nil {
		zap.L().Warn("dropping hit batch",
			zap.Int("size", len(batch)),
			zap.Error(err),
		)
	}
}

// writeBatch encodes a batch and writes it in one call, keyed by subnet
// prefix so one visitor's network lands on one partition.
func (s *Sink) writeBatch(ctx context.Context, batch []hit.Record) error {
	messages := make([]kafka.Message, 0, len(batch))
	for i := range batch {
		b, err := batch[i].Bytes()
		if err != nil {
			zap.L().Error(err.Error())
			continue
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(subnetKey(batch[i].IP)),
			Value: b,
		})
	}
	if len(messages) == 0 {
		return nil
	}

	return writeWithBackoff(ctx, func(ctx context.Context) error {
		return s.writer.WriteMessages(ctx, messages...)
	})
}

// Close flushes buffered records, stops the workers, and closes the writer.
func (s *Sink) Close() error {
	s.batch.close()
	if err := s.pub.close(); err != nil && !errors.Is(err, ErrClosed) {
		zap.L().Error(err.Error())
	}
	return s.writer.Close()
}

func subnetKey(ip string) string {
	i := strings.LastIndexByte(ip, '.')
	if i < 0 {
		return ip
	}
	return ip[:i]
}
