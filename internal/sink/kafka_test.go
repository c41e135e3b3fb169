package sink

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresBrokersAndTopic(t *testing.T) {
	_, err := New(context.Background(), Config{Topic: "webpulse.hits"})
	assert.Error(t, err)

	_, err = New(context.Background(), Config{Brokers: []string{"broker:9092"}})
	assert.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{Brokers: []string{"broker:9092"}, Topic: "webpulse.hits"}
	cfg.withDefaults()

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 64, cfg.QueueSize)
	assert.Equal(t, 100, cfg.FlushSize)
	assert.NotZero(t, cfg.FlushInterval)
}

func TestConfigDefaultsKeepExplicitValues(t *testing.T) {
	cfg := Config{Workers: 5, QueueSize: 8, FlushSize: 10}
	cfg.withDefaults()

	assert.Equal(t, 5, cfg.Workers)
	assert.Equal(t, 8, cfg.QueueSize)
	assert.Equal(t, 10, cfg.FlushSize)
}

func TestSubnetKeyStripsHostOctet(t *testing.T) {
	assert.Equal(t, "81.44.102", subnetKey("81.44.102.7"))
	assert.Equal(t, "10.0.0", subnetKey("10.0.0.254"))
	assert.Equal(t, "not-an-ip", subnetKey("not-an-ip"))
}

func TestSinkCloseIsIdempotentOnWriter(t *testing.T) {
	s, err := New(context.Background(), Config{
		Brokers:   []string{"broker:9092"},
		Topic:     "webpulse.hits",
		FlushSize: 10,
	})
	require.NoError(t, err)

	// No records were pushed, so Close never touches the network.
	require.NoError(t, s.Close())
}
