package provider

import (
	"github.com/pkg/errors"

	"github.com/go-nearby/nearby"
)

// An Option configures a provider at construction time.
type Option func(p *BleProvider, queueDepth *int) error

// WithCodec overrides the decode primitive used for trial decryption.
func WithCodec(c Codec) Option {
	return func(p *BleProvider, _ *int) error {
		if c == nil {
			return errors.New("nil codec")
		}
		p.resolver = NewResolver(c)
		return nil
	}
}

// WithLogger overrides the provider logger.
func WithLogger(l nearby.Logger) Option {
	return func(p *BleProvider, _ *int) error {
		if l == nil {
			return errors.New("nil logger")
		}
		p.log = l
		return nil
	}
}

// WithMetrics attaches provider counters.
func WithMetrics(m *Metrics) Option {
	return func(p *BleProvider, _ *int) error {
		p.metrics = m
		return nil
	}
}

// WithQueueDepth sets the worker queue depth.
func WithQueueDepth(n int) Option {
	return func(_ *BleProvider, queueDepth *int) error {
		if n <= 0 {
			return errors.Errorf("invalid queue depth %d", n)
		}
		*queueDepth = n
		return nil
	}
}
