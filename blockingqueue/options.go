package blockingqueue

import (
	"io"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

type config struct {
	capacity   int
	logger     logrus.FieldLogger
	clock      clock.Clock
	registerer prometheus.Registerer
	name       string
}

// Option configures a Queue created by New.
type Option func(*config)

// WithCapacity preallocates room for n values.
func WithCapacity(n int) Option {
	return func(c *config) { c.capacity = n }
}

// WithLogger sets the logger used for lifecycle events (close, abandoned
// takes, metric registration failures). By default nothing is logged.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock sets the clock TakeTimeout measures deadlines against.
func WithClock(cl clock.Clock) Option {
	return func(c *config) {
		if cl != nil {
			c.clock = cl
		}
	}
}

// WithMetrics registers the queue's collectors with reg, labelled queue=name.
func WithMetrics(reg prometheus.Registerer, name string) Option {
	return func(c *config) {
		c.registerer = reg
		c.name = name
	}
}

func newConfig(opts []Option) config {
	c := config{
		logger: discardLogger(),
		clock:  clock.New(),
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
