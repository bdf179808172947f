package segtree

import "github.com/datatrails/go-datatrails-common/logger"

// Options configures a Tree. The values are private, use the With* options.
type Options struct {
	rangeUpdates bool
	persistent   bool
	reserve      int
	log          logger.Logger
}

type Option func(*Options)

// NewOptions creates an Options record from the provided options. Typically
// only useful for tests, as the values are private.
func NewOptions(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithRangeUpdates enables lazy propagation, and so range updates. The policy
// must implement LazyPolicy.
func WithRangeUpdates() Option {
	return func(o *Options) {
		o.rangeUpdates = true
	}
}

// WithPersistence makes every version immutable once recorded. Updates clone
// published nodes instead of writing them.
func WithPersistence() Option {
	return func(o *Options) {
		o.persistent = true
	}
}

// WithReserve pre-sizes the arena for nodes records. It has no behavioral
// effect.
func WithReserve(nodes int) Option {
	return func(o *Options) {
		o.reserve = nodes
	}
}

func WithLogger(log logger.Logger) Option {
	return func(o *Options) {
		o.log = log
	}
}

func (o Options) RangeUpdates() bool { return o.rangeUpdates }
func (o Options) Persistent() bool   { return o.persistent }
