package behavior

import "go.uber.org/zap"

type options struct {
	log        *zap.Logger
	maxDepth   int
	normalizer *Normalizer
}

type Option func(*options)

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMaxDepth sets the deepest recursion level a node may be produced at.
// Negative values are ignored.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxDepth = n
		}
	}
}

func WithNormalizer(n *Normalizer) Option {
	return func(o *options) { o.normalizer = n }
}

func buildOptions(opts []Option) options {
	o := options{log: zap.NewNop(), maxDepth: DefaultMaxDepth}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
