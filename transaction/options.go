package transaction

const DefaultMaxDepth = 100

type Options struct {
	// MaxDepth is the number of committed transactions kept for undo. The
	// oldest is dropped when it is exceeded.
	MaxDepth int
}

type Option func(*Options)

func NewOptions(opts ...Option) Options {
	o := Options{MaxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMaxDepth bounds the undo history. Values below one keep a single
// transaction.
func WithMaxDepth(n int) Option {
	return func(o *Options) {
		o.MaxDepth = max(n, 1)
	}
}
