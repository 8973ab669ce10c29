package curve

import "github.com/forestrie/go-keycurves/keyhandle"

// Options configures a curve. Not every curve reads every field.
type Options struct {
	// Generator mints key handles. nil selects keyhandle.Default() at the
	// time a handle is needed.
	Generator keyhandle.Generator

	defaultValue    float64
	hasDefaultValue bool

	PreInfinityExtrap  Extrapolation
	PostInfinityExtrap Extrapolation
}

type Option func(*Options)

func NewOptions(opts ...Option) Options {
	o := Options{
		PreInfinityExtrap:  ExtrapolationConstant,
		PostInfinityExtrap: ExtrapolationConstant,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithHandleGenerator injects the key handle generator. Tests typically pass
// a keyhandle.Sequential for deterministic handles.
func WithHandleGenerator(g keyhandle.Generator) Option {
	return func(o *Options) {
		o.Generator = g
	}
}

// WithDefaultValue sets the value an empty curve evaluates to. Integral
// curves truncate it toward zero and clamp it to the int32 range.
func WithDefaultValue(v float64) Option {
	return func(o *Options) {
		o.defaultValue = v
		o.hasDefaultValue = true
	}
}

// WithIntegralDefaultValue is WithDefaultValue for integral curves, without
// the truncation.
func WithIntegralDefaultValue(v int32) Option {
	return WithDefaultValue(float64(v))
}

// WithExtrapolation sets how a rich curve is evaluated before its first and
// after its last key.
func WithExtrapolation(pre, post Extrapolation) Option {
	return func(o *Options) {
		o.PreInfinityExtrap = pre
		o.PostInfinityExtrap = post
	}
}
