package options

import (
	"fmt"
	"runtime"
)

const (
	// DefaultMaxPixels bounds a single decoded buffer to 64MP (256MB of RGBA).
	DefaultMaxPixels int64 = 64 * 1024 * 1024

	InterpolatorNearest        = "nearest"
	InterpolatorApproxBiLinear = "approxbilinear"
	InterpolatorBiLinear       = "bilinear"
	InterpolatorCatmullRom     = "catmullrom"

	DefaultInterpolator = InterpolatorApproxBiLinear
)

// DecoderOptions controls how images are decoded and reduced.
type DecoderOptions struct {
	debug bool

	// MaxPixels is the largest width*height the decoder will allocate for,
	// checked against both the native and the reduced size.
	MaxPixels int64

	// Interpolator names the resampler used when factor > 1.
	Interpolator string

	// Concurrency caps how many sources a batch load decodes at once.
	Concurrency int
}

// NewDecoderOptions copies options, filling in defaults for anything unset.
func NewDecoderOptions(options *DecoderOptions) *DecoderOptions {

	opt := &DecoderOptions{
		MaxPixels:    DefaultMaxPixels,
		Interpolator: DefaultInterpolator,
		Concurrency:  runtime.GOMAXPROCS(0),
	}
	if options != nil {
		opt.debug = options.debug
		if options.MaxPixels > 0 {
			opt.MaxPixels = options.MaxPixels
		}
		if options.Interpolator != "" {
			opt.Interpolator = options.Interpolator
		}
		if options.Concurrency > 0 {
			opt.Concurrency = options.Concurrency
		}
	}
	return opt
}

// WithDebug returns a copy with debug logging of factor decisions switched on.
func (o DecoderOptions) WithDebug(debug bool) *DecoderOptions {
	o.debug = debug
	return &o
}

func (o *DecoderOptions) Debug() bool {
	return o.debug
}

func (o *DecoderOptions) Validate() error {
	if o.MaxPixels <= 0 {
		return fmt.Errorf("max pixels must be positive, got %d", o.MaxPixels)
	}
	if !IsKnownInterpolator(o.Interpolator) {
		return fmt.Errorf("unknown interpolator %q", o.Interpolator)
	}
	return nil
}

func IsKnownInterpolator(name string) bool {
	switch name {
	case InterpolatorNearest, InterpolatorApproxBiLinear, InterpolatorBiLinear, InterpolatorCatmullRom:
		return true
	}
	return false
}
