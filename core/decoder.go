package core

import (
	"fmt"
	"image"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/kpfaulkner/imgsample/options"
)

// SourceFunc opens a fresh reader over the same encoded image each time it
// is called. Used when the source can't seek back after the bounds probe.
type SourceFunc func() (io.ReadCloser, error)

// Decoder loads encoded images into caller-owned RGBA buffers, optionally
// downsampled by a power of two to cover a requested size. It holds no
// per-call state and is safe for concurrent use.
type Decoder struct {
	codec       ImageCodec
	debug       bool
	concurrency int
}

// NewDecoder creates a Decoder backed by StdCodec.
func NewDecoder(opts *options.DecoderOptions) (*Decoder, error) {
	opt := options.NewDecoderOptions(opts)
	codec, err := NewStdCodec(opt)
	if err != nil {
		return nil, err
	}
	return NewDecoderWithCodec(codec, opt), nil
}

// NewDecoderWithCodec creates a Decoder driving the supplied codec.
func NewDecoderWithCodec(codec ImageCodec, opts *options.DecoderOptions) *Decoder {
	opt := options.NewDecoderOptions(opts)
	return &Decoder{
		codec:       codec,
		debug:       opt.Debug(),
		concurrency: opt.Concurrency,
	}
}

// ProbeDimensions reads just enough of r to report its native size.
func (d *Decoder) ProbeDimensions(r io.Reader) (Dimensions, error) {
	return d.codec.ProbeDimensions(r)
}

// DecodeAt fully decodes r at 1/factor resolution.
func (d *Decoder) DecodeAt(r io.Reader, factor SampleFactor) (*image.RGBA, error) {
	return d.codec.DecodeAt(r, factor)
}

// LoadFull decodes r at native resolution.
func (d *Decoder) LoadFull(r io.Reader) (*image.RGBA, error) {
	return d.codec.DecodeAt(r, 1)
}

// LoadBounded probes rs, picks the sample factor for reqWidth x reqHeight,
// seeks rs back to where it started and decodes at that factor.
func (d *Decoder) LoadBounded(rs io.ReadSeeker, reqWidth int, reqHeight int) (*image.RGBA, error) {
	if err := validateRequested(reqWidth, reqHeight); err != nil {
		return nil, err
	}

	start, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, newError(IOError, "load bounded", err)
	}

	native, err := d.codec.ProbeDimensions(rs)
	if err != nil {
		return nil, err
	}

	factor, err := d.factorFor(native, reqWidth, reqHeight)
	if err != nil {
		return nil, err
	}

	if _, err := rs.Seek(start, io.SeekStart); err != nil {
		return nil, newError(IOError, "load bounded", err)
	}

	return d.codec.DecodeAt(rs, factor)
}

// LoadBoundedFunc is LoadBounded for sources that can't seek: open is
// called once for the probe and once for the decode, and must return the
// same encoded bytes both times.
func (d *Decoder) LoadBoundedFunc(open SourceFunc, reqWidth int, reqHeight int) (*image.RGBA, error) {
	if err := validateRequested(reqWidth, reqHeight); err != nil {
		return nil, err
	}

	var native Dimensions
	err := withSource(open, func(r io.Reader) error {
		var err error
		native, err = d.codec.ProbeDimensions(r)
		return err
	})
	if err != nil {
		return nil, err
	}

	factor, err := d.factorFor(native, reqWidth, reqHeight)
	if err != nil {
		return nil, err
	}

	var img *image.RGBA
	err = withSource(open, func(r io.Reader) error {
		var err error
		img, err = d.codec.DecodeAt(r, factor)
		return err
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (d *Decoder) factorFor(native Dimensions, reqWidth int, reqHeight int) (SampleFactor, error) {
	factor, err := ComputeSampleFactor(native, reqWidth, reqHeight)
	if err != nil {
		return 0, err
	}
	if d.debug {
		log.Debugf("native %s requested %dx%d sample factor %d", native, reqWidth, reqHeight, factor)
	}
	return factor, nil
}

func withSource(open SourceFunc, fn func(r io.Reader) error) error {
	rc, err := open()
	if err != nil {
		return newError(IOError, "open source", err)
	}
	defer rc.Close()
	return fn(rc)
}

func validateRequested(reqWidth int, reqHeight int) error {
	if reqWidth <= 0 || reqHeight <= 0 {
		return newError(InvalidArgument, "load bounded", fmt.Errorf("requested dimensions must be positive, got %dx%d", reqWidth, reqHeight))
	}
	return nil
}
