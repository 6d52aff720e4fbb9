package core

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	// Register decoders so format sniffing covers them.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/kpfaulkner/imgsample/options"
	"github.com/kpfaulkner/imgsample/util"
)

// ImageCodec is the bitmap codec the decoder drives: a bounds-only probe
// and a full decode at a given sample factor.
type ImageCodec interface {
	ProbeDimensions(r io.Reader) (Dimensions, error)
	DecodeAt(r io.Reader, factor SampleFactor) (*image.RGBA, error)
}

// StdCodec decodes anything registered with the image package and reduces
// the result with an x/image/draw interpolator.
type StdCodec struct {
	maxPixels    int64
	interpolator draw.Interpolator
}

func NewStdCodec(opts *options.DecoderOptions) (*StdCodec, error) {
	opt := options.NewDecoderOptions(opts)
	if err := opt.Validate(); err != nil {
		return nil, newError(InvalidArgument, "codec", err)
	}
	return &StdCodec{
		maxPixels:    opt.MaxPixels,
		interpolator: interpolatorFor(opt.Interpolator),
	}, nil
}

func interpolatorFor(name string) draw.Interpolator {
	switch name {
	case options.InterpolatorNearest:
		return draw.NearestNeighbor
	case options.InterpolatorBiLinear:
		return draw.BiLinear
	case options.InterpolatorCatmullRom:
		return draw.CatmullRom
	default:
		return draw.ApproxBiLinear
	}
}

// Probe reads just the header of r and reports the native size and the
// registered format name.
func (c *StdCodec) Probe(r io.Reader) (Dimensions, string, error) {
	tr := &trackingReader{r: r}
	cfg, format, err := image.DecodeConfig(tr)
	if err != nil {
		return Dimensions{}, "", classify("probe", err, tr)
	}
	dim := Dimensions{Width: cfg.Width, Height: cfg.Height}
	if dim.Width <= 0 || dim.Height <= 0 {
		return Dimensions{}, "", newError(InvalidFormat, "probe", fmt.Errorf("%s header reports %s", format, dim))
	}
	return dim, format, nil
}

func (c *StdCodec) ProbeDimensions(r io.Reader) (Dimensions, error) {
	dim, _, err := c.Probe(r)
	return dim, err
}

// DecodeAt decodes r and reduces it to ceil(native/factor) on each side.
// The header is read first so the pixel budget is enforced before any
// buffer is allocated; the header bytes are replayed for the full decode.
func (c *StdCodec) DecodeAt(r io.Reader, factor SampleFactor) (*image.RGBA, error) {
	if !factor.Valid() {
		return nil, newError(InvalidArgument, "decode", fmt.Errorf("sample factor %d is not a power of two", factor))
	}

	tr := &trackingReader{r: r}
	var header bytes.Buffer
	cfg, format, err := image.DecodeConfig(io.TeeReader(tr, &header))
	if err != nil {
		return nil, classify("decode", err, tr)
	}
	native := Dimensions{Width: cfg.Width, Height: cfg.Height}
	if native.Width <= 0 || native.Height <= 0 {
		return nil, newError(InvalidFormat, "decode", fmt.Errorf("%s header reports %s", format, native))
	}
	if err := c.checkBudget(native); err != nil {
		return nil, err
	}

	src, _, err := image.Decode(io.MultiReader(&header, tr))
	if err != nil {
		return nil, classify("decode", err, tr)
	}

	return c.reduce(src, factor), nil
}

func (c *StdCodec) checkBudget(dim Dimensions) error {
	if !util.MulFits(int64(dim.Width), int64(dim.Height)) || !util.MulFits(dim.Pixels(), 4) {
		return newError(OutOfMemory, "decode", fmt.Errorf("%s overflows a pixel buffer", dim))
	}
	if dim.Pixels() > c.maxPixels {
		return newError(OutOfMemory, "decode", fmt.Errorf("%s is %d pixels, budget is %d", dim, dim.Pixels(), c.maxPixels))
	}
	return nil
}

// reduce always returns a fresh *image.RGBA anchored at the origin so the
// caller owns a mutable buffer regardless of the codec's native model.
func (c *StdCodec) reduce(src image.Image, factor SampleFactor) *image.RGBA {
	sb := src.Bounds()
	native := Dimensions{Width: sb.Dx(), Height: sb.Dy()}

	if factor == 1 {
		if rgba, ok := src.(*image.RGBA); ok && sb.Min == (image.Point{}) {
			return rgba
		}
		dst := image.NewRGBA(image.Rect(0, 0, native.Width, native.Height))
		draw.Draw(dst, dst.Bounds(), src, sb.Min, draw.Src)
		return dst
	}

	out := native.Reduce(factor)
	dst := image.NewRGBA(image.Rect(0, 0, out.Width, out.Height))
	c.interpolator.Scale(dst, dst.Bounds(), src, sb, draw.Src, nil)
	return dst
}

// trackingReader remembers the first non-EOF error from the underlying
// reader so stream failures aren't mistaken for malformed data.
type trackingReader struct {
	r   io.Reader
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && t.err == nil {
		t.err = err
	}
	return n, err
}

func classify(op string, err error, tr *trackingReader) error {
	if tr.err != nil {
		return newError(IOError, op, tr.err)
	}
	// image.ErrFormat, png/jpeg FormatError, UnsupportedError and
	// truncated input all mean the bytes are not a decodable image.
	return newError(InvalidFormat, op, err)
}
