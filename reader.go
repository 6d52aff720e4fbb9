package imgsample

import (
	"image"
	"io"
	"sync"

	"github.com/kpfaulkner/imgsample/core"
)

var (
	defaultDecoder     *core.Decoder
	defaultDecoderOnce sync.Once
)

func decoder() *core.Decoder {
	defaultDecoderOnce.Do(func() {
		d, err := core.NewDecoder(nil)
		if err != nil {
			// default options always validate
			panic(err)
		}
		defaultDecoder = d
	})
	return defaultDecoder
}

// Load decodes r at full resolution into a new, mutable RGBA image.
func Load(r io.Reader) (*image.RGBA, error) {
	return decoder().LoadFull(r)
}

// LoadBounded decodes rs downsampled by the largest power of two that keeps
// both sides at or above reqWidth x reqHeight.
func LoadBounded(rs io.ReadSeeker, reqWidth int, reqHeight int) (*image.RGBA, error) {
	return decoder().LoadBounded(rs, reqWidth, reqHeight)
}

// DecodeConfig reports the native dimensions of r without decoding pixels.
func DecodeConfig(r io.Reader) (core.Dimensions, error) {
	return decoder().ProbeDimensions(r)
}

// SampleFactor is core.ComputeSampleFactor, re-exported for callers that
// only import this package.
func SampleFactor(native core.Dimensions, reqWidth int, reqHeight int) (core.SampleFactor, error) {
	return core.ComputeSampleFactor(native, reqWidth, reqHeight)
}
