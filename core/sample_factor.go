package core

import (
	"fmt"

	"github.com/kpfaulkner/imgsample/util"
)

// Dimensions is the native pixel size of an encoded image.
type Dimensions struct {
	Width  int
	Height int
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Pixels returns Width*Height as int64 so large images don't overflow.
func (d Dimensions) Pixels() int64 {
	return int64(d.Width) * int64(d.Height)
}

// Reduce returns the size of an image decoded at 1/factor resolution,
// rounding up so a reduced side is never zero.
func (d Dimensions) Reduce(factor SampleFactor) Dimensions {
	f := int(factor)
	return Dimensions{
		Width:  util.CeilDiv(d.Width, f),
		Height: util.CeilDiv(d.Height, f),
	}
}

// SampleFactor is a power of two; an image is decoded at 1/SampleFactor of
// its native width and height. 1 means no downsampling.
type SampleFactor int

func (f SampleFactor) Valid() bool {
	return util.IsPowerOfTwo(f)
}

// ComputeSampleFactor returns the largest power of two that can divide the
// native size while both decoded sides stay at or above the requested
// width and height. Requested sides must be positive.
func ComputeSampleFactor(native Dimensions, reqWidth int, reqHeight int) (SampleFactor, error) {
	if native.Width <= 0 || native.Height <= 0 {
		return 0, newError(InvalidArgument, "sample factor", fmt.Errorf("native dimensions must be positive, got %s", native))
	}
	if reqWidth <= 0 || reqHeight <= 0 {
		return 0, newError(InvalidArgument, "sample factor", fmt.Errorf("requested dimensions must be positive, got %dx%d", reqWidth, reqHeight))
	}

	factor := 1
	if native.Height > reqHeight || native.Width > reqWidth {
		halfHeight := native.Height / 2
		halfWidth := native.Width / 2

		// halfX/factor only shrinks, so with positive requests this stops.
		for halfHeight/factor > reqHeight && halfWidth/factor > reqWidth {
			factor *= 2
		}
	}

	return SampleFactor(factor), nil
}
