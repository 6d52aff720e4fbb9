package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kpfaulkner/imgsample/util"
)

func TestComputeSampleFactor(t *testing.T) {

	for _, tc := range []struct {
		name           string
		native         Dimensions
		reqWidth       int
		reqHeight      int
		expectedFactor SampleFactor
	}{
		{name: "already small enough", native: Dimensions{Width: 400, Height: 300}, reqWidth: 400, reqHeight: 300, expectedFactor: 1},
		{name: "smaller than requested", native: Dimensions{Width: 10, Height: 10}, reqWidth: 400, reqHeight: 300, expectedFactor: 1},
		{name: "1000x800 to 400x300", native: Dimensions{Width: 1000, Height: 800}, reqWidth: 400, reqHeight: 300, expectedFactor: 2},
		{name: "2000x2000 to 400x400", native: Dimensions{Width: 2000, Height: 2000}, reqWidth: 400, reqHeight: 400, expectedFactor: 4},
		{name: "3000x4000 to 750x1000", native: Dimensions{Width: 3000, Height: 4000}, reqWidth: 750, reqHeight: 1000, expectedFactor: 2},
		{name: "half exactly equal stops", native: Dimensions{Width: 800, Height: 800}, reqWidth: 400, reqHeight: 400, expectedFactor: 1},
		{name: "narrow axis blocks downsampling", native: Dimensions{Width: 100, Height: 5000}, reqWidth: 200, reqHeight: 200, expectedFactor: 1},
		{name: "asymmetric still downsamples", native: Dimensions{Width: 1000, Height: 5000}, reqWidth: 100, reqHeight: 200, expectedFactor: 8},
		{name: "tiny request", native: Dimensions{Width: 4096, Height: 4096}, reqWidth: 1, reqHeight: 1, expectedFactor: 2048},
		{name: "one pixel native", native: Dimensions{Width: 1, Height: 1}, reqWidth: 1, reqHeight: 1, expectedFactor: 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			factor, err := ComputeSampleFactor(tc.native, tc.reqWidth, tc.reqHeight)
			assert.Nil(t, err)
			assert.Equal(t, tc.expectedFactor, factor)
		})
	}
}

func TestComputeSampleFactorInvalidArguments(t *testing.T) {

	for _, tc := range []struct {
		name      string
		native    Dimensions
		reqWidth  int
		reqHeight int
	}{
		{name: "zero width", native: Dimensions{Width: 100, Height: 100}, reqWidth: 0, reqHeight: 10},
		{name: "zero height", native: Dimensions{Width: 100, Height: 100}, reqWidth: 10, reqHeight: 0},
		{name: "negative", native: Dimensions{Width: 100, Height: 100}, reqWidth: -1, reqHeight: -1},
		{name: "zero native", native: Dimensions{Width: 0, Height: 100}, reqWidth: 10, reqHeight: 10},
		{name: "negative native", native: Dimensions{Width: 100, Height: -3}, reqWidth: 10, reqHeight: 10},
	} {
		t.Run(tc.name, func(t *testing.T) {
			factor, err := ComputeSampleFactor(tc.native, tc.reqWidth, tc.reqHeight)
			assert.Equal(t, SampleFactor(0), factor)
			assert.True(t, errors.Is(err, ErrInvalidArgument))
			assert.Equal(t, InvalidArgument, KindOf(err))
		})
	}
}

// Checks the factor invariants over a grid of sizes rather than a handful of
// hand picked cases.
func TestComputeSampleFactorProperties(t *testing.T) {
	sizes := []int{1, 2, 3, 7, 64, 99, 100, 101, 640, 1000, 1999, 2000, 4096, 10000}
	requests := []int{1, 2, 50, 100, 400, 999, 5000}

	for _, nw := range sizes {
		for _, nh := range sizes {
			for _, rw := range requests {
				for _, rh := range requests {
					native := Dimensions{Width: nw, Height: nh}
					f, err := ComputeSampleFactor(native, rw, rh)
					if !assert.Nil(t, err) {
						return
					}
					fi := int(f)

					if !util.IsPowerOfTwo(fi) {
						t.Fatalf("%s req %dx%d: factor %d not a power of two", native, rw, rh, f)
					}

					if nw <= rw && nh <= rh {
						if f != 1 {
							t.Fatalf("%s req %dx%d: expected 1, got %d", native, rw, rh, f)
						}
						continue
					}

					// doubling stopped at f
					if (nh/2)/fi > rh && (nw/2)/fi > rw {
						t.Fatalf("%s req %dx%d: factor %d not maximal", native, rw, rh, f)
					}

					if f > 1 {
						prev := fi / 2
						if !((nh/2)/prev > rh && (nw/2)/prev > rw) {
							t.Fatalf("%s req %dx%d: factor %d doubled past a failing check", native, rw, rh, f)
						}
						reduced := native.Reduce(f)
						if reduced.Width < rw || reduced.Height < rh {
							t.Fatalf("%s req %dx%d: factor %d decodes to %s", native, rw, rh, f, reduced)
						}
					}
				}
			}
		}
	}
}

func TestDimensionsReduce(t *testing.T) {
	assert.Equal(t, Dimensions{Width: 750, Height: 1000}, Dimensions{Width: 3000, Height: 4000}.Reduce(4))
	assert.Equal(t, Dimensions{Width: 17, Height: 13}, Dimensions{Width: 65, Height: 49}.Reduce(4))
	assert.Equal(t, Dimensions{Width: 1, Height: 1}, Dimensions{Width: 3, Height: 1}.Reduce(8))
	assert.Equal(t, Dimensions{Width: 5, Height: 7}, Dimensions{Width: 5, Height: 7}.Reduce(1))
}

func TestSampleFactorValid(t *testing.T) {
	assert.True(t, SampleFactor(1).Valid())
	assert.True(t, SampleFactor(16).Valid())
	assert.False(t, SampleFactor(0).Valid())
	assert.False(t, SampleFactor(3).Valid())
	assert.False(t, SampleFactor(-2).Valid())
}

func TestDimensionsString(t *testing.T) {
	assert.Equal(t, "3000x4000", Dimensions{Width: 3000, Height: 4000}.String())
	assert.Equal(t, int64(12000000), Dimensions{Width: 3000, Height: 4000}.Pixels())
}
