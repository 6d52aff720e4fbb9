package core

import (
	"image"
	"io"
	"sync"
)

// fakeCodec reports fixed dimensions and records the factors it was asked
// to decode at. Both operations drain the reader like a real codec would.
type fakeCodec struct {
	mu        sync.Mutex
	dims      Dimensions
	probeErr  error
	decodeErr error
	probes    int
	factors   []SampleFactor
}

func (fc *fakeCodec) ProbeDimensions(r io.Reader) (Dimensions, error) {
	_, _ = io.Copy(io.Discard, r)
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.probes++
	if fc.probeErr != nil {
		return Dimensions{}, fc.probeErr
	}
	return fc.dims, nil
}

func (fc *fakeCodec) DecodeAt(r io.Reader, factor SampleFactor) (*image.RGBA, error) {
	_, _ = io.Copy(io.Discard, r)
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.factors = append(fc.factors, factor)
	if fc.decodeErr != nil {
		return nil, fc.decodeErr
	}
	out := fc.dims.Reduce(factor)
	return image.NewRGBA(image.Rect(0, 0, out.Width, out.Height)), nil
}
