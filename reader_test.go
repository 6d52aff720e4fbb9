package imgsample

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpfaulkner/imgsample/core"
	"github.com/kpfaulkner/imgsample/testcommon"
)

func TestLoad(t *testing.T) {
	img, err := Load(bytes.NewReader(testcommon.MakePNG(t, 30, 20)))
	require.Nil(t, err)
	assert.Equal(t, image.Rect(0, 0, 30, 20), img.Bounds())
}

func TestLoadBounded(t *testing.T) {
	img, err := LoadBounded(bytes.NewReader(testcommon.MakeBMP(t, 200, 200)), 40, 40)
	require.Nil(t, err)
	assert.Equal(t, image.Rect(0, 0, 50, 50), img.Bounds())
}

func TestDecodeConfig(t *testing.T) {
	dim, err := DecodeConfig(bytes.NewReader(testcommon.MakeTIFF(t, 9, 7)))
	require.Nil(t, err)
	assert.Equal(t, core.Dimensions{Width: 9, Height: 7}, dim)

	_, err = DecodeConfig(bytes.NewReader([]byte("xx")))
	assert.True(t, errors.Is(err, core.ErrInvalidFormat))
}

func TestSampleFactor(t *testing.T) {
	f, err := SampleFactor(core.Dimensions{Width: 2000, Height: 2000}, 400, 400)
	assert.Nil(t, err)
	assert.Equal(t, core.SampleFactor(4), f)
}
