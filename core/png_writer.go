package core

import (
	"bytes"
	"image"
	"image/png"
	"io"

	"github.com/kpfaulkner/imgsample/util"
)

// PNG is lossless, so "maximum quality" is just the best compression level.
var pngEncoder = png.Encoder{
	CompressionLevel: png.BestCompression,
	BufferPool:       util.PNGEncoderPool(),
}

// WritePNG encodes img to output as a PNG.
func WritePNG(img image.Image, output io.Writer) error {
	return pngEncoder.Encode(output, img)
}

// EncodePNG returns img as PNG bytes. The returned slice is owned by the caller.
func EncodePNG(img image.Image) ([]byte, error) {
	buf := util.GetBytesBuffer()
	defer util.ReturnBytesBuffer(buf)

	if err := WritePNG(img, buf); err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}
