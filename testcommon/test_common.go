package testcommon

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// GradientImage returns a w x h image where red tracks x and green tracks y,
// so a resampled copy can be checked for orientation.
func GradientImage(w int, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 255 / max(w-1, 1)),
				G: uint8(y * 255 / max(h-1, 1)),
				B: 0x40,
				A: 0xFF,
			})
		}
	}
	return img
}

// SolidImage returns a w x h image filled with c.
func SolidImage(w int, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func EncodePNG(t testing.TB, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// MakePNG returns an encoded w x h gradient PNG.
func MakePNG(t testing.TB, w int, h int) []byte {
	t.Helper()
	return EncodePNG(t, GradientImage(w, h))
}

func MakeJPEG(t testing.TB, w int, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, GradientImage(w, h), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func MakeGIF(t testing.TB, w int, h int) []byte {
	t.Helper()
	palette := []color.Color{color.Black, color.White}
	img := image.NewPaletted(image.Rect(0, 0, w, h), palette)
	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func MakeBMP(t testing.TB, w int, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, GradientImage(w, h)); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func MakeTIFF(t testing.TB, w int, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, GradientImage(w, h), nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// MakePNGHeader returns a PNG signature and IHDR chunk claiming w x h with
// no image data behind it. Enough for a bounds probe, not for a decode.
func MakePNGHeader(t testing.TB, w int, h int) []byte {
	t.Helper()
	full := MakePNG(t, 1, 1)
	// signature (8) + IHDR length/type/data/crc (4+4+13+4)
	header := bytes.Clone(full[:33])
	binary.BigEndian.PutUint32(header[16:], uint32(w))
	binary.BigEndian.PutUint32(header[20:], uint32(h))
	binary.BigEndian.PutUint32(header[29:], crc32.ChecksumIEEE(header[12:29]))
	return header
}
