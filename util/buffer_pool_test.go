package util

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncoderBufferPool(t *testing.T) {
	pool := &EncoderBufferPool{}

	// empty pool hands back nil so png.Encoder allocates
	assert.Nil(t, pool.Get())
	hits, misses := pool.GetMetrics()
	assert.Equal(t, int64(0), hits)
	assert.Equal(t, int64(1), misses)

	// Put of nil is ignored
	pool.Put(nil)
}

func TestEncoderBufferPoolWithEncoder(t *testing.T) {
	pool := &EncoderBufferPool{}
	enc := png.Encoder{CompressionLevel: png.BestCompression, BufferPool: pool}
	img := image.NewRGBA(image.Rect(0, 0, 16, 8))

	for i := 0; i < 3; i++ {
		var buf bytes.Buffer
		err := enc.Encode(&buf, img)
		assert.Nil(t, err)

		decoded, err := png.Decode(&buf)
		assert.Nil(t, err)
		assert.Equal(t, img.Bounds(), decoded.Bounds())
	}

	hits, misses := pool.GetMetrics()
	assert.Equal(t, int64(3), hits+misses)
}

func TestBytesBufferPool(t *testing.T) {
	pool := &BytesBufferPool{}

	buf := pool.Get()
	assert.NotNil(t, buf)
	buf.WriteString("dirty")
	pool.Put(buf)

	// whatever comes back must be empty
	buf2 := pool.Get()
	assert.Equal(t, 0, buf2.Len())

	hits, misses := pool.GetMetrics()
	assert.Equal(t, int64(2), hits+misses)
}

func TestBytesBufferPoolDropsHugeBuffers(t *testing.T) {
	pool := &BytesBufferPool{}
	big := bytes.NewBuffer(make([]byte, 0, maxPooledBufferSize+1))
	pool.Put(big)

	got := pool.Get()
	assert.True(t, got.Cap() <= maxPooledBufferSize)
}

func TestGetPoolMetrics(t *testing.T) {
	b := GetBytesBuffer()
	ReturnBytesBuffer(b)

	metrics := GetPoolMetrics()
	assert.Contains(t, metrics, "png_encoder")
	assert.Contains(t, metrics, "bytes")
	assert.True(t, metrics["bytes"]["hits"]+metrics["bytes"]["misses"] >= 1)
}

func TestConcurrentAccess(t *testing.T) {
	const goroutines = 10
	const iterations = 100

	done := make(chan bool, goroutines)

	for g := 0; g < goroutines; g++ {
		go func() {
			for i := 0; i < iterations; i++ {
				b := GetBytesBuffer()
				b.WriteByte(byte(i))
				ReturnBytesBuffer(b)
			}
			done <- true
		}()
	}

	for g := 0; g < goroutines; g++ {
		<-done
	}
}

// Benchmarks

func BenchmarkPNGEncodePooled(b *testing.B) {
	b.ReportAllocs()
	img := image.NewRGBA(image.Rect(0, 0, 256, 256))
	enc := png.Encoder{BufferPool: PNGEncoderPool()}
	for i := 0; i < b.N; i++ {
		buf := GetBytesBuffer()
		_ = enc.Encode(buf, img)
		ReturnBytesBuffer(buf)
	}
}

func BenchmarkPNGEncodeDirect(b *testing.B) {
	b.ReportAllocs()
	img := image.NewRGBA(image.Rect(0, 0, 256, 256))
	for i := 0; i < b.N; i++ {
		var buf bytes.Buffer
		_ = png.Encode(&buf, img)
	}
}
