package util

import (
	"bytes"
	"image/png"
	"sync"
	"sync/atomic"
)

// maxPooledBufferSize stops a single huge encode from pinning memory in the pool.
const maxPooledBufferSize = 64 << 20

// EncoderBufferPool implements png.EncoderBufferPool so repeated PNG encodes
// reuse the encoder's scratch buffers.
type EncoderBufferPool struct {
	pool sync.Pool

	// Metrics
	hits   atomic.Int64
	misses atomic.Int64
}

// Get returns a pooled encoder buffer, or nil which tells png.Encoder to allocate.
func (p *EncoderBufferPool) Get() *png.EncoderBuffer {
	if b, ok := p.pool.Get().(*png.EncoderBuffer); ok && b != nil {
		p.hits.Add(1)
		return b
	}
	p.misses.Add(1)
	return nil
}

func (p *EncoderBufferPool) Put(b *png.EncoderBuffer) {
	if b == nil {
		return
	}
	p.pool.Put(b)
}

// GetMetrics returns pool usage statistics
func (p *EncoderBufferPool) GetMetrics() (hits, misses int64) {
	return p.hits.Load(), p.misses.Load()
}

// BytesBufferPool pools bytes.Buffers used to hold encoded output.
type BytesBufferPool struct {
	pool   sync.Pool
	hits   atomic.Int64
	misses atomic.Int64
}

// Get retrieves an empty buffer from the pool or creates a new one
func (p *BytesBufferPool) Get() *bytes.Buffer {
	if b, ok := p.pool.Get().(*bytes.Buffer); ok && b != nil {
		p.hits.Add(1)
		return b
	}
	p.misses.Add(1)
	return new(bytes.Buffer)
}

// Put resets the buffer and returns it to the pool
func (p *BytesBufferPool) Put(b *bytes.Buffer) {
	if b == nil || b.Cap() > maxPooledBufferSize {
		return
	}
	b.Reset()
	p.pool.Put(b)
}

// GetMetrics returns pool usage statistics
func (p *BytesBufferPool) GetMetrics() (hits, misses int64) {
	return p.hits.Load(), p.misses.Load()
}

var (
	pngEncoderPool = &EncoderBufferPool{}
	bytesPool      = &BytesBufferPool{}
)

// Public API functions

// PNGEncoderPool returns the process wide PNG encoder buffer pool.
func PNGEncoderPool() *EncoderBufferPool {
	return pngEncoderPool
}

// GetBytesBuffer retrieves an empty buffer from the shared pool
func GetBytesBuffer() *bytes.Buffer {
	return bytesPool.Get()
}

// ReturnBytesBuffer returns a buffer to the shared pool
func ReturnBytesBuffer(b *bytes.Buffer) {
	bytesPool.Put(b)
}

// GetPoolMetrics returns metrics for all pools
func GetPoolMetrics() map[string]map[string]int64 {
	pngHits, pngMisses := pngEncoderPool.GetMetrics()
	bytesHits, bytesMisses := bytesPool.GetMetrics()

	return map[string]map[string]int64{
		"png_encoder": {
			"hits":   pngHits,
			"misses": pngMisses,
		},
		"bytes": {
			"hits":   bytesHits,
			"misses": bytesMisses,
		},
	}
}
