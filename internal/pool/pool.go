// Package pool recycles the scratch read buffers UDP exchanges use, so a
// run issuing many exchanges (one per requested RR type, or one per
// --trace hop) doesn't allocate a fresh buffer for every read.
package pool

import "sync"

// BufferPool hands out *[]byte scratch buffers and takes them back once
// the caller is done copying out of them.
type BufferPool struct {
	internal sync.Pool
}

// New creates a BufferPool whose buffers are produced by newFn when the
// pool is empty.
func New(newFn func() *[]byte) *BufferPool {
	return &BufferPool{
		internal: sync.Pool{
			New: func() any {
				return newFn()
			},
		},
	}
}

// Get retrieves a buffer from the pool, allocating one via newFn if none
// is available.
func (p *BufferPool) Get() *[]byte {
	return p.internal.Get().(*[]byte)
}

// Put returns a buffer to the pool for reuse.
func (p *BufferPool) Put(buf *[]byte) {
	p.internal.Put(buf)
}
