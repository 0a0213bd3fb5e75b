package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferPool_GetPut(t *testing.T) {
	callCount := 0
	p := New(func() *[]byte {
		callCount++
		b := make([]byte, 16)
		return &b
	})

	item1 := p.Get()
	require.NotNil(t, item1, "expected non-nil item from Get")
	assert.Len(t, *item1, 16)

	p.Put(item1)

	item2 := p.Get()
	require.NotNil(t, item2, "expected non-nil item from second Get")
}

func TestBufferPool_ConcurrentAccess(t *testing.T) {
	p := New(func() *[]byte {
		b := make([]byte, 1024)
		return &b
	})

	var wg sync.WaitGroup
	const goroutines = 100
	const iterations = 100

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				buf := p.Get()
				assert.Len(t, *buf, 1024)
				(*buf)[0] = byte(j)
				p.Put(buf)
			}
		}()
	}

	wg.Wait()
}

func TestBufferPool_GrowsWhenCallerReplacesBuffer(t *testing.T) {
	p := New(func() *[]byte {
		b := make([]byte, 4)
		return &b
	})

	buf := p.Get()
	*buf = make([]byte, 64)
	assert.Len(t, *buf, 64)
	p.Put(buf)
}
