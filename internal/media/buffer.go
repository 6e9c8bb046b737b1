package media

import (
	"sync"
	"sync/atomic"
)

/*
An Allocator hands out frame buffers and takes them back. Ownership is
explicit: whoever holds a buffer returned by Alloc must pass it to Release
exactly once, after which it must not be touched again. A recycled buffer
may still hold stale data from its previous owner.

Example usage:

	buf := alloc.Alloc(size)
	next := transform(buf) // next was also obtained from alloc
	alloc.Release(buf)
	buf = next

The goal is to avoid a fresh multi-megabyte allocation for every frame of a
real-time stream.
*/
type Allocator interface {
	Alloc(n int) []byte
	Release(buf []byte)
}

// Heap allocates with make and leaves reclamation to the garbage collector.
var Heap Allocator = heap{}

type heap struct{}

func (heap) Alloc(n int) []byte { return make([]byte, n) }
func (heap) Release([]byte)     {}

// Pool recycles buffers through one sync.Pool per buffer size. A stream
// only ever uses one or two sizes.
type Pool struct {
	pools sync.Map // int -> *sync.Pool
}

func NewPool() *Pool {
	return &Pool{}
}

func (p *Pool) get(size int) *sync.Pool {
	if sp, ok := p.pools.Load(size); ok {
		return sp.(*sync.Pool)
	}
	sp, _ := p.pools.LoadOrStore(size, &sync.Pool{
		New: func() interface{} {
			b := make([]byte, size)
			return &b
		},
	})
	return sp.(*sync.Pool)
}

func (p *Pool) Alloc(n int) []byte {
	return *p.get(n).Get().(*[]byte)
}

func (p *Pool) Release(buf []byte) {
	if cap(buf) == 0 {
		return
	}
	buf = buf[:cap(buf)]
	p.get(len(buf)).Put(&buf)
}

// Counter wraps an Allocator and tracks the number of buffers that have been
// allocated but not yet released.
type Counter struct {
	Allocator

	outstanding int64
}

func NewCounter(a Allocator) *Counter {
	return &Counter{Allocator: a}
}

func (c *Counter) Alloc(n int) []byte {
	atomic.AddInt64(&c.outstanding, 1)
	return c.Allocator.Alloc(n)
}

func (c *Counter) Release(buf []byte) {
	if buf == nil {
		return
	}
	atomic.AddInt64(&c.outstanding, -1)
	c.Allocator.Release(buf)
}

// Outstanding returns the number of live buffers.
func (c *Counter) Outstanding() int {
	return int(atomic.LoadInt64(&c.outstanding))
}
