// Package filter implements pixel transforms over interleaved RGB frames.
package filter

import (
	"github.com/pkg/errors"

	"github.com/lanikai/oilcam/internal/media"
)

// A Filter transforms an interleaved RGB frame. It returns a new buffer of
// the same size, owned by the caller, and leaves rgb untouched.
type Filter interface {
	Filter(rgb []byte, width, height int) []byte
}

// Func adapts an ordinary function to the Filter interface.
type Func func(rgb []byte, width, height int) []byte

func (f Func) Filter(rgb []byte, width, height int) []byte {
	return f(rgb, width, height)
}

// Options configure filters created by ByName.
type Options struct {
	Radius  int
	Levels  int
	Workers int

	// Output buffers are obtained here. Defaults to media.Heap.
	Alloc media.Allocator
}

// ByName returns the filter registered under name: "oil" or "identity".
func ByName(name string, opts Options) (Filter, error) {
	switch name {
	case "oil":
		return &OilPaint{
			Radius:  opts.Radius,
			Levels:  opts.Levels,
			Workers: opts.Workers,
			Alloc:   opts.Alloc,
		}, nil
	case "identity":
		return &Identity{Alloc: opts.Alloc}, nil
	default:
		return nil, errors.Errorf("unknown filter '%s'", name)
	}
}

// Identity returns an unmodified copy of its input.
type Identity struct {
	Alloc media.Allocator
}

func (f *Identity) Filter(rgb []byte, width, height int) []byte {
	out := allocator(f.Alloc).Alloc(len(rgb))
	copy(out, rgb)
	return out
}

func allocator(a media.Allocator) media.Allocator {
	if a == nil {
		return media.Heap
	}
	return a
}
