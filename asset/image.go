package asset

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"
)

// ErrNotReady is returned while an image is still decoding
var ErrNotReady = errors.New("asset not ready")

// Image is a raster resource filled in by a background load
// Readers never block: Image returns nil until decoding finishes
type Image struct {
	name string

	img  atomic.Pointer[image.Image]
	done chan struct{}
	err  error

	mu       sync.Mutex
	finished bool
	released bool
}

func newImage(name string) *Image {
	return &Image{name: name, done: make(chan struct{})}
}

// Name returns the file name the image was requested as
func (i *Image) Name() string { return i.name }

// Image returns the decoded image, or nil if not ready, failed or released
func (i *Image) Image() image.Image {
	p := i.img.Load()
	if p == nil {
		return nil
	}
	return *p
}

// Ready reports whether a decoded image is available
func (i *Image) Ready() bool {
	return i.img.Load() != nil
}

// Err returns ErrNotReady while loading, then the load error or nil
func (i *Image) Err() error {
	select {
	case <-i.done:
		return i.err
	default:
		return ErrNotReady
	}
}

// Wait blocks until loading finishes or ctx is done
func (i *Image) Wait(ctx context.Context) error {
	select {
	case <-i.done:
		return i.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release drops the decoded pixels; later reads return nil, including a load still in flight
func (i *Image) Release() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.released = true
	i.img.Store(nil)
}

// finish publishes the load result exactly once
func (i *Image) finish(img image.Image, err error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.finished {
		return
	}
	i.finished = true
	i.err = err
	if err == nil && img != nil && !i.released {
		i.img.Store(&img)
	}
	close(i.done)
}
