// Package convert implements the color space converter: RGB<->BGR channel
// reordering, RGB<->HSV, RGB<->YUV and YUV brightness adjustment over whole
// image buffers.
//
// Every operation reads its input without modifying it and returns a newly
// allocated buffer tagged with the target space. Rows are independent, so a
// Converter spreads them over a bounded number of goroutines.
//
// Usage:
//
//	hsv, err := convert.RGBToHSV(rgb)
//	if err != nil {
//	    return err
//	}
//
//	c := convert.New(convert.WithWorkers(4))
//	yuv, err := c.RGBToYUV(rgb)
package convert

import (
	"runtime"

	img "colorconv/internal/image"

	"golang.org/x/sync/errgroup"
)

// DefaultMinRowsPerTask keeps small images on the calling goroutine.
const DefaultMinRowsPerTask = 32

// Converter runs buffer conversions. The zero value is not usable; create one
// with New. A Converter holds no per-call state and may be shared.
type Converter struct {
	workers        int
	minRowsPerTask int
}

// Option configures a Converter.
type Option func(*Converter)

// WithWorkers sets the maximum number of goroutines per operation.
// Values <= 0 select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *Converter) {
		c.workers = n
	}
}

// WithMinRowsPerTask sets the smallest row chunk handed to a goroutine.
// Use 1 to force splitting even tiny images.
func WithMinRowsPerTask(n int) Option {
	return func(c *Converter) {
		c.minRowsPerTask = n
	}
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{minRowsPerTask: DefaultMinRowsPerTask}
	for _, opt := range opts {
		opt(c)
	}
	if c.workers <= 0 {
		c.workers = runtime.GOMAXPROCS(0)
	}
	if c.minRowsPerTask <= 0 {
		c.minRowsPerTask = 1
	}
	return c
}

// Workers returns the goroutine limit.
func (c *Converter) Workers() int {
	return c.workers
}

var defaultConverter = New()

// Default returns the converter used by the package-level functions.
func Default() *Converter {
	return defaultConverter
}

// forRows calls fn over contiguous row ranges [start, end) covering
// [0, height). Ranges never overlap, so fn may write its rows of the
// destination without synchronization.
func (c *Converter) forRows(op string, height int, fn func(start, end int)) {
	if height <= 0 {
		return
	}

	chunk := max((height+c.workers-1)/c.workers, c.minRowsPerTask)
	tasks := (height + chunk - 1) / chunk

	Logger().Debug("convert: run",
		"op", op, "rows", height, "workers", c.workers, "tasks", tasks)

	if tasks == 1 {
		fn(0, height)
		return
	}

	var g errgroup.Group
	g.SetLimit(c.workers)
	for start := 0; start < height; start += chunk {
		start := start // per-iteration copy (pre-Go 1.22 loop semantics)
		end := min(start+chunk, height)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait() // row functions cannot fail
}

// mapPixels applies a per-pixel function from src into a new buffer tagged dst.
func (c *Converter) mapPixels(op string, src *img.Buffer, dst img.Space, fn func(c0, c1, c2 float64) (float64, float64, float64)) *img.Buffer {
	out := src.Like(dst)
	stride := src.Stride()
	c.forRows(op, src.Height, func(start, end int) {
		in := src.Pix[start*stride : end*stride]
		o := out.Pix[start*stride : end*stride]
		for i := 0; i < len(in); i += img.Channels {
			o[i], o[i+1], o[i+2] = fn(in[i], in[i+1], in[i+2])
		}
	})
	return out
}
