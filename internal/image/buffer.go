// Package image provides the tagged pixel buffer the converter operates on,
// plus decoding, encoding and montage helpers around it.
package image

import (
	"fmt"
	"image"

	"colorconv/pkg/colorutil"
)

// Channels is the number of samples per pixel for every supported space.
const Channels = 3

// Space identifies how the three samples of every pixel in a buffer are interpreted.
type Space int

const (
	SpaceUnknown Space = iota
	SpaceRGB
	SpaceBGR
	SpaceHSV // H half-scale [0,180), S and V [0,255]
	SpaceYUV // U and V biased by +128
)

func (s Space) String() string {
	switch s {
	case SpaceRGB:
		return "RGB"
	case SpaceBGR:
		return "BGR"
	case SpaceHSV:
		return "HSV"
	case SpaceYUV:
		return "YUV"
	default:
		return "Unknown"
	}
}

// ParseSpace maps a case-sensitive space name back to its tag.
func ParseSpace(name string) (Space, error) {
	for _, s := range []Space{SpaceRGB, SpaceBGR, SpaceHSV, SpaceYUV} {
		if s.String() == name {
			return s, nil
		}
	}
	return SpaceUnknown, fmt.Errorf("unknown color space %q", name)
}

// Buffer is a dense height x width x 3 image held as float64 samples.
// Samples are interleaved row-major: Pix[(y*Width+x)*3+c].
type Buffer struct {
	Width  int
	Height int
	Space  Space
	Pix    []float64
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(width, height int, space Space) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Space:  space,
		Pix:    make([]float64, width*height*Channels),
	}
}

// NewBufferFromPix wraps an existing sample slice. The slice length must
// match the dimensions.
func NewBufferFromPix(width, height int, space Space, pix []float64) (*Buffer, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if len(pix) != width*height*Channels {
		return nil, fmt.Errorf("pixel data length %d does not match %dx%dx%d", len(pix), width, height, Channels)
	}
	return &Buffer{Width: width, Height: height, Space: space, Pix: pix}, nil
}

// Stride returns the number of samples in one row.
func (b *Buffer) Stride() int {
	return b.Width * Channels
}

// Len returns the number of pixels.
func (b *Buffer) Len() int {
	return b.Width * b.Height
}

// At returns the three samples of a pixel. Out-of-range coordinates yield zeros.
func (b *Buffer) At(x, y int) (c0, c1, c2 float64) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return 0, 0, 0
	}
	i := (y*b.Width + x) * Channels
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2]
}

// Set stores the three samples of a pixel. Out-of-range coordinates are ignored.
func (b *Buffer) Set(x, y int, c0, c1, c2 float64) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return
	}
	i := (y*b.Width + x) * Channels
	b.Pix[i], b.Pix[i+1], b.Pix[i+2] = c0, c1, c2
}

// Row returns the samples of row y, sharing storage with the buffer.
func (b *Buffer) Row(y int) []float64 {
	s := b.Stride()
	return b.Pix[y*s : (y+1)*s]
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	pix := make([]float64, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Width: b.Width, Height: b.Height, Space: b.Space, Pix: pix}
}

// Like allocates a zeroed buffer of the same dimensions tagged with space.
func (b *Buffer) Like(space Space) *Buffer {
	return NewBuffer(b.Width, b.Height, space)
}

// Bounds returns the buffer rectangle anchored at the origin.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// Image encodes the buffer as 8-bit RGBA. RGB buffers map channels 0, 1
// and 2 to R, G and B. Every other space is written in OpenCV's BGR order,
// channel 0 to B and channel 2 to R, so HSV and YUV dumps match what
// cv2.imwrite produces for the same samples. Samples are clamped to [0,255]
// and rounded.
func (b *Buffer) Image() *image.RGBA {
	r, bl := 0, 2
	if b.Space != SpaceRGB {
		r, bl = 2, 0
	}
	img := image.NewRGBA(b.Bounds())
	for p, i := 0, 0; p < b.Len(); p, i = p+1, i+Channels {
		o := p * 4
		img.Pix[o+0] = colorutil.To8(b.Pix[i+r])
		img.Pix[o+1] = colorutil.To8(b.Pix[i+1])
		img.Pix[o+2] = colorutil.To8(b.Pix[i+bl])
		img.Pix[o+3] = 255
	}
	return img
}

// FromImage converts any decoded image into an RGB buffer on the 8-bit scale.
// Alpha is discarded.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	buf := NewBuffer(bounds.Dx(), bounds.Dy(), SpaceRGB)

	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < buf.Height; y++ {
			src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+buf.Width*4]
			dst := buf.Row(y)
			for x := 0; x < buf.Width; x++ {
				dst[x*3+0] = float64(src[x*4+0])
				dst[x*3+1] = float64(src[x*4+1])
				dst[x*3+2] = float64(src[x*4+2])
			}
		}
		return buf
	}

	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			if a != 0 && a != 0xffff {
				// Undo premultiplication so translucent pixels keep their color.
				r = r * 0xffff / a
				g = g * 0xffff / a
				b = b * 0xffff / a
			}
			buf.Set(x, y, float64(r>>8), float64(g>>8), float64(b>>8))
		}
	}
	return buf
}
