package image

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpaceString(t *testing.T) {
	tests := []struct {
		space Space
		want  string
	}{
		{SpaceRGB, "RGB"},
		{SpaceBGR, "BGR"},
		{SpaceHSV, "HSV"},
		{SpaceYUV, "YUV"},
		{SpaceUnknown, "Unknown"},
		{Space(42), "Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.space.String())
	}
}

func TestParseSpace(t *testing.T) {
	s, err := ParseSpace("YUV")
	require.NoError(t, err)
	assert.Equal(t, SpaceYUV, s)

	_, err = ParseSpace("yuv")
	assert.Error(t, err)
}

func TestNewBufferFromPix(t *testing.T) {
	b, err := NewBufferFromPix(2, 1, SpaceRGB, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	c0, c1, c2 := b.At(1, 0)
	assert.Equal(t, [3]float64{4, 5, 6}, [3]float64{c0, c1, c2})

	_, err = NewBufferFromPix(2, 2, SpaceRGB, []float64{1, 2, 3})
	assert.Error(t, err)

	_, err = NewBufferFromPix(-1, 2, SpaceRGB, nil)
	assert.Error(t, err)
}

func TestBufferAtSetBounds(t *testing.T) {
	b := NewBuffer(3, 2, SpaceRGB)
	b.Set(2, 1, 10, 20, 30)
	b.Set(3, 0, 1, 1, 1) // ignored
	b.Set(0, -1, 1, 1, 1)

	c0, c1, c2 := b.At(2, 1)
	assert.Equal(t, [3]float64{10, 20, 30}, [3]float64{c0, c1, c2})

	c0, c1, c2 = b.At(5, 5)
	assert.Equal(t, [3]float64{0, 0, 0}, [3]float64{c0, c1, c2})

	assert.Equal(t, 9, b.Stride())
	assert.Equal(t, 6, b.Len())
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0, 10, 20, 30}, b.Row(1))
}

func TestBufferCloneIsDeep(t *testing.T) {
	b := NewBuffer(1, 1, SpaceHSV)
	b.Set(0, 0, 1, 2, 3)
	c := b.Clone()
	c.Set(0, 0, 9, 9, 9)

	c0, _, _ := b.At(0, 0)
	assert.Equal(t, 1.0, c0)
	assert.Equal(t, SpaceHSV, c.Space)
}

func TestBufferImageClampsAndRounds(t *testing.T) {
	b := NewBuffer(2, 1, SpaceYUV)
	b.Set(0, 0, -4, 127.6, 284.8)
	b.Set(1, 0, 0.4, 255, 12)

	img := b.Image()
	assert.Equal(t, color.RGBA{255, 128, 0, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{12, 255, 0, 255}, img.RGBAAt(1, 0))
}

func TestBufferImageChannelOrder(t *testing.T) {
	tests := []struct {
		space Space
		want  color.RGBA
	}{
		{SpaceRGB, color.RGBA{10, 20, 30, 255}},
		{SpaceBGR, color.RGBA{30, 20, 10, 255}},
		{SpaceHSV, color.RGBA{30, 20, 10, 255}},
		{SpaceYUV, color.RGBA{30, 20, 10, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.space.String(), func(t *testing.T) {
			b := NewBuffer(1, 1, tt.space)
			b.Set(0, 0, 10, 20, 30)
			assert.Equal(t, tt.want, b.Image().RGBAAt(0, 0))
		})
	}
}

func TestFromImage(t *testing.T) {
	t.Run("nrgba fast path", func(t *testing.T) {
		src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
		src.SetNRGBA(1, 1, color.NRGBA{10, 20, 30, 128})
		b := FromImage(src)
		require.Equal(t, SpaceRGB, b.Space)
		c0, c1, c2 := b.At(1, 1)
		assert.Equal(t, [3]float64{10, 20, 30}, [3]float64{c0, c1, c2})
	})

	t.Run("offset bounds", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(5, 5, 7, 6))
		src.SetRGBA(6, 5, color.RGBA{200, 100, 50, 255})
		b := FromImage(src)
		require.Equal(t, 2, b.Width)
		require.Equal(t, 1, b.Height)
		c0, c1, c2 := b.At(1, 0)
		assert.Equal(t, [3]float64{200, 100, 50}, [3]float64{c0, c1, c2})
	})

	t.Run("gray", func(t *testing.T) {
		src := image.NewGray(image.Rect(0, 0, 1, 1))
		src.SetGray(0, 0, color.Gray{77})
		c0, c1, c2 := FromImage(src).At(0, 0)
		assert.Equal(t, [3]float64{77, 77, 77}, [3]float64{c0, c1, c2})
	})
}

func TestImageRoundtrip(t *testing.T) {
	b := NewBuffer(4, 3, SpaceRGB)
	for i := range b.Pix {
		b.Pix[i] = float64((i * 37) % 256)
	}
	back := FromImage(b.Image())
	assert.Equal(t, b.Pix, back.Pix)
}
