package image

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPattern(w, h int) *Buffer {
	b := NewBuffer(w, h, SpaceRGB)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.Set(x, y, float64(x*255/max(w-1, 1)), float64(y*255/max(h-1, 1)), 128)
		}
	}
	return b
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"png", FormatPNG},
		{".PNG", FormatPNG},
		{"jpeg", FormatJPEG},
		{".jpg", FormatJPEG},
		{"bmp", FormatBMP},
		{".tif", FormatTIFF},
		{"tiff", FormatTIFF},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFormat(".gif")
	assert.Error(t, err)
	assert.Equal(t, ".jpg", FormatJPEG.Ext())
}

func TestEncodeDecodeLossless(t *testing.T) {
	src := testPattern(8, 5)
	for _, f := range []Format{FormatPNG, FormatBMP, FormatTIFF} {
		t.Run(string(f), func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, Encode(&out, src, f, EncodeOptions{}))

			got, _, err := Decode(&out)
			require.NoError(t, err)
			assert.Equal(t, src.Width, got.Width)
			assert.Equal(t, src.Height, got.Height)
			assert.Equal(t, src.Pix, got.Pix)
		})
	}
}

func TestEncodeJPEG(t *testing.T) {
	src := NewBuffer(16, 16, SpaceRGB)
	for i := 0; i < len(src.Pix); i += 3 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2] = 200, 100, 50
	}
	var out bytes.Buffer
	require.NoError(t, Encode(&out, src, FormatJPEG, EncodeOptions{JPEGQuality: 100}))

	got, format, err := Decode(&out)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	for i := range src.Pix {
		assert.InDelta(t, src.Pix[i], got.Pix[i], 4)
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, Encode(&out, testPattern(1, 1), Format("xcf"), EncodeOptions{}))
}

func TestEncodeNilBuffer(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorIs(t, Encode(&out, nil, FormatPNG, EncodeOptions{}), ErrInvalidArgument)
	assert.Zero(t, out.Len())

	path := filepath.Join(t.TempDir(), "nil.png")
	assert.ErrorIs(t, Save(path, nil, EncodeOptions{}), ErrInvalidArgument)
	assert.NoFileExists(t, path)
}

func TestDecodeGarbage(t *testing.T) {
	_, _, err := Decode(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pattern.png")
	src := testPattern(6, 4)

	require.NoError(t, Save(path, src, EncodeOptions{}))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, got.Pix)

	_, err = Load(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.Error(t, Save(filepath.Join(dir, "pattern.xyz"), src, EncodeOptions{}))
}
