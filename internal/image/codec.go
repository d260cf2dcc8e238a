package image

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrInvalidArgument reports a nil buffer or another argument no codec can
// accept.
var ErrInvalidArgument = errors.New("invalid argument")

// Format names an output encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpg"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// DefaultJPEGQuality matches the quality OpenCV uses when none is given.
const DefaultJPEGQuality = 95

// ParseFormat accepts a format name or file extension, with or without the dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("unsupported image format %q", s)
	}
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// EncodeOptions tunes lossy encoders.
type EncodeOptions struct {
	JPEGQuality int
}

// Decode reads PNG, JPEG, GIF, TIFF, BMP or WebP data into an RGB buffer.
func Decode(r io.Reader) (*Buffer, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img), format, nil
}

// Load decodes the image file at path into an RGB buffer.
func Load(path string) (*Buffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	buf, _, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return buf, nil
}

// Encode writes the buffer as an 8-bit image. See Buffer.Image for how
// non-RGB spaces are written.
func Encode(w io.Writer, buf *Buffer, format Format, opts EncodeOptions) error {
	if buf == nil {
		return fmt.Errorf("%w: encode: nil buffer", ErrInvalidArgument)
	}
	img := buf.Image()
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		q := opts.JPEGQuality
		if q <= 0 {
			q = DefaultJPEGQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: q})
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// Save encodes the buffer to path, choosing the encoder from the extension.
func Save(path string, buf *Buffer, opts EncodeOptions) error {
	if buf == nil {
		return fmt.Errorf("%w: save %s: nil buffer", ErrInvalidArgument, path)
	}
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}

	if err := Encode(file, buf, format, opts); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}
