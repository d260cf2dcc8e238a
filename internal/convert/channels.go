package convert

import (
	"fmt"

	img "colorconv/internal/image"
	"colorconv/pkg/colorutil"
)

// SwapChannels reverses the channel order of an RGB or BGR buffer and flips
// the tag accordingly. Applying it twice yields the original buffer exactly.
func (c *Converter) SwapChannels(src *img.Buffer) (*img.Buffer, error) {
	if err := checkSpace("SwapChannels", src, img.SpaceRGB, img.SpaceBGR); err != nil {
		return nil, err
	}
	dst := img.SpaceBGR
	if src.Space == img.SpaceBGR {
		dst = img.SpaceRGB
	}
	return c.mapPixels("SwapChannels", src, dst, func(c0, c1, c2 float64) (float64, float64, float64) {
		return c2, c1, c0
	}), nil
}

// Clamp returns a copy of src with every sample limited to [0,255]. The
// conversions never clamp; use this before handing a buffer to an encoder
// that needs display-safe values.
func (c *Converter) Clamp(src *img.Buffer) (*img.Buffer, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: Clamp: nil buffer", ErrInvalidArgument)
	}
	return c.mapPixels("Clamp", src, src.Space, func(c0, c1, c2 float64) (float64, float64, float64) {
		return colorutil.Clamp255(c0), colorutil.Clamp255(c1), colorutil.Clamp255(c2)
	}), nil
}

// ToRGB normalizes a buffer of any supported space to RGB.
func (c *Converter) ToRGB(src *img.Buffer) (*img.Buffer, error) {
	if err := checkSpace("ToRGB", src, img.SpaceRGB, img.SpaceBGR, img.SpaceHSV, img.SpaceYUV); err != nil {
		return nil, err
	}
	switch src.Space {
	case img.SpaceBGR:
		return c.SwapChannels(src)
	case img.SpaceHSV:
		return c.HSVToRGB(src)
	case img.SpaceYUV:
		return c.YUVToRGB(src)
	default:
		return src.Clone(), nil
	}
}

// Convert routes src to the target space through RGB when no direct
// conversion exists. The result is always a new buffer.
func (c *Converter) Convert(src *img.Buffer, to img.Space) (*img.Buffer, error) {
	if src != nil && src.Space == to {
		return src.Clone(), nil
	}
	rgb, err := c.ToRGB(src)
	if err != nil {
		return nil, err
	}
	switch to {
	case img.SpaceRGB:
		return rgb, nil
	case img.SpaceBGR:
		return c.SwapChannels(rgb)
	case img.SpaceHSV:
		return c.RGBToHSV(rgb)
	case img.SpaceYUV:
		return c.RGBToYUV(rgb)
	default:
		return nil, fmt.Errorf("%w: Convert: unsupported target space %s", ErrSpaceMismatch, to)
	}
}

// SwapChannels swaps with the default converter.
func SwapChannels(src *img.Buffer) (*img.Buffer, error) {
	return defaultConverter.SwapChannels(src)
}

// Clamp clamps with the default converter.
func Clamp(src *img.Buffer) (*img.Buffer, error) {
	return defaultConverter.Clamp(src)
}

// Convert converts with the default converter.
func Convert(src *img.Buffer, to img.Space) (*img.Buffer, error) {
	return defaultConverter.Convert(src, to)
}
