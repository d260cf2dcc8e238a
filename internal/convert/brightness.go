package convert

import (
	"fmt"

	img "colorconv/internal/image"
	"colorconv/pkg/colorutil"
)

// AdjustBrightness shifts the luma of a YUV buffer by factor*255, clamping Y
// to [0,255]. U and V are copied unchanged. factor must lie in [-1, 1]
// (inclusive); anything else, NaN included, returns ErrInvalidArgument and
// leaves src untouched.
func (c *Converter) AdjustBrightness(src *img.Buffer, factor float64) (*img.Buffer, error) {
	if !(factor >= -1 && factor <= 1) {
		return nil, fmt.Errorf("%w: brightness factor %v outside [-1, 1]", ErrInvalidArgument, factor)
	}
	if err := checkSpace("AdjustBrightness", src, img.SpaceYUV); err != nil {
		return nil, err
	}

	shift := factor * 255
	return c.mapPixels("AdjustBrightness", src, img.SpaceYUV, func(y, u, v float64) (float64, float64, float64) {
		return colorutil.Clamp255(y + shift), u, v
	}), nil
}

// AdjustBrightness adjusts with the default converter.
func AdjustBrightness(src *img.Buffer, factor float64) (*img.Buffer, error) {
	return defaultConverter.AdjustBrightness(src, factor)
}
