package convert

import (
	img "colorconv/internal/image"
	"colorconv/pkg/colorutil"
)

// RGBToHSV converts an RGB buffer to HSV using the half-scale hue encoding
// (H in [0,180), S and V in [0,255]).
func (c *Converter) RGBToHSV(src *img.Buffer) (*img.Buffer, error) {
	if err := checkSpace("RGBToHSV", src, img.SpaceRGB); err != nil {
		return nil, err
	}
	return c.mapPixels("RGBToHSV", src, img.SpaceHSV, colorutil.RGBToHSV), nil
}

// HSVToRGB converts an HSV buffer back to RGB on the 0-255 scale.
// The round trip through RGBToHSV is close but not bit-exact.
func (c *Converter) HSVToRGB(src *img.Buffer) (*img.Buffer, error) {
	if err := checkSpace("HSVToRGB", src, img.SpaceHSV); err != nil {
		return nil, err
	}
	return c.mapPixels("HSVToRGB", src, img.SpaceRGB, colorutil.HSVToRGB), nil
}

// RGBToHSV converts with the default converter.
func RGBToHSV(src *img.Buffer) (*img.Buffer, error) {
	return defaultConverter.RGBToHSV(src)
}

// HSVToRGB converts with the default converter.
func HSVToRGB(src *img.Buffer) (*img.Buffer, error) {
	return defaultConverter.HSVToRGB(src)
}
