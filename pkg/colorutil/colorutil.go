// Package colorutil provides per-pixel color conversion primitives shared by
// the buffer-level converter.
//
// All functions work on 8-bit scale float64 components. HSV follows the
// OpenCV 8-bit convention: H in [0,180), S and V in [0,255]. YUV carries a
// +128 bias on U and V.
package colorutil

import "math"

// Chroma bias applied to U and V so the signed range fits 0-255.
const ChromaOffset = 128.0

// YUV forward coefficients (BT.601 analog form), rows are Y, U, V.
var YUVForward = [3][3]float64{
	{0.299, 0.587, 0.114},
	{-0.14713, -0.28886, 0.436},
	{0.615, -0.51499, -0.10001},
}

// YUVInverse holds the commonly published rounded inverse of YUVForward.
// The converter derives an exact inverse; these are kept as the reference
// values it must agree with.
var YUVInverse = [3][3]float64{
	{1, 0, 1.13983},
	{1, -0.39465, -0.58060},
	{1, 2.03211, 0},
}

// RGBToHSV converts RGB (0-255) to HSV (OpenCV convention: H 0-180, S 0-255, V 0-255).
// When two channels tie for the maximum, red wins over green and green over blue.
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	r /= 255.0
	g /= 255.0
	b /= 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	switch {
	case diff == 0:
		h = 0
	case maxC == r:
		h = math.Mod(60*((g-b)/diff)+360, 360)
	case maxC == g:
		h = math.Mod(60*((b-r)/diff)+120, 360)
	default:
		h = math.Mod(60*((r-g)/diff)+240, 360)
	}

	if maxC == 0 {
		s = 0
	} else {
		s = diff / maxC
	}

	return h / 2, s * 255.0, maxC * 255.0
}

// HSVToRGB converts HSV in the RGBToHSV storage convention back to RGB (0-255).
func HSVToRGB(h, s, v float64) (r, g, b float64) {
	h *= 2
	s /= 255.0
	v /= 255.0

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	switch {
	case 0 <= h && h < 60:
		r, g, b = c, x, 0
	case 60 <= h && h < 120:
		r, g, b = x, c, 0
	case 120 <= h && h < 180:
		r, g, b = 0, c, x
	case 180 <= h && h < 240:
		r, g, b = 0, x, c
	case 240 <= h && h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return (r + m) * 255.0, (g + m) * 255.0, (b + m) * 255.0
}

// RGBToYUV applies the forward matrix and chroma bias. Results are not clamped.
func RGBToYUV(r, g, b float64) (y, u, v float64) {
	f := &YUVForward
	y = f[0][0]*r + f[0][1]*g + f[0][2]*b
	u = f[1][0]*r + f[1][1]*g + f[1][2]*b + ChromaOffset
	v = f[2][0]*r + f[2][1]*g + f[2][2]*b + ChromaOffset
	return y, u, v
}

// YUVToRGB applies the published rounded inverse. Results are not clamped.
func YUVToRGB(y, u, v float64) (r, g, b float64) {
	u -= ChromaOffset
	v -= ChromaOffset
	inv := &YUVInverse
	r = inv[0][0]*y + inv[0][1]*u + inv[0][2]*v
	g = inv[1][0]*y + inv[1][1]*u + inv[1][2]*v
	b = inv[2][0]*y + inv[2][1]*u + inv[2][2]*v
	return r, g, b
}

// Clamp255 restricts a value to [0, 255].
func Clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// To8 clamps and rounds a sample to a byte.
func To8(x float64) uint8 {
	return uint8(math.Round(Clamp255(x)))
}
