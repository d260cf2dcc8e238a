package convert

import (
	"fmt"

	img "colorconv/internal/image"
	"colorconv/pkg/colorutil"

	"gonum.org/v1/gonum/mat"
)

// affine is out = M*in + bias, applied to every pixel. mT stores M
// transposed so a block of pixels (one per row) is multiplied in one call.
type affine struct {
	mT   *mat.Dense
	bias [3]float64
}

var (
	rgbToYUV = newForwardYUV()
	yuvToRGB = mustInvert(rgbToYUV)
)

func newForwardYUV() affine {
	f := colorutil.YUVForward
	m := mat.NewDense(3, 3, []float64{
		f[0][0], f[0][1], f[0][2],
		f[1][0], f[1][1], f[1][2],
		f[2][0], f[2][1], f[2][2],
	})
	return affine{
		mT:   mat.DenseCopyOf(m.T()),
		bias: [3]float64{0, colorutil.ChromaOffset, colorutil.ChromaOffset},
	}
}

// invert derives in = M^-1*out - M^-1*bias.
func invert(a affine) (affine, error) {
	var inv mat.Dense
	if err := inv.Inverse(a.mT.T()); err != nil {
		return affine{}, fmt.Errorf("invert color matrix: %w", err)
	}

	var b mat.VecDense
	b.MulVec(&inv, mat.NewVecDense(3, a.bias[:]))

	return affine{
		mT:   mat.DenseCopyOf(inv.T()),
		bias: [3]float64{-b.AtVec(0), -b.AtVec(1), -b.AtVec(2)},
	}, nil
}

func mustInvert(a affine) affine {
	inv, err := invert(a)
	if err != nil {
		panic(err)
	}
	return inv
}

// matrix returns M in row-major order.
func (a affine) matrix() [3][3]float64 {
	var m [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = a.mT.At(j, i)
		}
	}
	return m
}

// apply transforms pixel rows of src into dst. Both slices hold whole pixels
// and have equal length.
func (a affine) apply(dst, src []float64) {
	n := len(src) / img.Channels
	if n == 0 {
		return
	}
	in := mat.NewDense(n, img.Channels, src)
	out := mat.NewDense(n, img.Channels, dst)
	out.Mul(in, a.mT)
	for i := 0; i < len(dst); i += img.Channels {
		dst[i] += a.bias[0]
		dst[i+1] += a.bias[1]
		dst[i+2] += a.bias[2]
	}
}

func (c *Converter) affineMap(op string, src *img.Buffer, dst img.Space, a affine) *img.Buffer {
	out := src.Like(dst)
	stride := src.Stride()
	c.forRows(op, src.Height, func(start, end int) {
		a.apply(out.Pix[start*stride:end*stride], src.Pix[start*stride:end*stride])
	})
	return out
}

// RGBToYUV converts an RGB buffer to YUV with U and V biased by 128.
// Values are not clamped; saturated reds push V above 255.
func (c *Converter) RGBToYUV(src *img.Buffer) (*img.Buffer, error) {
	if err := checkSpace("RGBToYUV", src, img.SpaceRGB); err != nil {
		return nil, err
	}
	return c.affineMap("RGBToYUV", src, img.SpaceYUV, rgbToYUV), nil
}

// YUVToRGB applies the exact inverse of RGBToYUV. Values are not clamped.
func (c *Converter) YUVToRGB(src *img.Buffer) (*img.Buffer, error) {
	if err := checkSpace("YUVToRGB", src, img.SpaceYUV); err != nil {
		return nil, err
	}
	return c.affineMap("YUVToRGB", src, img.SpaceRGB, yuvToRGB), nil
}

// RGBToYUV converts with the default converter.
func RGBToYUV(src *img.Buffer) (*img.Buffer, error) {
	return defaultConverter.RGBToYUV(src)
}

// YUVToRGB converts with the default converter.
func YUVToRGB(src *img.Buffer) (*img.Buffer, error) {
	return defaultConverter.YUVToRGB(src)
}
