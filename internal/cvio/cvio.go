// Package cvio reads and writes buffers through OpenCV's codecs.
//
// OpenCV stores color images in BGR order, so Read returns BGR-tagged
// buffers and Write swaps RGB buffers back to BGR before encoding.
package cvio

import (
	"fmt"

	"colorconv/internal/convert"
	img "colorconv/internal/image"
	"colorconv/pkg/colorutil"

	"gocv.io/x/gocv"
)

// Read decodes the file at path with gocv.IMRead.
func Read(path string) (*img.Buffer, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("failed to read image %s: file missing or unsupported", path)
	}
	return FromMat(mat)
}

// Write encodes buf to path with gocv.IMWrite; the extension picks the codec.
// Samples are clamped and rounded to 8 bits. HSV and YUV buffers are written
// as raw channels, channel 0 first, which OpenCV stores as B.
func Write(path string, buf *img.Buffer) error {
	if buf == nil {
		return fmt.Errorf("%w: write %s: nil buffer", convert.ErrInvalidArgument, path)
	}
	if buf.Space == img.SpaceRGB {
		bgr, err := convert.SwapChannels(buf)
		if err != nil {
			return err
		}
		buf = bgr
	}

	mat, err := ToMat(buf)
	if err != nil {
		return err
	}
	defer mat.Close()

	if !gocv.IMWrite(path, mat) {
		return fmt.Errorf("failed to write image %s", path)
	}
	convert.Logger().Debug("cvio: wrote image", "path", path, "space", buf.Space.String())
	return nil
}

// FromMat copies an 8-bit 3-channel Mat into a BGR buffer.
func FromMat(mat gocv.Mat) (*img.Buffer, error) {
	if mat.Type() != gocv.MatTypeCV8UC3 {
		return nil, fmt.Errorf("unsupported mat type %v: want 8UC3", mat.Type())
	}
	data := mat.ToBytes()
	buf := img.NewBuffer(mat.Cols(), mat.Rows(), img.SpaceBGR)
	if len(data) != len(buf.Pix) {
		return nil, fmt.Errorf("mat holds %d bytes, want %d", len(data), len(buf.Pix))
	}
	for i, v := range data {
		buf.Pix[i] = float64(v)
	}
	return buf, nil
}

// ToMat packs a buffer into a new 8UC3 Mat, channels in buffer order.
// The caller owns the Mat and must Close it.
func ToMat(buf *img.Buffer) (gocv.Mat, error) {
	if buf == nil {
		return gocv.Mat{}, fmt.Errorf("%w: ToMat: nil buffer", convert.ErrInvalidArgument)
	}
	data := make([]byte, len(buf.Pix))
	for i, v := range buf.Pix {
		data[i] = colorutil.To8(v)
	}
	mat, err := gocv.NewMatFromBytes(buf.Height, buf.Width, gocv.MatTypeCV8UC3, data)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to create mat: %w", err)
	}
	return mat, nil
}

// ReferenceHSV converts an RGB buffer with OpenCV's own 8-bit HSV
// conversion. It serves as a cross-check for convert.RGBToHSV: OpenCV
// rounds to whole bytes, so agreement is within about one unit per channel.
func ReferenceHSV(buf *img.Buffer) (*img.Buffer, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: ReferenceHSV: nil buffer", convert.ErrInvalidArgument)
	}
	if buf.Space != img.SpaceRGB {
		return nil, fmt.Errorf("%w: ReferenceHSV expects RGB, got %s", convert.ErrSpaceMismatch, buf.Space)
	}

	src, err := ToMat(buf)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(src, &hsv, gocv.ColorRGBToHSV)

	out, err := FromMat(hsv)
	if err != nil {
		return nil, err
	}
	out.Space = img.SpaceHSV
	return out, nil
}
