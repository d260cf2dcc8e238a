package convert

import (
	"errors"
	"fmt"

	img "colorconv/internal/image"
)

var (
	// ErrInvalidArgument reports an argument outside an operation's domain,
	// such as a brightness factor outside [-1, 1] or a nil buffer. It is the
	// same sentinel the codecs in package image return.
	ErrInvalidArgument = img.ErrInvalidArgument

	// ErrSpaceMismatch reports a buffer tagged with a color space the
	// operation does not accept.
	ErrSpaceMismatch = errors.New("convert: color space mismatch")
)

func checkSpace(op string, b *img.Buffer, want ...img.Space) error {
	if b == nil {
		return fmt.Errorf("%w: %s: nil buffer", ErrInvalidArgument, op)
	}
	for _, s := range want {
		if b.Space == s {
			return nil
		}
	}
	return fmt.Errorf("%w: %s expects %v, got %s", ErrSpaceMismatch, op, want, b.Space)
}
