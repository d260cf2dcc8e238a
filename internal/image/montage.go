package image

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Montage lays stage buffers out left to right in a single image.
type Montage struct {
	TileHeight int // Tiles are scaled to this height; 0 keeps the tallest source height
	Gap        int // Pixels between tiles
	BackColor  color.Color
	Tiles      []*Buffer
}

// NewMontage creates a Montage with a dark background and a small gap.
func NewMontage(tileHeight int) *Montage {
	return &Montage{
		TileHeight: tileHeight,
		Gap:        4,
		BackColor:  color.RGBA{40, 40, 40, 255}, // Dark gray background
	}
}

// Add appends a tile. Nil and empty buffers are skipped.
func (m *Montage) Add(bufs ...*Buffer) {
	for _, b := range bufs {
		if b == nil || b.Len() == 0 {
			continue
		}
		m.Tiles = append(m.Tiles, b)
	}
}

// Render produces the montage image.
func (m *Montage) Render() *image.RGBA {
	height := m.TileHeight
	if height <= 0 {
		for _, t := range m.Tiles {
			height = max(height, t.Height)
		}
	}

	widths := make([]int, len(m.Tiles))
	total := 0
	for i, t := range m.Tiles {
		widths[i] = scaledWidth(t, height)
		total += widths[i]
	}
	if len(m.Tiles) > 1 {
		total += m.Gap * (len(m.Tiles) - 1)
	}

	result := image.NewRGBA(image.Rect(0, 0, total, height))
	draw.Draw(result, result.Bounds(), &image.Uniform{m.BackColor}, image.Point{}, draw.Src)

	x := 0
	for i, t := range m.Tiles {
		dst := image.Rect(x, 0, x+widths[i], height)
		src := t.Image()
		if dst.Dx() == t.Width && dst.Dy() == t.Height {
			draw.Draw(result, dst, src, image.Point{}, draw.Src)
		} else {
			xdraw.BiLinear.Scale(result, dst, src, src.Bounds(), draw.Src, nil)
		}
		x += widths[i] + m.Gap
	}

	return result
}

// scaledWidth keeps the tile aspect ratio at the target height.
func scaledWidth(b *Buffer, height int) int {
	if b.Height == height {
		return b.Width
	}
	w := (b.Width*height + b.Height/2) / b.Height
	return max(w, 1)
}
