package pipeline

import (
	"fmt"
	"strings"

	img "colorconv/internal/image"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ChannelStats summarizes one channel of a buffer.
type ChannelStats struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Stats holds per-channel summaries in buffer channel order.
type Stats [img.Channels]ChannelStats

// ComputeStats summarizes every channel of b. Empty buffers yield zero stats.
func ComputeStats(b *img.Buffer) Stats {
	var s Stats
	n := b.Len()
	if n == 0 {
		return s
	}

	ch := make([]float64, n)
	for c := 0; c < img.Channels; c++ {
		for p := 0; p < n; p++ {
			ch[p] = b.Pix[p*img.Channels+c]
		}
		mean, std := stat.MeanStdDev(ch, nil)
		if n == 1 {
			std = 0
		}
		s[c] = ChannelStats{
			Mean:   mean,
			StdDev: std,
			Min:    floats.Min(ch),
			Max:    floats.Max(ch),
		}
	}
	return s
}

// Format renders the stats with channel labels for the given space.
func (s Stats) Format(space img.Space) string {
	labels := channelLabels(space)
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = fmt.Sprintf("%s mean=%.1f sd=%.1f range=[%.1f,%.1f]",
			labels[i], c.Mean, c.StdDev, c.Min, c.Max)
	}
	return strings.Join(parts, "  ")
}

func channelLabels(space img.Space) [img.Channels]string {
	switch space {
	case img.SpaceRGB:
		return [img.Channels]string{"R", "G", "B"}
	case img.SpaceBGR:
		return [img.Channels]string{"B", "G", "R"}
	case img.SpaceHSV:
		return [img.Channels]string{"H", "S", "V"}
	case img.SpaceYUV:
		return [img.Channels]string{"Y", "U", "V"}
	default:
		return [img.Channels]string{"c0", "c1", "c2"}
	}
}
