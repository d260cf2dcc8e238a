package pipeline

import (
	"math"
	"strings"
	"testing"

	img "colorconv/internal/image"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	b := img.NewBuffer(2, 2, img.SpaceYUV)
	b.Set(0, 0, 0, 128, 10)
	b.Set(1, 0, 100, 128, 20)
	b.Set(0, 1, 200, 128, 30)
	b.Set(1, 1, 100, 128, 40)

	s := ComputeStats(b)
	assert.InDelta(t, 100, s[0].Mean, 1e-9)
	assert.InDelta(t, math.Sqrt(20000.0/3), s[0].StdDev, 1e-9)
	assert.Equal(t, 0.0, s[0].Min)
	assert.Equal(t, 200.0, s[0].Max)

	assert.InDelta(t, 128, s[1].Mean, 1e-9)
	assert.Equal(t, 0.0, s[1].StdDev)

	assert.Equal(t, 10.0, s[2].Min)
	assert.Equal(t, 40.0, s[2].Max)

	out := s.Format(img.SpaceYUV)
	assert.True(t, strings.HasPrefix(out, "Y mean=100.0"), out)
	assert.Contains(t, out, "U mean=128.0 sd=0.0")
}

func TestComputeStatsEdgeCases(t *testing.T) {
	assert.Equal(t, Stats{}, ComputeStats(img.NewBuffer(0, 0, img.SpaceRGB)))

	one := img.NewBuffer(1, 1, img.SpaceRGB)
	one.Set(0, 0, 1, 2, 3)
	s := ComputeStats(one)
	assert.Equal(t, 2.0, s[1].Mean)
	assert.Equal(t, 0.0, s[1].StdDev)
}

func TestChannelLabels(t *testing.T) {
	assert.Equal(t, [3]string{"H", "S", "V"}, channelLabels(img.SpaceHSV))
	assert.Equal(t, [3]string{"B", "G", "R"}, channelLabels(img.SpaceBGR))
	assert.Equal(t, [3]string{"c0", "c1", "c2"}, channelLabels(img.SpaceUnknown))
}
