// Package pipeline runs the two conversion chains over one decoded image:
// RGB -> HSV -> RGB, and RGB -> YUV -> brightness-adjusted YUV -> RGB.
// Each stage either produces a buffer or stops the run with an error that
// names the stage.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"colorconv/internal/convert"
	img "colorconv/internal/image"
)

// Stage names. Apart from StageInput they double as output file base names.
const (
	StageInput       = "input"
	StageHSV         = "hsv_image"
	StageRGBFromHSV  = "rgb_from_hsv"
	StageYUV         = "yuv_image"
	StageAdjustedYUV = "adjusted_yuv_image"
	StageRGBFromYUV  = "rgb_from_yuv"
)

// DefaultBrightness is the luma shift applied when none is configured.
const DefaultBrightness = 0.2

// Options configures a run.
type Options struct {
	Brightness float64            // Luma shift factor in [-1, 1]
	Converter  *convert.Converter // nil selects convert.Default()
}

// Stage is one intermediate or final buffer of a run.
type Stage struct {
	Name   string
	Buffer *img.Buffer
	Stats  Stats
}

// Result holds every stage in execution order.
type Result struct {
	Stages []Stage
}

// Stage returns the named stage.
func (r *Result) Stage(name string) (Stage, bool) {
	for _, s := range r.Stages {
		if s.Name == name {
			return s, true
		}
	}
	return Stage{}, false
}

// Saver persists one buffer. image.Save and cvio.Write both fit once
// adapted to this signature.
type Saver func(path string, buf *img.Buffer) error

// Run executes both chains. BGR input is reordered to RGB first; any other
// non-RGB input is rejected by the first conversion.
func Run(src *img.Buffer, opts Options) (*Result, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil input buffer", convert.ErrInvalidArgument)
	}
	c := opts.Converter
	if c == nil {
		c = convert.Default()
	}

	r := &Result{Stages: make([]Stage, 0, 6)}
	add := func(name string, b *img.Buffer) {
		st := Stage{Name: name, Buffer: b, Stats: ComputeStats(b)}
		r.Stages = append(r.Stages, st)
		convert.Logger().Info("pipeline: stage done",
			"stage", name, "space", b.Space.String(),
			"width", b.Width, "height", b.Height)
		convert.Logger().Debug("pipeline: stage stats", "stage", name, "stats", st.Stats.Format(b.Space))
	}

	// The input stage never aliases src.
	rgb := src.Clone()
	if src.Space == img.SpaceBGR {
		var err error
		if rgb, err = c.SwapChannels(src); err != nil {
			return nil, fmt.Errorf("stage %s: %w", StageInput, err)
		}
	}
	add(StageInput, rgb)

	steps := []struct {
		name string
		run  func() (*img.Buffer, error)
	}{
		{StageHSV, func() (*img.Buffer, error) { return c.RGBToHSV(rgb) }},
		{StageRGBFromHSV, func() (*img.Buffer, error) { return c.HSVToRGB(r.last()) }},
		{StageYUV, func() (*img.Buffer, error) { return c.RGBToYUV(rgb) }},
		{StageAdjustedYUV, func() (*img.Buffer, error) { return c.AdjustBrightness(r.last(), opts.Brightness) }},
		{StageRGBFromYUV, func() (*img.Buffer, error) { return c.YUVToRGB(r.last()) }},
	}
	for _, step := range steps {
		out, err := step.run()
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", step.name, err)
		}
		add(step.name, out)
	}

	return r, nil
}

func (r *Result) last() *img.Buffer {
	return r.Stages[len(r.Stages)-1].Buffer
}

// Save writes every stage except the input to dir as <stage><ext>, creating
// dir if needed. It keeps going after a failed write and returns the paths
// written together with the joined errors.
func (r *Result) Save(dir, ext string, save Saver) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var (
		written []string
		errs    []error
	)
	for _, s := range r.Stages {
		if s.Name == StageInput {
			continue
		}
		path := filepath.Join(dir, s.Name+ext)
		if err := save(path, s.Buffer); err != nil {
			errs = append(errs, fmt.Errorf("save %s: %w", s.Name, err))
			continue
		}
		written = append(written, path)
	}
	return written, errors.Join(errs...)
}

// Montage tiles all stages, input first, into one comparison image.
func (r *Result) Montage(tileHeight int) *img.Montage {
	m := img.NewMontage(tileHeight)
	for _, s := range r.Stages {
		m.Add(s.Buffer)
	}
	return m
}
