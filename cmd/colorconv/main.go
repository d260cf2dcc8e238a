// Command colorconv converts an image through HSV and YUV and writes every
// intermediate stage next to each other.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"colorconv/internal/config"
	"colorconv/internal/convert"
	"colorconv/internal/cvio"
	img "colorconv/internal/image"
	"colorconv/internal/pipeline"
	"colorconv/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("colorconv", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "JSON config file (default "+config.DefaultPath()+" if present)")
	input := fs.String("input", "", "Path to input image")
	output := fs.String("output", "", "Output directory")
	brightness := fs.Float64("brightness", pipeline.DefaultBrightness, "Luma shift factor in [-1, 1]")
	format := fs.String("format", "", "Output format: jpg, png, bmp or tiff")
	quality := fs.Int("quality", 0, "JPEG quality 1-100")
	workers := fs.Int("workers", 0, "Conversion goroutines (0 = GOMAXPROCS)")
	backend := fs.String("backend", "", "Codec backend: go or opencv")
	montage := fs.Bool("montage", false, "Also write montage.png with every stage side by side")
	reference := fs.Bool("reference", false, "Compare the HSV stage against OpenCV's conversion")
	verbose := fs.Bool("v", false, "Debug logging")
	showVersion := fs.Bool("version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, version.String())
		return 0
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	convert.SetLogger(logger)

	path, optional := *configPath, false
	if path == "" {
		path, optional = config.DefaultPath(), true
	}
	cfg, err := config.Load(path, optional)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}

	// Flags override the file only when given explicitly.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "output":
			cfg.OutputDir = *output
		case "brightness":
			cfg.Brightness = *brightness
		case "format":
			cfg.Format = *format
		case "quality":
			cfg.JPEGQuality = *quality
		case "workers":
			cfg.Workers = *workers
		case "backend":
			cfg.Backend = *backend
		case "montage":
			cfg.Montage = *montage
		}
	})
	if fs.NArg() > 0 && *input == "" {
		cfg.Input = fs.Arg(0)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	load, save := codecs(cfg)

	src, err := load(cfg.Input)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading image: %v\n", err)
		return 1
	}
	logger.Info("loaded image", "path", cfg.Input, "width", src.Width, "height", src.Height,
		"space", src.Space.String(), "backend", cfg.Backend)

	conv := convert.New(convert.WithWorkers(cfg.Workers))
	res, err := pipeline.Run(src, pipeline.Options{Brightness: cfg.Brightness, Converter: conv})
	if err != nil {
		fmt.Fprintf(stderr, "Error processing image: %v\n", err)
		return 1
	}

	written, err := res.Save(cfg.OutputDir, cfg.OutputFormat().Ext(), save)
	for _, p := range written {
		fmt.Fprintf(stdout, "Wrote %s\n", p)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error writing results: %v\n", err)
		return 1
	}

	if cfg.Montage {
		p := filepath.Join(cfg.OutputDir, "montage.png")
		if err := writeMontage(p, res); err != nil {
			fmt.Fprintf(stderr, "Error writing montage: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Wrote %s\n", p)
	}

	fmt.Fprintf(stdout, "\n%-20s %s\n", "Stage", "Channel statistics")
	for _, s := range res.Stages {
		fmt.Fprintf(stdout, "%-20s %s\n", s.Name, s.Stats.Format(s.Buffer.Space))
	}

	if *reference {
		if err := compareReference(stdout, res); err != nil {
			fmt.Fprintf(stderr, "Error comparing with OpenCV: %v\n", err)
			return 1
		}
	}

	return 0
}

// codecs picks the load and save functions for the configured backend.
func codecs(cfg config.Config) (func(string) (*img.Buffer, error), pipeline.Saver) {
	if cfg.Backend == config.BackendOpenCV {
		return cvio.Read, cvio.Write
	}
	opts := img.EncodeOptions{JPEGQuality: cfg.JPEGQuality}
	return img.Load, func(path string, buf *img.Buffer) error {
		return img.Save(path, buf, opts)
	}
}

func writeMontage(path string, res *pipeline.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, res.Montage(0).Render()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// compareReference prints the largest per-channel difference between our
// HSV stage and OpenCV's 8-bit conversion of the same input.
func compareReference(w io.Writer, res *pipeline.Result) error {
	in, _ := res.Stage(pipeline.StageInput)
	ours, _ := res.Stage(pipeline.StageHSV)

	ref, err := cvio.ReferenceHSV(in.Buffer)
	if err != nil {
		return err
	}

	var maxDiff [img.Channels]float64
	for i, v := range ours.Buffer.Pix {
		c := i % img.Channels
		d := math.Abs(v - ref.Pix[i])
		if c == 0 {
			d = math.Min(d, 180-d) // hue wraps
		}
		maxDiff[c] = math.Max(maxDiff[c], d)
	}
	fmt.Fprintf(w, "\nOpenCV HSV max difference: H=%.2f S=%.2f V=%.2f\n", maxDiff[0], maxDiff[1], maxDiff[2])
	return nil
}
