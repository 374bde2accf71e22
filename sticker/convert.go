// Package sticker drives the external tgradish encoder, which turns
// transparent video into a Telegram-compatible webm sticker. The encoder is
// a collaborator, not part of the pipeline: this package only builds its
// argument list and runs it.
package sticker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"stickercut/pipeline"
)

// Options are the tgradish conversion settings. Zero values mean "let the
// tool decide" for the optional numeric knobs.
type Options struct {
	Scaling        string // preserve-ratio, stretch, ...
	Loop           bool
	BestQuality    bool
	Multithreading bool
	Lossless       bool
	GuessValue     string // bitrate or crf
	Iterations     int
	GuessMin       float64
	GuessMax       float64
	Length         float64
	Framerate      float64
	Bitrate        int
	CRF            int
}

// DefaultOptions mirrors the encoder's own defaults.
func DefaultOptions() Options {
	return Options{
		Scaling:    "preserve-ratio",
		GuessValue: "bitrate",
	}
}

// Args builds the tgradish argument list for converting source into
// destination.
func (o Options) Args(source, destination string) []string {
	args := []string{
		"--input", source,
		"--output", destination,
		"--scaling", o.Scaling,
		"--guess-value", o.GuessValue,
	}

	if o.Loop {
		args = append(args, "--loop")
	}
	if o.BestQuality {
		args = append(args, "--best_quality")
	}
	if o.Multithreading {
		args = append(args, "--multithreading")
	}
	if o.Lossless {
		args = append(args, "--lossless")
	}

	if o.Iterations > 0 {
		args = append(args, "--iterations", strconv.Itoa(o.Iterations))
	}
	if o.GuessMin > 0 {
		args = append(args, "-min", formatFloat(o.GuessMin))
	}
	if o.GuessMax > 0 {
		args = append(args, "-max", formatFloat(o.GuessMax))
	}
	if o.Length > 0 {
		args = append(args, "--length", formatFloat(o.Length))
	}
	if o.Framerate > 0 {
		args = append(args, "--framerate", formatFloat(o.Framerate))
	}
	if o.Bitrate > 0 {
		args = append(args, "--bitrate", strconv.Itoa(o.Bitrate))
	}
	if o.CRF > 0 {
		args = append(args, "-crf", strconv.Itoa(o.CRF))
	}

	return args
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Convert encodes source into a webm sticker at destination using tgradish,
// creating destination's parent directory first.
func Convert(ctx context.Context, runner pipeline.Runner, source, destination string, opts Options, log pipeline.Logger) error {
	source, err := filepath.Abs(source)
	if err != nil {
		return fmt.Errorf("resolve source path: %w", err)
	}
	destination, err = filepath.Abs(destination)
	if err != nil {
		return fmt.Errorf("resolve destination path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(destination), 0755); err != nil {
		return fmt.Errorf("create destination dir: %w", err)
	}

	if err := runner.Run(ctx, "tgradish", opts.Args(source, destination)...); err != nil {
		return fmt.Errorf("sticker conversion failed: %w", err)
	}

	if log != nil {
		log("sticker saved: " + destination)
	}
	return nil
}
