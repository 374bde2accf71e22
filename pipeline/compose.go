package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

// ComposeVideo muxes the numbered frames in framesDir into an alpha-capable
// WebM at destination. VP9 with yuva420p keeps the transparency the removal
// step produced.
func (p *Pipeline) ComposeVideo(ctx context.Context, framesDir string, fps float64, destination string) error {
	matches, err := filepath.Glob(filepath.Join(framesDir, framePrefix+"*.png"))
	if err != nil {
		return fmt.Errorf("glob frames in %s: %w", framesDir, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("%w: %s", ErrNoFramesToCompose, framesDir)
	}

	pattern := filepath.Join(framesDir, framePattern)
	err = p.Runner.Run(ctx, "ffmpeg",
		"-y",
		"-framerate", fmt.Sprintf("%.3f", fps),
		"-i", pattern,
		"-c:v", "libvpx-vp9",
		"-pix_fmt", "yuva420p",
		destination)
	if err != nil {
		if errors.Is(err, ErrToolNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrCompositionFailed, err)
	}

	return nil
}
