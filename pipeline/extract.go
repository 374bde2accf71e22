package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	framePrefix  = "frame_"
	framePattern = "frame_%07d.png"
)

// ExtractFrames demuxes the source video into numbered PNG frames inside
// framesDir, creating the directory first. Extraction has no partial-success
// path: any ffmpeg failure aborts the job.
func (p *Pipeline) ExtractFrames(ctx context.Context, source, framesDir string) error {
	if err := os.MkdirAll(framesDir, 0755); err != nil {
		return fmt.Errorf("create frames dir: %w", err)
	}

	pattern := filepath.Join(framesDir, framePattern)
	if err := p.Runner.Run(ctx, "ffmpeg", "-y", "-i", source, pattern); err != nil {
		if errors.Is(err, ErrToolNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	return nil
}
