package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// TransformImage removes the background from a single image, writing the
// returned bytes verbatim to destination.
func (p *Pipeline) TransformImage(ctx context.Context, source, destination string) error {
	data, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("read image %s: %w", source, err)
	}

	processed, err := p.Remover.Remove(ctx, data)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrBackgroundRemoval, source, err)
	}

	if err := os.WriteFile(destination, processed, 0644); err != nil {
		return fmt.Errorf("write processed image %s: %w", destination, err)
	}

	return nil
}

// TransformFrames removes the background from every frame in framesDir,
// writing results under the original filenames into outDir. Frames fan out
// over a bounded worker group; the first failure cancels the remaining work
// and aborts the job. Returns the number of frames processed.
//
// Progress is reported through the log sink as a completed count, which
// stays monotonic regardless of worker interleaving.
func (p *Pipeline) TransformFrames(ctx context.Context, framesDir, outDir string) (int, error) {
	frames, err := listFrames(framesDir)
	if err != nil {
		return 0, err
	}
	if len(frames) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNoFramesProduced, framesDir)
	}

	total := len(frames)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workerCount())

	for i, name := range frames {
		i, name := i, name
		g.Go(func() error {
			// Skip work scheduled after an earlier frame already failed.
			if err := gctx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(filepath.Join(framesDir, name))
			if err != nil {
				return fmt.Errorf("read frame %s: %w", name, err)
			}

			processed, err := p.Remover.Remove(gctx, data)
			if err != nil {
				return fmt.Errorf("%w: frame %d (%s): %w", ErrBackgroundRemoval, i+1, name, err)
			}

			if err := os.WriteFile(filepath.Join(outDir, name), processed, 0644); err != nil {
				return fmt.Errorf("write frame %s: %w", name, err)
			}

			done := completed.Add(1)
			p.log(fmt.Sprintf("removed background from frame %d/%d", done, total))
			p.progress(int(done), total)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	return total, nil
}

// listFrames returns the frame files in dir sorted lexicographically, which
// for the fixed-width zero-padded names equals numeric order. Membership is
// discovered by listing rather than assuming a gapless sequence.
func listFrames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list frames dir %s: %w", dir, err)
	}

	var frames []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, framePrefix) || !strings.HasSuffix(name, ".png") {
			continue
		}
		frames = append(frames, name)
	}
	sort.Strings(frames)

	return frames, nil
}
