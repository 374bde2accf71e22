// Package pipeline turns images and video clips into transparent-background
// media by driving external tools: ffmpeg for demuxing and muxing, ffprobe
// for frame-rate probing, and a background-removal capability for the actual
// segmentation. The pipeline owns sequencing and failure handling; it keeps
// no state beyond a per-job workspace supplied by the caller.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Remover is the external background-removal capability: raw image bytes in,
// raw image bytes (with alpha) out. Treated as synchronous and stateless.
type Remover interface {
	Remove(ctx context.Context, data []byte) ([]byte, error)
}

// Result is the output pair of a pipeline run. The caller owns moving the
// processed file out of the workspace before releasing it.
type Result struct {
	Source    string
	Processed string
}

// Pipeline drives one background-removal job at a time. A Pipeline is safe
// to reuse across jobs but each job needs its own workspace.
type Pipeline struct {
	Runner  Runner
	Remover Remover
	Log     Logger

	// Workers bounds the parallel frame transformations. Zero or negative
	// means one worker per CPU.
	Workers int

	// Progress, when set, receives (completed, total) after each frame.
	Progress func(completed, total int)
}

func New(runner Runner, remover Remover, log Logger) *Pipeline {
	return &Pipeline{Runner: runner, Remover: remover, Log: log}
}

func (p *Pipeline) log(msg string) {
	if p.Log != nil {
		p.Log(msg)
	}
}

func (p *Pipeline) progress(completed, total int) {
	if p.Progress != nil {
		p.Progress(completed, total)
	}
}

func (p *Pipeline) workerCount() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return runtime.NumCPU()
}

// RemoveBackground processes source inside workspace and returns the result
// descriptor. Still images transform directly to a PNG; everything else is
// demuxed, transformed frame by frame, and muxed back into a transparent
// WebM. Probing and extraction have no ordering dependency and run
// concurrently; transformation waits for both.
//
// Errors from any stage propagate unchanged — the caller can test them with
// errors.Is and should surface the message verbatim.
func (p *Pipeline) RemoveBackground(ctx context.Context, source, workspace string) (*Result, error) {
	source, err := filepath.Abs(source)
	if err != nil {
		return nil, fmt.Errorf("resolve source path: %w", err)
	}
	workspace, err = filepath.Abs(workspace)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace path: %w", err)
	}

	p.log("removing background from " + source)

	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))

	if Classify(source) == KindImage {
		processed := filepath.Join(workspace, stem+"_bg_removed.png")
		if err := p.TransformImage(ctx, source, processed); err != nil {
			return nil, err
		}
		p.log("background removed: " + processed)
		return &Result{Source: source, Processed: processed}, nil
	}

	framesDir := filepath.Join(workspace, "frames")

	var fps float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.ExtractFrames(gctx, source, framesDir)
	})
	g.Go(func() error {
		var err error
		fps, err = p.ProbeFrameRate(gctx, source)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	processedDir := filepath.Join(workspace, "frames_processed")
	if err := os.MkdirAll(processedDir, 0755); err != nil {
		return nil, fmt.Errorf("create processed frames dir: %w", err)
	}

	count, err := p.TransformFrames(ctx, framesDir, processedDir)
	if err != nil {
		return nil, err
	}
	p.log(fmt.Sprintf("transformed %d frames", count))

	processed := filepath.Join(workspace, stem+"_bg_removed.webm")
	if err := p.ComposeVideo(ctx, processedDir, fps, processed); err != nil {
		return nil, err
	}

	p.log("transparent video saved: " + processed)
	return &Result{Source: source, Processed: processed}, nil
}
