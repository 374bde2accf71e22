package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeFrames creates count fixed-width numbered frames in dir.
func writeFrames(t *testing.T, dir string, count int) {
	t.Helper()
	for i := 1; i <= count; i++ {
		name := fmt.Sprintf(framePattern, i)
		if err := os.WriteFile(filepath.Join(dir, name), []byte(fmt.Sprintf("frame-%d", i)), 0644); err != nil {
			t.Fatalf("Failed to create frame %s: %v", name, err)
		}
	}
}

func TestTransformImage(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "in.png")
	destination := filepath.Join(dir, "out.png")
	if err := os.WriteFile(source, []byte("original"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	p := New(&fakeRunner{}, invertRemover, nil)
	if err := p.TransformImage(context.Background(), source, destination); err != nil {
		t.Fatalf("TransformImage() error: %v", err)
	}

	got, err := os.ReadFile(destination)
	if err != nil {
		t.Fatalf("Destination not written: %v", err)
	}
	want, _ := invertRemover.Remove(context.Background(), []byte("original"))
	if !bytes.Equal(got, want) {
		t.Error("Destination should hold the remover output verbatim")
	}
}

func TestTransformImage_RemovalFailure(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "in.png")
	if err := os.WriteFile(source, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	failing := removerFunc(func(_ context.Context, _ []byte) ([]byte, error) {
		return nil, errors.New("no subject detected")
	})
	p := New(&fakeRunner{}, failing, nil)

	err := p.TransformImage(context.Background(), source, filepath.Join(dir, "out.png"))
	if !errors.Is(err, ErrBackgroundRemoval) {
		t.Errorf("Expected ErrBackgroundRemoval, got %v", err)
	}
	if !strings.Contains(err.Error(), source) {
		t.Errorf("Error should identify the failing source: %v", err)
	}
}

func TestTransformImage_MissingSource(t *testing.T) {
	p := New(&fakeRunner{}, invertRemover, nil)
	err := p.TransformImage(context.Background(), "/nonexistent/in.png", "/nonexistent/out.png")
	if err == nil {
		t.Error("TransformImage() expected error for missing source")
	}
}

func TestTransformFrames(t *testing.T) {
	framesDir := t.TempDir()
	outDir := t.TempDir()
	writeFrames(t, framesDir, 3)

	sink := &logSink{}
	p := New(&fakeRunner{}, invertRemover, sink.log)

	count, err := p.TransformFrames(context.Background(), framesDir, outDir)
	if err != nil {
		t.Fatalf("TransformFrames() error: %v", err)
	}
	if count != 3 {
		t.Errorf("TransformFrames() = %d, expected 3", count)
	}

	// Results keep their original filenames.
	for i := 1; i <= 3; i++ {
		name := fmt.Sprintf(framePattern, i)
		got, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Fatalf("Processed frame %s missing: %v", name, err)
		}
		want, _ := invertRemover.Remove(context.Background(), []byte(fmt.Sprintf("frame-%d", i)))
		if !bytes.Equal(got, want) {
			t.Errorf("Frame %s content mismatch", name)
		}
	}

	// Progress reaches the sink with a final n/n entry.
	if !sink.contains("3/3") {
		t.Error("Expected final progress line '3/3'")
	}
}

func TestTransformFrames_EmptyDirectory(t *testing.T) {
	p := New(&fakeRunner{}, invertRemover, nil)

	_, err := p.TransformFrames(context.Background(), t.TempDir(), t.TempDir())
	if !errors.Is(err, ErrNoFramesProduced) {
		t.Errorf("Expected ErrNoFramesProduced, got %v", err)
	}
}

func TestTransformFrames_IgnoresForeignFiles(t *testing.T) {
	framesDir := t.TempDir()
	outDir := t.TempDir()
	writeFrames(t, framesDir, 2)

	// Stray files that do not match the frame convention are skipped.
	_ = os.WriteFile(filepath.Join(framesDir, "notes.txt"), []byte("x"), 0644)
	_ = os.WriteFile(filepath.Join(framesDir, "frame_0000001.jpg"), []byte("x"), 0644)
	_ = os.Mkdir(filepath.Join(framesDir, "frame_subdir"), 0755)

	p := New(&fakeRunner{}, invertRemover, nil)
	count, err := p.TransformFrames(context.Background(), framesDir, outDir)
	if err != nil {
		t.Fatalf("TransformFrames() error: %v", err)
	}
	if count != 2 {
		t.Errorf("TransformFrames() = %d, expected 2", count)
	}
}

func TestTransformFrames_FirstErrorAborts(t *testing.T) {
	framesDir := t.TempDir()
	outDir := t.TempDir()
	writeFrames(t, framesDir, 5)

	failOn := []byte("frame-3")
	failing := removerFunc(func(_ context.Context, data []byte) ([]byte, error) {
		if bytes.Equal(data, failOn) {
			return nil, errors.New("segfault in model")
		}
		return data, nil
	})

	p := New(&fakeRunner{}, failing, nil)
	p.Workers = 1 // deterministic order so the failing frame index is stable

	_, err := p.TransformFrames(context.Background(), framesDir, outDir)
	if !errors.Is(err, ErrBackgroundRemoval) {
		t.Fatalf("Expected ErrBackgroundRemoval, got %v", err)
	}
	if !strings.Contains(err.Error(), "frame 3") {
		t.Errorf("Error should identify the failing frame index: %v", err)
	}

	// Frames past the failure were never written.
	for i := 4; i <= 5; i++ {
		name := fmt.Sprintf(framePattern, i)
		if _, statErr := os.Stat(filepath.Join(outDir, name)); statErr == nil {
			t.Errorf("Frame %s should not exist after abort", name)
		}
	}
}

func TestTransformFrames_ParallelWorkers(t *testing.T) {
	framesDir := t.TempDir()
	outDir := t.TempDir()
	writeFrames(t, framesDir, 10)

	sink := &logSink{}
	p := New(&fakeRunner{}, invertRemover, sink.log)
	p.Workers = 4

	count, err := p.TransformFrames(context.Background(), framesDir, outDir)
	if err != nil {
		t.Fatalf("TransformFrames() error: %v", err)
	}
	if count != 10 {
		t.Errorf("TransformFrames() = %d, expected 10", count)
	}

	entries, _ := os.ReadDir(outDir)
	if len(entries) != 10 {
		t.Errorf("Expected 10 processed frames, got %d", len(entries))
	}
}

func TestTransformFrames_ProgressCallback(t *testing.T) {
	framesDir := t.TempDir()
	outDir := t.TempDir()
	writeFrames(t, framesDir, 4)

	var last int
	p := New(&fakeRunner{}, invertRemover, nil)
	p.Workers = 1
	p.Progress = func(completed, total int) {
		if completed <= last {
			t.Errorf("Progress not monotonic: %d after %d", completed, last)
		}
		if total != 4 {
			t.Errorf("Progress total = %d, expected 4", total)
		}
		last = completed
	}

	if _, err := p.TransformFrames(context.Background(), framesDir, outDir); err != nil {
		t.Fatalf("TransformFrames() error: %v", err)
	}
	if last != 4 {
		t.Errorf("Final progress = %d, expected 4", last)
	}
}

func TestListFrames_SortedOrder(t *testing.T) {
	dir := t.TempDir()
	// Created out of order; listing must return numeric order via the
	// zero-padded names.
	for _, i := range []int{3, 1, 12, 2} {
		name := fmt.Sprintf(framePattern, i)
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to create frame: %v", err)
		}
	}

	frames, err := listFrames(dir)
	if err != nil {
		t.Fatalf("listFrames() error: %v", err)
	}

	expected := []string{"frame_0000001.png", "frame_0000002.png", "frame_0000003.png", "frame_0000012.png"}
	if len(frames) != len(expected) {
		t.Fatalf("listFrames() returned %d frames, expected %d", len(frames), len(expected))
	}
	for i, name := range expected {
		if frames[i] != name {
			t.Errorf("frames[%d] = %q, expected %q", i, frames[i], name)
		}
	}
}
