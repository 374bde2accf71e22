package sticker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestOptions_Args_Defaults(t *testing.T) {
	args := DefaultOptions().Args("in.webm", "out.webm")

	expected := []string{
		"--input", "in.webm",
		"--output", "out.webm",
		"--scaling", "preserve-ratio",
		"--guess-value", "bitrate",
	}
	if !reflect.DeepEqual(args, expected) {
		t.Errorf("Args() = %v, expected %v", args, expected)
	}
}

func TestOptions_Args_AllOptions(t *testing.T) {
	opts := Options{
		Scaling:        "stretch",
		Loop:           true,
		BestQuality:    true,
		Multithreading: true,
		Lossless:       true,
		GuessValue:     "crf",
		Iterations:     5,
		GuessMin:       0.5,
		GuessMax:       2,
		Length:         2.5,
		Framerate:      30,
		Bitrate:        256,
		CRF:            23,
	}

	args := opts.Args("a.webm", "b.webm")

	pairs := map[string]string{
		"--scaling":     "stretch",
		"--guess-value": "crf",
		"--iterations":  "5",
		"-min":          "0.5",
		"-max":          "2",
		"--length":      "2.5",
		"--framerate":   "30",
		"--bitrate":     "256",
		"-crf":          "23",
	}
	for flag, value := range pairs {
		if !hasPair(args, flag, value) {
			t.Errorf("Args() missing %s %s: %v", flag, value, args)
		}
	}
	for _, flag := range []string{"--loop", "--best_quality", "--multithreading", "--lossless"} {
		if !hasFlag(args, flag) {
			t.Errorf("Args() missing %s: %v", flag, args)
		}
	}
}

func TestOptions_Args_SkipsUnsetValues(t *testing.T) {
	args := DefaultOptions().Args("a.webm", "b.webm")

	for _, flag := range []string{"--iterations", "-min", "-max", "--length", "--framerate", "--bitrate", "-crf", "--loop"} {
		if hasFlag(args, flag) {
			t.Errorf("Args() should not include unset %s: %v", flag, args)
		}
	}
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func hasPair(args []string, flag, value string) bool {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}

// recordingRunner captures the single tool invocation Convert makes.
type recordingRunner struct {
	name string
	args []string
	err  error
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) error {
	r.name = name
	r.args = args
	return r.err
}

func (r *recordingRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	r.name = name
	r.args = args
	return nil, r.err
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "clip_bg_removed.webm")
	if err := os.WriteFile(source, []byte("webm"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	destination := filepath.Join(dir, "stickers", "clip.webm")

	runner := &recordingRunner{}
	var logged []string
	err := Convert(context.Background(), runner, source, destination, DefaultOptions(), func(line string) {
		logged = append(logged, line)
	})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	if runner.name != "tgradish" {
		t.Errorf("Tool = %q, expected tgradish", runner.name)
	}
	if !hasPair(runner.args, "--input", source) {
		t.Errorf("Args missing --input %s: %v", source, runner.args)
	}
	if !hasPair(runner.args, "--output", destination) {
		t.Errorf("Args missing --output %s: %v", destination, runner.args)
	}

	// Destination parent is created up front.
	if fi, err := os.Stat(filepath.Dir(destination)); err != nil || !fi.IsDir() {
		t.Errorf("Destination dir should exist: %v", err)
	}

	if len(logged) == 0 {
		t.Error("Expected a completion log line")
	}
}

func TestConvert_RunnerFailure(t *testing.T) {
	runner := &recordingRunner{err: errors.New("tgradish exited with code 1")}

	err := Convert(context.Background(), runner, "in.webm", filepath.Join(t.TempDir(), "out.webm"), DefaultOptions(), nil)
	if err == nil {
		t.Fatal("Convert() expected error when the encoder fails")
	}
}
