package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestMoveFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "result.webm")
	dst := filepath.Join(t.TempDir(), "final.webm")
	content := []byte("processed video")

	if err := os.WriteFile(src, content, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if err := MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile() error: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("Destination not readable: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Error("Destination content mismatch")
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("Source should be gone after move")
	}
}

func TestMoveFile_MissingSource(t *testing.T) {
	err := MoveFile("/nonexistent/a.webm", filepath.Join(t.TempDir(), "b.webm"))
	if err == nil {
		t.Error("MoveFile() expected error for missing source")
	}
}

func TestMoveFile_Overwrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "new.png")
	dst := filepath.Join(dir, "old.png")

	if err := os.WriteFile(src, []byte("new"), 0644); err != nil {
		t.Fatalf("Failed to create source: %v", err)
	}
	if err := os.WriteFile(dst, []byte("old"), 0644); err != nil {
		t.Fatalf("Failed to create destination: %v", err)
	}

	if err := MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile() error: %v", err)
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "new" {
		t.Errorf("Destination = %q, expected overwrite with new content", got)
	}
}
