package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/segmentio/ksuid"
)

// Workspace is the ephemeral scratch directory for one pipeline invocation.
// It is exclusively owned by that invocation and must be released with
// Cleanup on every exit path, success or failure.
type Workspace struct {
	Root string
}

// NewWorkspace creates a fresh workspace under parent, or under the system
// temp directory when parent is empty. The ksuid suffix keeps concurrent
// jobs from ever sharing a directory.
func NewWorkspace(parent string) (*Workspace, error) {
	if parent == "" {
		parent = os.TempDir()
	}

	root := filepath.Join(parent, "stickercut-"+ksuid.New().String())
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	return &Workspace{Root: root}, nil
}

// Cleanup removes the workspace and everything in it.
func (w *Workspace) Cleanup() error {
	return os.RemoveAll(w.Root)
}
