// Package rembg provides background-removal capabilities backed by the
// rembg project: either its command-line tool or a running rembg server.
// Both satisfy the pipeline's Remover contract — raw image bytes in, raw
// image bytes with alpha out.
package rembg

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// CLI removes backgrounds by shelling out to the rembg binary. Each call
// round-trips the bytes through a private temp directory because the tool
// operates on files.
type CLI struct {
	// Binary overrides the tool name, "rembg" by default.
	Binary string
	// Model selects the inference model (u2net, isnet-anime, ...). Empty
	// uses the tool's default.
	Model string
}

func NewCLI(model string) *CLI {
	return &CLI{Model: model}
}

func (c *CLI) binary() string {
	if c.Binary != "" {
		return c.Binary
	}
	return "rembg"
}

func (c *CLI) Remove(ctx context.Context, data []byte) ([]byte, error) {
	bin := c.binary()
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("%s not found in PATH: %w", bin, err)
	}

	dir, err := os.MkdirTemp("", "rembg-")
	if err != nil {
		return nil, fmt.Errorf("create rembg temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	input := filepath.Join(dir, "input.png")
	output := filepath.Join(dir, "output.png")
	if err := os.WriteFile(input, data, 0644); err != nil {
		return nil, fmt.Errorf("write rembg input: %w", err)
	}

	args := []string{"i"}
	if c.Model != "" {
		args = append(args, "-m", c.Model)
	}
	args = append(args, input, output)

	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return nil, fmt.Errorf("%s failed: %w: %s", bin, err, detail)
		}
		return nil, fmt.Errorf("%s failed: %w", bin, err)
	}

	result, err := os.ReadFile(output)
	if err != nil {
		return nil, fmt.Errorf("read rembg output: %w", err)
	}
	return result, nil
}
