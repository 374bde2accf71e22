package utils

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Tool describes an external dependency of the pipeline.
type Tool struct {
	Name    string
	Purpose string
}

// PipelineTools lists what the background-removal pipeline shells out to.
// When useServer is true the rembg binary is not needed locally.
func PipelineTools(useServer bool) []Tool {
	tools := []Tool{
		{Name: "ffmpeg", Purpose: "frame extraction and video composition"},
		{Name: "ffprobe", Purpose: "frame rate probing"},
	}
	if !useServer {
		tools = append(tools, Tool{Name: "rembg", Purpose: "background removal"})
	}
	return tools
}

// StickerTools lists the additional tools the sticker encoder needs.
func StickerTools() []Tool {
	return []Tool{
		{Name: "tgradish", Purpose: "Telegram sticker encoding"},
	}
}

// Available reports whether the tool resolves on PATH.
func (t Tool) Available() bool {
	_, err := exec.LookPath(t.Name)
	return err == nil
}

// ValidatePipelineDependencies checks that every tool the pipeline needs is
// available before any work starts, so the failure is immediate and names
// the missing tool with install instructions.
func ValidatePipelineDependencies(useServer bool) error {
	for _, tool := range PipelineTools(useServer) {
		if !tool.Available() {
			return fmt.Errorf("%s not found in PATH. %s", tool.Name, InstallInstructions(tool.Name))
		}
	}
	return nil
}

// InstallInstructions returns platform-specific installation instructions
// for a missing tool.
func InstallInstructions(tool string) string {
	if tool == "ffmpeg" || tool == "ffprobe" {
		switch runtime.GOOS {
		case "darwin":
			return "Install with: brew install ffmpeg"
		case "linux":
			return "Install with: apt-get install ffmpeg (Ubuntu/Debian) or yum install ffmpeg (CentOS/RHEL)"
		case "windows":
			return "Download from https://ffmpeg.org/download.html and add to PATH"
		default:
			return "Download from https://ffmpeg.org/download.html"
		}
	}

	switch tool {
	case "rembg":
		return "Install with: pip install \"rembg[cli]\""
	case "tgradish":
		return "Install with: pip install tgradish"
	default:
		return "Install " + tool + " and add it to PATH"
	}
}
