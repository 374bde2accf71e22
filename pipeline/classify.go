package pipeline

import (
	"path/filepath"
	"strings"
)

// MediaKind is the classification of a source file.
type MediaKind string

const (
	KindImage MediaKind = "still-image"
	KindVideo MediaKind = "video-or-animation"
)

// imageExtensions is the recognized still-image set. Everything outside it
// is handed to ffmpeg as a video container.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".webp", ".bmp", ".tiff", ".tif"}

// IsImageFile checks if the given file extension is one of the known
// still-image extensions.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, v := range imageExtensions {
		if v == ext {
			return true
		}
	}
	return false
}

// Classify determines the media kind from the file extension alone. This is
// deliberately permissive: unknown and animated extensions (GIF included)
// classify as video, and ffmpeg decides downstream whether it can actually
// demux the container.
func Classify(path string) MediaKind {
	if IsImageFile(path) {
		return KindImage
	}
	return KindVideo
}
